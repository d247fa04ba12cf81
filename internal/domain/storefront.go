package domain

// Storefront representa o gasto de um mercado geográfico
type Storefront struct {
	Region      string     `json:"region"`
	Spend       float64    `json:"spend"`
	Coordinates [2]float64 `json:"coordinates"` // [longitude, latitude]
}
