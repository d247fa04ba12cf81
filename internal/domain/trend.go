package domain

import "time"

// TrendPoint representa os valores agregados de um dia
type TrendPoint struct {
	Date        time.Time `json:"date"`
	Spend       float64   `json:"spend"`
	Revenue     float64   `json:"revenue"`
	Conversions int       `json:"conversions"`
}

// Day retorna a data normalizada para meia-noite UTC
func (t TrendPoint) Day() time.Time {
	return TruncateDay(t.Date)
}

func TruncateDay(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
