package mockdata

import "github.com/vfg2006/traffic-dashboard-api/internal/domain"

// regions lista os mercados na ordem em que aparecem no mapa, com [longitude, latitude]
var regions = []struct {
	name        string
	coordinates [2]float64
}{
	{"India", [2]float64{77.2090, 28.6139}},
	{"US", [2]float64{-95.7129, 37.0902}},
	{"UK", [2]float64{-3.4360, 55.3781}},
	{"Canada", [2]float64{-106.3468, 56.1304}},
	{"Germany", [2]float64{10.4515, 51.1657}},
	{"France", [2]float64{2.2137, 46.2276}},
	{"Japan", [2]float64{138.2529, 36.2048}},
	{"Australia", [2]float64{133.7751, -25.2744}},
	{"Brazil", [2]float64{-51.9253, -14.2350}},
	{"Mexico", [2]float64{-102.5528, 23.6345}},
	{"Singapore", [2]float64{103.8198, 1.3521}},
	{"UAE", [2]float64{53.8478, 23.4241}},
	{"South Korea", [2]float64{127.7669, 35.9078}},
	{"Italy", [2]float64{12.5674, 41.8719}},
	{"Spain", [2]float64{-3.7492, 40.4637}},
	{"Netherlands", [2]float64{5.2913, 52.1326}},
	{"Sweden", [2]float64{18.6435, 60.1282}},
	{"Norway", [2]float64{8.4689, 60.4720}},
	{"Denmark", [2]float64{9.5018, 56.2639}},
	{"Finland", [2]float64{25.7482, 61.9241}},
}

var campaignTypes = []string{
	"Discovery", "Competitor", "Today tab", "Branding", "Search", "Display", "Video", "Social",
	"Retargeting", "Lookalike", "Interest-based", "Demographic", "Behavioral", "Geographic",
	"Custom Audience", "App Install", "Lead Generation", "Conversion", "Traffic", "Awareness",
	"Engagement", "App Promotion", "Local", "Shopping", "Performance Max", "Smart", "Manual",
}

// baselineChanges são as variações de referência dos cartões de resumo
var baselineChanges = []struct {
	label  string
	change float64
}{
	{"Total Spend", 15.7},
	{"Total Revenue", 22.4},
	{"Total Conversions", 8.9},
	{"ROAS", 12.3},
	{"Total Installs", 18.5},
	{"Cost per Install", -5.2},
	{"Conversion Rate", 3.1},
}

func kpiCards() []domain.KPIMetric {
	return []domain.KPIMetric{
		{
			ID:         "1",
			Title:      "Total Impressions",
			Value:      "2.4M",
			Change:     12.5,
			Trend:      domain.TrendUp,
			Sparkline:  []float64{20, 25, 22, 30, 28, 35, 40},
			IsPositive: true,
		},
		{
			ID:         "2",
			Title:      "Click-through Rate",
			Value:      "3.2%",
			Change:     -2.1,
			Trend:      domain.TrendDown,
			Sparkline:  []float64{40, 35, 38, 32, 30, 28, 32},
			IsPositive: false,
		},
		{
			ID:         "3",
			Title:      "Cost Per Acquisition",
			Value:      "$24.50",
			Change:     -8.3,
			Trend:      domain.TrendDown,
			Sparkline:  []float64{50, 48, 45, 42, 40, 38, 35},
			IsPositive: true,
		},
		{
			ID:         "4",
			Title:      "Total Spend",
			Value:      "$6,109.89",
			Change:     15.7,
			Trend:      domain.TrendUp,
			Sparkline:  []float64{30, 32, 35, 38, 42, 45, 48},
			IsPositive: false,
		},
		{
			ID:         "5",
			Title:      "Conversion Rate",
			Value:      "4.8%",
			Change:     6.2,
			Trend:      domain.TrendUp,
			Sparkline:  []float64{25, 28, 30, 32, 35, 38, 42},
			IsPositive: true,
		},
	}
}
