package analyzing

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/vfg2006/traffic-dashboard-api/internal/domain"
)

// NoData é exibido no lugar de valores não finitos
const NoData = "—"

func FormatCurrency(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NoData
	}
	return "$" + humanize.CommafWithDigits(value, 2)
}

func FormatCount(value int) string {
	return humanize.Comma(int64(value))
}

func FormatRatioCurrency(value domain.Ratio) string {
	if !value.IsFinite() {
		return NoData
	}
	return fmt.Sprintf("$%.2f", float64(value))
}

func FormatPercent(value domain.Ratio) string {
	if !value.IsFinite() {
		return NoData
	}
	return fmt.Sprintf("%.2f%%", float64(value))
}

func FormatMultiplier(value domain.Ratio) string {
	if !value.IsFinite() {
		return NoData
	}
	return fmt.Sprintf("%.1fx", float64(value))
}

// FormatChange formata a variação com sinal explícito (ex.: +15.7%, -5.2%)
func FormatChange(change float64) string {
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return NoData
	}
	return fmt.Sprintf("%+.1f%%", change)
}
