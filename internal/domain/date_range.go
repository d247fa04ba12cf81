package domain

import (
	"fmt"
	"time"
)

const (
	PresetLast7Days  = "Last 7 Days"
	PresetLast14Days = "Last 14 Days"
	PresetLast30Days = "Last 30 Days"
	PresetLast60Days = "Last 60 Days"
	PresetLast90Days = "Last 90 Days"
	PresetThisMonth  = "This Month"
	PresetLastMonth  = "Last Month"
	PresetCustom     = "Custom"
)

var presetDays = map[string]int{
	PresetLast7Days:  7,
	PresetLast14Days: 14,
	PresetLast30Days: 30,
	PresetLast60Days: 60,
	PresetLast90Days: 90,
}

// Presets lista os intervalos predefinidos aceitos pelo seletor de datas
func Presets() []string {
	return []string{
		PresetLast7Days,
		PresetLast14Days,
		PresetLast30Days,
		PresetLast60Days,
		PresetLast90Days,
		PresetThisMonth,
		PresetLastMonth,
	}
}

// DateRangeFromPreset resolve um preset em relação à data âncora (inclusive).
// "Last N Days" termina na âncora e cobre N dias.
func DateRangeFromPreset(preset string, anchor time.Time) (DateRange, error) {
	anchor = TruncateDay(anchor)

	if days, ok := presetDays[preset]; ok {
		return DateRange{
			Start: anchor.AddDate(0, 0, -(days - 1)),
			End:   anchor,
			Label: preset,
		}, nil
	}

	firstOfMonth := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)

	switch preset {
	case PresetThisMonth:
		return DateRange{
			Start: firstOfMonth,
			End:   firstOfMonth.AddDate(0, 1, -1),
			Label: preset,
		}, nil
	case PresetLastMonth:
		start := firstOfMonth.AddDate(0, -1, 0)
		return DateRange{
			Start: start,
			End:   firstOfMonth.AddDate(0, 0, -1),
			Label: preset,
		}, nil
	}

	return DateRange{}, fmt.Errorf("preset de data desconhecido: %q", preset)
}
