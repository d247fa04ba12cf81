package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilters_Hash(t *testing.T) {
	base := DefaultFilters(DateRange{
		Start: time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC),
		Label: PresetLast7Days,
	})

	with := func(change func(f *Filters)) Filters {
		f := base
		f.ActiveFilters = append([]string{}, base.ActiveFilters...)
		change(&f)
		return f
	}

	tests := []struct {
		name  string
		a, b  Filters
		equal bool
	}{
		{
			name:  "Mesmos filtros geram o mesmo hash",
			a:     with(func(f *Filters) { f.ActiveFilters = []string{"Cyber Monday"} }),
			b:     with(func(f *Filters) { f.ActiveFilters = []string{"Cyber Monday"} }),
			equal: true,
		},
		{
			name:  "Vírgula dentro da tag não colide com duas tags",
			a:     with(func(f *Filters) { f.ActiveFilters = []string{"a,b"} }),
			b:     with(func(f *Filters) { f.ActiveFilters = []string{"a", "b"} }),
			equal: false,
		},
		{
			name: "Barra no grupo não colide com a palavra-chave",
			a: with(func(f *Filters) {
				f.AdGroup = "a/b"
				f.KeywordCategory = "c"
			}),
			b: with(func(f *Filters) {
				f.AdGroup = "a"
				f.KeywordCategory = "b/c"
			}),
			equal: false,
		},
		{
			name: "Separador dentro da seleção de campanha",
			a:    with(func(f *Filters) { f.Campaign = "x|y" }),
			b: with(func(f *Filters) {
				f.Campaign = "x"
				f.AdGroup = "y"
			}),
			equal: false,
		},
		{
			name:  "Ordem diferente altera o hash",
			a:     with(func(f *Filters) { f.SortOrder = SortAsc }),
			b:     with(func(f *Filters) { f.SortOrder = SortDesc }),
			equal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.equal {
				assert.Equal(t, tt.a.Hash(), tt.b.Hash())
			} else {
				assert.NotEqual(t, tt.a.Hash(), tt.b.Hash())
			}
		})
	}
}
