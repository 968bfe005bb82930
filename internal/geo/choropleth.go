package geo

import "github.com/salesboard/salesboard/internal/reporting"

// Choropleth is a numeric-code-keyed revenue map with the observed value
// range, ready for map rendering.
type Choropleth struct {
	// Values keys revenue by ISO numeric country code.
	Values map[string]float64
	Min    float64
	Max    float64
}

// BuildChoropleth maps per-country revenue rows onto numeric country codes.
// Rows with codes missing from the lookup table are dropped, never an
// error. Min and Max cover the retained rows only.
func (i *Index) BuildChoropleth(rows []reporting.CountryRevenue) Choropleth {
	ch := Choropleth{Values: make(map[string]float64)}
	first := true
	for _, row := range rows {
		numeric, ok := i.NumericFor(row.Country)
		if !ok {
			continue
		}
		ch.Values[numeric] = row.Revenue
		if first {
			ch.Min, ch.Max = row.Revenue, row.Revenue
			first = false
			continue
		}
		if row.Revenue < ch.Min {
			ch.Min = row.Revenue
		}
		if row.Revenue > ch.Max {
			ch.Max = row.Revenue
		}
	}
	return ch
}

// Intensity linearly interpolates a value onto [0,1] between the observed
// minimum and maximum. A flat range maps everything to 1 so a lone country
// still renders at full strength.
func (c Choropleth) Intensity(value float64) float64 {
	if c.Max == c.Min {
		return 1
	}
	ratio := (value - c.Min) / (c.Max - c.Min)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
