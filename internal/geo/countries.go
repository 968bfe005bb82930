// Package geo resolves source country codes for the choropleth widget. The
// translation tables are static data, embedded rather than hard-coded: one
// record per country carrying the alpha-2, alpha-3 and numeric ISO codes
// plus the French display name.
package geo

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed countries.json
var countriesFS embed.FS

// Country is one record of the embedded lookup table.
type Country struct {
	Alpha2  string `json:"alpha2"`
	Alpha3  string `json:"alpha3"`
	Numeric string `json:"numeric"`
	Name    string `json:"name"`
}

// Index provides code resolution over the embedded country table.
type Index struct {
	byAlpha2  map[string]Country
	byAlpha3  map[string]Country
	byNumeric map[string]Country
}

// NewIndex loads and indexes the embedded country table.
func NewIndex() (*Index, error) {
	raw, err := countriesFS.ReadFile("countries.json")
	if err != nil {
		return nil, fmt.Errorf("geo: read countries: %w", err)
	}
	var countries []Country
	if err := json.Unmarshal(raw, &countries); err != nil {
		return nil, fmt.Errorf("geo: decode countries: %w", err)
	}

	idx := &Index{
		byAlpha2:  make(map[string]Country, len(countries)),
		byAlpha3:  make(map[string]Country, len(countries)),
		byNumeric: make(map[string]Country, len(countries)),
	}
	for _, c := range countries {
		idx.byAlpha2[c.Alpha2] = c
		idx.byAlpha3[c.Alpha3] = c
		idx.byNumeric[c.Numeric] = c
	}
	return idx, nil
}

// Alpha2ToAlpha3 resolves a source alpha-2 code to its alpha-3 form.
func (i *Index) Alpha2ToAlpha3(alpha2 string) (string, bool) {
	c, ok := i.byAlpha2[strings.ToUpper(alpha2)]
	if !ok {
		return "", false
	}
	return c.Alpha3, true
}

// Alpha3ToNumeric resolves an alpha-3 code to the numeric form the map
// feature set is keyed by.
func (i *Index) Alpha3ToNumeric(alpha3 string) (string, bool) {
	c, ok := i.byAlpha3[strings.ToUpper(alpha3)]
	if !ok {
		return "", false
	}
	return c.Numeric, true
}

// NumericFor resolves a source alpha-2 code straight to the numeric form,
// through the alpha-3 stage. Unknown codes return false, never an error.
func (i *Index) NumericFor(alpha2 string) (string, bool) {
	alpha3, ok := i.Alpha2ToAlpha3(alpha2)
	if !ok {
		return "", false
	}
	return i.Alpha3ToNumeric(alpha3)
}

// FrenchName returns the display name for an alpha-2 code, or the raw code
// when unknown.
func (i *Index) FrenchName(alpha2 string) string {
	if c, ok := i.byAlpha2[strings.ToUpper(alpha2)]; ok {
		return c.Name
	}
	return alpha2
}

// FrenchNameByNumeric walks the numeric code back to the display name, for
// map hover labels.
func (i *Index) FrenchNameByNumeric(numeric string) (string, bool) {
	c, ok := i.byNumeric[numeric]
	if !ok {
		return "", false
	}
	return c.Name, true
}
