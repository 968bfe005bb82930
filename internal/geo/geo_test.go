package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesboard/salesboard/internal/reporting"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex()
	require.NoError(t, err)
	return idx
}

func TestTwoStageResolution(t *testing.T) {
	idx := newTestIndex(t)

	alpha3, ok := idx.Alpha2ToAlpha3("FR")
	require.True(t, ok)
	assert.Equal(t, "FRA", alpha3)

	numeric, ok := idx.Alpha3ToNumeric("FRA")
	require.True(t, ok)
	assert.Equal(t, "250", numeric)

	numeric, ok = idx.NumericFor("FR")
	require.True(t, ok)
	assert.Equal(t, "250", numeric)
}

func TestUnknownCodesResolveToFalse(t *testing.T) {
	idx := newTestIndex(t)

	_, ok := idx.NumericFor("ZZ")
	assert.False(t, ok)

	_, ok = idx.Alpha3ToNumeric("ZZZ")
	assert.False(t, ok)
}

func TestLowercaseCodesAccepted(t *testing.T) {
	idx := newTestIndex(t)

	numeric, ok := idx.NumericFor("fr")
	require.True(t, ok)
	assert.Equal(t, "250", numeric)
}

func TestFrenchNames(t *testing.T) {
	idx := newTestIndex(t)

	assert.Equal(t, "Allemagne", idx.FrenchName("DE"))
	assert.Equal(t, "ZZ", idx.FrenchName("ZZ"))

	name, ok := idx.FrenchNameByNumeric("756")
	require.True(t, ok)
	assert.Equal(t, "Suisse", name)
}

func TestBuildChoroplethDropsUnmappedCodes(t *testing.T) {
	idx := newTestIndex(t)

	ch := idx.BuildChoropleth([]reporting.CountryRevenue{
		{Country: "FR", Revenue: 1000},
		{Country: "ZZ", Revenue: 9999},
		{Country: "DE", Revenue: 3000},
	})

	require.Len(t, ch.Values, 2)
	assert.Equal(t, 1000.0, ch.Values["250"])
	assert.Equal(t, 3000.0, ch.Values["276"])
	assert.Equal(t, 1000.0, ch.Min)
	assert.Equal(t, 3000.0, ch.Max)
}

func TestIntensityLinearScale(t *testing.T) {
	ch := Choropleth{Min: 1000, Max: 3000}

	assert.Equal(t, 0.0, ch.Intensity(1000))
	assert.Equal(t, 0.5, ch.Intensity(2000))
	assert.Equal(t, 1.0, ch.Intensity(3000))
	assert.Equal(t, 0.0, ch.Intensity(500))
	assert.Equal(t, 1.0, ch.Intensity(5000))
}

func TestIntensityFlatRange(t *testing.T) {
	ch := Choropleth{Min: 1500, Max: 1500}
	assert.Equal(t, 1.0, ch.Intensity(1500))
}
