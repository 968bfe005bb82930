package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupedBarsRejectsMismatchedSeries(t *testing.T) {
	_, err := GroupedBars(0, 0, []float64{1}, []float64{1, 2}, []string{"a"}, BarOpts{})
	assert.Error(t, err)

	_, err = GroupedBars(0, 0, nil, nil, nil, BarOpts{})
	assert.Error(t, err)
}

func TestGroupedBarsRendersAllBars(t *testing.T) {
	out, err := GroupedBars(0, 0, []float64{100, 200}, []float64{150, 150}, []string{"Durand", "Leroy"}, BarOpts{Title: "CA vs Objectif"})
	require.NoError(t, err)

	markup := string(out)
	assert.True(t, strings.HasPrefix(markup, "<svg"))
	assert.Equal(t, 6, strings.Count(markup, "<rect"), "4 bars + 2 legend swatches")
	assert.Contains(t, markup, "Durand")
	assert.Contains(t, markup, "ca-vs-objectif-bars-title")
}

func TestMonthlyBarsColorsBySign(t *testing.T) {
	up := 50.0
	down := -20.0
	out, err := MonthlyBars(0, 0, []float64{1000, 1500, 1200}, []*float64{nil, &up, &down}, []string{"Jan", "Fév", "Mar"}, BarOpts{})
	require.NoError(t, err)

	markup := string(out)
	assert.Contains(t, markup, "#16a34a")
	assert.Contains(t, markup, "#dc2626")
	assert.Contains(t, markup, "#64748b")
	assert.Contains(t, markup, "+50.0%")
	assert.Contains(t, markup, "-20.0%")
}

func TestGaugeClampsPosition(t *testing.T) {
	out, err := Gauge(0, 0, 150, GaugeOpts{Title: "Objectif", Label: "200 %"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "200 %")

	_, err = Gauge(0, 0, -5, GaugeOpts{})
	assert.NoError(t, err)
}

func TestFunnelFixedWidths(t *testing.T) {
	out, err := Funnel(400, 280, []FunnelSegment{
		{Label: "Faible (≤ 20%)", Value: "1 000 €"},
		{Label: "Moyen (21-70%)", Value: "2 000 €"},
		{Label: "Élevé (71-80%)", Value: "3 000 €"},
		{Label: "Très élevé (> 80%)", Value: "4 000 €"},
	}, FunnelOpts{})
	require.NoError(t, err)

	markup := string(out)
	assert.Equal(t, 4, strings.Count(markup, "<polygon"))
	// top band spans the full width, bottom band 40%
	assert.Contains(t, markup, "0.00,0.00 400.00,0.00")
}

func TestFunnelRejectsTooManySegments(t *testing.T) {
	segments := make([]FunnelSegment, 5)
	_, err := Funnel(0, 0, segments, FunnelOpts{})
	assert.Error(t, err)

	_, err = Funnel(0, 0, nil, FunnelOpts{})
	assert.Error(t, err)
}
