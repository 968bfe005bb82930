package reshape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesboard/salesboard/internal/reporting"
)

func TestAggregateByCommercialSumsAcrossYears(t *testing.T) {
	rows := []reporting.OrderVsTarget{
		{SalespersonID: "C001", ActualRevenue: 1000, TargetRevenue: 1200, Year: 2023},
		{SalespersonID: "C002", ActualRevenue: 500, TargetRevenue: 700, Year: 2023},
		{SalespersonID: "C001", ActualRevenue: 2000, TargetRevenue: 1800, Year: 2024},
	}

	out := AggregateByCommercial(rows)
	require.Len(t, out, 2)
	assert.Equal(t, "C001", out[0].SalespersonID)
	assert.Equal(t, 3000.0, out[0].ActualRevenue)
	assert.Equal(t, 3000.0, out[0].TargetRevenue)
	assert.Equal(t, "C002", out[1].SalespersonID)
	assert.Equal(t, 500.0, out[1].ActualRevenue)
}

func TestAggregateByCommercialEmpty(t *testing.T) {
	assert.Empty(t, AggregateByCommercial(nil))
}

func TestResolveName(t *testing.T) {
	directory := []reporting.Salesperson{
		{ID: "C001", Name: "Martin Durand"},
		{ID: "C002", Name: "Sophie Leroy"},
	}

	assert.Equal(t, "Sophie Leroy", ResolveName("C002", directory))
	assert.Equal(t, "C999", ResolveName("C999", directory))
}

func TestSummarizeConversion(t *testing.T) {
	s := SummarizeConversion([]reporting.ConversionRate{
		{QuoteCount: 10, OrderCount: 3},
	})
	assert.Equal(t, 30.0, s.Rate)
	assert.Equal(t, 10, s.Quotes)
	assert.Equal(t, 3, s.Orders)
}

func TestSummarizeConversionAcrossRows(t *testing.T) {
	// the aggregate comes from the raw counts, not from averaging per-row
	// rates
	s := SummarizeConversion([]reporting.ConversionRate{
		{QuoteCount: 90, OrderCount: 9, Rate: 10},
		{QuoteCount: 10, OrderCount: 9, Rate: 90},
	})
	assert.Equal(t, 18.0, s.Rate)
}

func TestSummarizeConversionEmpty(t *testing.T) {
	s := SummarizeConversion(nil)
	assert.Equal(t, 0.0, s.Rate)
}

func TestAttainmentPercent(t *testing.T) {
	assert.Equal(t, 200.0, AttainmentPercent(500, 0))
	assert.Equal(t, 0.0, AttainmentPercent(0, 0))
	assert.Equal(t, 200.0, AttainmentPercent(2500, 1000))
	assert.Equal(t, 75.0, AttainmentPercent(750, 1000))
	assert.Equal(t, 200.0, AttainmentPercent(100, -50))
}

func TestNeedlePosition(t *testing.T) {
	assert.Equal(t, 0.0, NeedlePosition(-10))
	assert.Equal(t, 42.0, NeedlePosition(42))
	assert.Equal(t, 100.0, NeedlePosition(180))
}

func TestBackfillMonths(t *testing.T) {
	out := BackfillMonths([]reporting.MonthRevenue{
		{Month: 3, Revenue: 1500},
		{Month: 7, Revenue: 900},
	})

	require.Len(t, out, 12)
	for i, row := range out {
		assert.Equal(t, i+1, row.Month)
	}
	assert.Equal(t, 1500.0, out[2].Revenue)
	assert.Equal(t, 900.0, out[6].Revenue)
	for _, month := range []int{1, 2, 4, 5, 6, 8, 9, 10, 11, 12} {
		assert.Zero(t, out[month-1].Revenue, "month %d", month)
	}
}

func TestBackfillMonthsDropsOutOfRange(t *testing.T) {
	out := BackfillMonths([]reporting.MonthRevenue{
		{Month: 0, Revenue: 111},
		{Month: 13, Revenue: 222},
	})
	require.Len(t, out, 12)
	for _, row := range out {
		assert.Zero(t, row.Revenue)
	}
}

func TestMonthIndex(t *testing.T) {
	for raw, want := range map[string]int{
		"1":        1,
		"12":       12,
		"Janvier":  1,
		"février":  2,
		"Décembre": 12,
	} {
		got, ok := MonthIndex(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"0", "13", "Foo", ""} {
		_, ok := MonthIndex(raw)
		assert.False(t, ok, raw)
	}
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Janvier", MonthName(1))
	assert.Equal(t, "Décembre", MonthName(12))
	assert.Equal(t, "Mois inconnu", MonthName(0))
}

func TestMonthOverMonthDeltas(t *testing.T) {
	deltas := MonthOverMonthDeltas([]float64{1000, 1500, 1200})

	require.Len(t, deltas, 3)
	assert.Nil(t, deltas[0])
	require.NotNil(t, deltas[1])
	assert.InDelta(t, 50.0, *deltas[1], 1e-9)
	require.NotNil(t, deltas[2])
	assert.InDelta(t, -20.0, *deltas[2], 1e-9)
}

func TestMonthOverMonthDeltasZeroBaseline(t *testing.T) {
	deltas := MonthOverMonthDeltas([]float64{0, 500})
	assert.Nil(t, deltas[0])
	assert.Nil(t, deltas[1])
}

func TestSortByMonth(t *testing.T) {
	rows := []reporting.MonthRevenue{{Month: 5}, {Month: 1}, {Month: 9}}
	SortByMonth(rows)
	assert.Equal(t, 1, rows[0].Month)
	assert.Equal(t, 5, rows[1].Month)
	assert.Equal(t, 9, rows[2].Month)
}
