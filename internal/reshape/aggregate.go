// Package reshape holds the pure row-reshaping rules the dashboard widgets
// apply on top of the raw report rows: per-salesperson aggregation, name
// resolution, derived percentages and month handling. No I/O.
package reshape

import "github.com/salesboard/salesboard/internal/reporting"

// AggregateByCommercial collapses rows sharing a salesperson into one row,
// summing actual and target revenue. Used when no year filter is active;
// with a year filter the query already yields one row per salesperson and
// rows pass through unchanged (callers decide). First-seen order is kept;
// Year on a collapsed row is zeroed since it spans several.
func AggregateByCommercial(rows []reporting.OrderVsTarget) []reporting.OrderVsTarget {
	index := make(map[string]int, len(rows))
	out := make([]reporting.OrderVsTarget, 0, len(rows))
	for _, row := range rows {
		pos, seen := index[row.SalespersonID]
		if !seen {
			index[row.SalespersonID] = len(out)
			out = append(out, reporting.OrderVsTarget{
				SalespersonID: row.SalespersonID,
				ActualRevenue: row.ActualRevenue,
				TargetRevenue: row.TargetRevenue,
			})
			continue
		}
		out[pos].ActualRevenue += row.ActualRevenue
		out[pos].TargetRevenue += row.TargetRevenue
	}
	return out
}

// ResolveName maps a salesperson id to its display name through the
// directory. Unresolved ids fall back to the raw id.
func ResolveName(id string, directory []reporting.Salesperson) string {
	for _, entry := range directory {
		if entry.ID == id {
			return entry.Name
		}
	}
	return id
}

// ConversionSummary is the aggregate over a set of conversion rows.
type ConversionSummary struct {
	Quotes int
	Orders int
	// Rate is sum(orders)/sum(quotes)*100, zero when no quotes. Recomputed
	// from the raw counts rather than averaging the per-row rates, which
	// would weight small salespeople the same as large ones.
	Rate float64
}

// SummarizeConversion computes the global conversion aggregate.
func SummarizeConversion(rows []reporting.ConversionRate) ConversionSummary {
	var s ConversionSummary
	for _, row := range rows {
		s.Quotes += row.QuoteCount
		s.Orders += row.OrderCount
	}
	if s.Quotes > 0 {
		s.Rate = float64(s.Orders) / float64(s.Quotes) * 100
	}
	return s
}
