package reshape

import (
	"sort"
	"strconv"
	"strings"

	"github.com/salesboard/salesboard/internal/reporting"
)

// monthNames are the French display names, index 0 = January.
var monthNames = [12]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

// MonthName returns the French name for a 1..12 month, or "Mois inconnu"
// outside that range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return "Mois inconnu"
	}
	return monthNames[month-1]
}

// MonthIndex normalizes a raw month value, either a numeric string or a
// French month name, to its 1..12 index.
func MonthIndex(raw string) (int, bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		if n >= 1 && n <= 12 {
			return n, true
		}
		return 0, false
	}
	needle := strings.ToLower(strings.TrimSpace(raw))
	for i, name := range monthNames {
		if strings.ToLower(name) == needle {
			return i + 1, true
		}
	}
	return 0, false
}

// BackfillMonths expands sparse per-month revenue rows into exactly 12
// entries ordered 1..12, zero revenue for absent months. Rows with an
// out-of-range month are dropped.
func BackfillMonths(rows []reporting.MonthRevenue) []reporting.MonthRevenue {
	byMonth := make(map[int]float64, len(rows))
	for _, row := range rows {
		if row.Month >= 1 && row.Month <= 12 {
			byMonth[row.Month] += row.Revenue
		}
	}
	out := make([]reporting.MonthRevenue, 0, 12)
	for month := 1; month <= 12; month++ {
		out = append(out, reporting.MonthRevenue{Month: month, Revenue: byMonth[month]})
	}
	return out
}

// SortByMonth orders rows by month ascending, in place.
func SortByMonth(rows []reporting.MonthRevenue) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
}

// MonthOverMonthDeltas computes the percentage change of each value against
// its predecessor. The first entry is the baseline and has no delta; a zero
// predecessor also yields no delta rather than a division by zero. The
// returned slice is parallel to the input, nil where no delta is defined.
func MonthOverMonthDeltas(values []float64) []*float64 {
	deltas := make([]*float64, len(values))
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			continue
		}
		delta := (values[i] - prev) / prev * 100
		deltas[i] = &delta
	}
	return deltas
}
