// Package reporting implements the sales report query set: parameterized
// read-only aggregations over the external sales schema, one operation per
// dashboard widget.
package reporting

import "time"

// FilterAll is the sentinel salesperson value meaning "no filter".
const FilterAll = "all"

// Filter carries the two optional dimensions shared by every report.
// A nil Year or an empty/"all" Salesperson means the dimension is not
// constrained.
type Filter struct {
	Year        *int   `validate:"omitempty,gte=1900,lte=2100"`
	Salesperson string `validate:"omitempty,max=64"`
}

// HasYear reports whether a year constraint is active.
func (f Filter) HasYear() bool {
	return f.Year != nil
}

// HasSalesperson reports whether a salesperson constraint is active.
func (f Filter) HasSalesperson() bool {
	return f.Salesperson != "" && f.Salesperson != FilterAll
}

// OrderVsTarget is one (salesperson, year) revenue row against its target.
// TargetRevenue may be zero or negative when no objective was recorded.
type OrderVsTarget struct {
	SalespersonID string  `json:"ID_Commercial"`
	ActualRevenue float64 `json:"CA_Commande"`
	TargetRevenue float64 `json:"CA_Objectif"`
	Year          int     `json:"Annee"`
}

// Salesperson is one directory entry; ID is the join key used by every
// other report.
type Salesperson struct {
	ID   string `json:"ID_Commercial"`
	Name string `json:"Nom"`
}

// ConversionRate is one precomputed quote-to-order conversion row.
type ConversionRate struct {
	ID            int     `json:"ID"`
	Year          int     `json:"Annee_Commande"`
	SalespersonID string  `json:"Commercial_ID"`
	QuoteCount    int     `json:"Nb_Devis"`
	OrderCount    int     `json:"Nb_Commandes"`
	Rate          float64 `json:"Taux_Conversion"`
}

// CountryRevenue is summed revenue for one country under the active filters.
// Country is the source alpha-2 code.
type CountryRevenue struct {
	Country string  `json:"Pays"`
	Revenue float64 `json:"CA_Commande"`
}

// MonthRevenue is summed revenue for one calendar month (1..12).
type MonthRevenue struct {
	Month   int     `json:"Mois"`
	Revenue float64 `json:"CA_Commande"`
}

// ReasonBreakdown is one order-reason row, sorted descending by quote count.
type ReasonBreakdown struct {
	ID            int    `json:"ID"`
	Year          int    `json:"Date_Annee"`
	SalespersonID string `json:"ID_Commercial"`
	Reason        string `json:"Motif"`
	QuoteCount    int    `json:"Nb_Devis"`
}

// RevenuePrediction is the probability-weighted revenue aggregate over all
// open quotes matching the filters.
type RevenuePrediction struct {
	WeightedRevenue float64 `json:"CA_Prediction"`
}

// FunnelBucket is one probability band of the prediction funnel.
type FunnelBucket struct {
	Level           string  `json:"Niveau"`
	WeightedRevenue float64 `json:"CA_Prediction"`
	QuoteCount      int     `json:"Nombre_Devis"`
}

// TopSale is one row of the top-5 sales report.
type TopSale struct {
	Revenue     float64   `json:"ca"`
	DocumentID  string    `json:"documentDeVente"`
	Salesperson string    `json:"commercial"`
	Customer    string    `json:"client"`
	Date        time.Time `json:"date"`
	Country     string    `json:"pays"`
}

// ConversionTiming is the average quote-to-order delay and average order
// revenue (in thousands) for one calendar month. The service guarantees
// exactly 12 entries, zero-filled for absent months.
type ConversionTiming struct {
	Month       int     `json:"Mois"`
	AvgDays     float64 `json:"Duree_Moyenne"`
	AvgRevenueK float64 `json:"CA_Moyen"`
}

// funnelBand is one probability interval of the prediction funnel. Bounds
// are exclusive on the low side and inclusive on the high side; a nil bound
// leaves that side open.
type funnelBand struct {
	level string
	low   *int
	high  *int
}

func intRef(v int) *int { return &v }

// funnelBands is the fixed bucket order: buckets are emitted in this order
// regardless of their contents.
var funnelBands = []funnelBand{
	{level: "Faible (≤ 20%)", high: intRef(20)},
	{level: "Moyen (21-70%)", low: intRef(20), high: intRef(70)},
	{level: "Élevé (71-80%)", low: intRef(70), high: intRef(80)},
	{level: "Très élevé (> 80%)", low: intRef(80)},
}

// FunnelLevels returns the funnel band labels in display order.
func FunnelLevels() []string {
	levels := make([]string, len(funnelBands))
	for i, band := range funnelBands {
		levels[i] = band.level
	}
	return levels
}
