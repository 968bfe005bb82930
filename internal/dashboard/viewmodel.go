package dashboard

import (
	"html/template"

	"github.com/salesboard/salesboard/internal/reporting"
	"github.com/salesboard/salesboard/internal/reshape"
)

// OrderRow is one revenue-vs-objective line with the resolved display name
// and the capped attainment percentage.
type OrderRow struct {
	Name       string
	Actual     float64
	Target     float64
	Attainment float64
}

// MonthRow is one month of revenue with its month-over-month delta; Delta
// is nil for the baseline month.
type MonthRow struct {
	Name    string
	Revenue float64
	Delta   *float64
}

// CountryRow is one choropleth entry with the resolved French name and the
// linear color intensity on [0,1].
type CountryRow struct {
	Name      string
	Code      string
	Revenue   float64
	Intensity float64
}

// TimingRow is one month of the conversion-timing radar data.
type TimingRow struct {
	Name        string
	AvgDays     float64
	AvgRevenueK float64
}

// ViewModel carries everything the dashboard page renders.
type ViewModel struct {
	SelectedYear        string
	SelectedSalesperson string
	Years               []int
	Salespeople         []reporting.Salesperson

	Orders      []OrderRow
	OrdersChart template.HTML

	Conversion      reshape.ConversionSummary
	ConversionGauge template.HTML

	GlobalAttainment float64
	AttainmentGauge  template.HTML

	Months       []MonthRow
	MonthlyChart template.HTML

	Reasons []reporting.ReasonBreakdown

	Prediction  reporting.RevenuePrediction
	Funnel      []reporting.FunnelBucket
	FunnelChart template.HTML

	TopSales []reporting.TopSale

	Countries []CountryRow

	Timing []TimingRow
}
