// Package svg renders the dashboard chart widgets as standalone SVG
// fragments. Renderers are pure: dimensions and series in, markup out.
package svg

// BarOpts customises the grouped bar renderer.
type BarOpts struct {
	Title        string
	Description  string
	SeriesALabel string
	SeriesBLabel string
	ColorA       string
	ColorB       string
	AxisColor    string
	GridColor    string
	Padding      float64
	TickCount    int
}

// GaugeOpts customises the gauge renderer.
type GaugeOpts struct {
	Title       string
	Description string
	ArcColor    string
	NeedleColor string
	TrackColor  string
	Label       string
}

// FunnelOpts customises the funnel renderer.
type FunnelOpts struct {
	Title       string
	Description string
	Colors      []string
	TextColor   string
}

// Defaults for the dashboard charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 240
	DefaultPadding = 24.0
	DefaultTicks   = 6
)

// funnelWidths are the relative segment widths, top to bottom, as
// percentages of the full funnel width.
var funnelWidths = []float64{100, 80, 60, 40}
