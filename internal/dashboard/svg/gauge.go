package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Gauge renders a half-circle gauge. position is the needle position on
// [0,100]; values outside that range are clamped by the caller.
func Gauge(width, height int, position float64, opts GaugeOpts) (template.HTML, error) {
	if width <= 0 {
		width = 240
	}
	if height <= 0 {
		height = 140
	}
	if position < 0 {
		position = 0
	}
	if position > 100 {
		position = 100
	}

	arcColor := fallback(opts.ArcColor, "#2563eb")
	needleColor := fallback(opts.NeedleColor, "#0f172a")
	trackColor := fallback(opts.TrackColor, "#e2e8f0")

	cx := float64(width) / 2
	cy := float64(height) - 20
	radius := math.Min(cx, cy) - 8
	if radius <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	titleID := makeID(opts.Title, "gauge-title")
	descID := makeID(opts.Title, "gauge-desc")

	// angle sweeps π (left, 0%) to 0 (right, 100%)
	angle := math.Pi * (1 - position/100)
	needleX := cx + radius*0.85*math.Cos(angle)
	needleY := cy - radius*0.85*math.Sin(angle)

	// the sweep never exceeds a half circle, so the large-arc flag stays 0
	arcEndX := cx + radius*math.Cos(angle)
	arcEndY := cy - radius*math.Sin(angle)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Jauge"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Indicateur de progression"))))

	// full track
	b.WriteString(fmt.Sprintf("<path d=\"M %.2f %.2f A %.2f %.2f 0 0 1 %.2f %.2f\" fill=\"none\" stroke=\"%s\" stroke-width=\"12\" stroke-linecap=\"round\"></path>",
		cx-radius, cy, radius, radius, cx+radius, cy, trackColor))
	// progress arc
	if position > 0 {
		b.WriteString(fmt.Sprintf("<path d=\"M %.2f %.2f A %.2f %.2f 0 0 1 %.2f %.2f\" fill=\"none\" stroke=\"%s\" stroke-width=\"12\" stroke-linecap=\"round\"></path>",
			cx-radius, cy, radius, radius, arcEndX, arcEndY, arcColor))
	}
	// needle
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"2\"></line>", cx, cy, needleX, needleY, needleColor))
	b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"4\" fill=\"%s\"></circle>", cx, cy, needleColor))

	if opts.Label != "" {
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"14\" font-weight=\"bold\" text-anchor=\"middle\">%s</text>", cx, cy+16, needleColor, template.HTMLEscapeString(opts.Label)))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
