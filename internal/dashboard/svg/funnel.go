package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// FunnelSegment is one band of the prediction funnel, top to bottom.
type FunnelSegment struct {
	Label    string
	Value    string
	Sublabel string
}

// Funnel renders up to four stacked trapezoid bands with fixed relative
// widths (100, 80, 60, 40) regardless of their values.
func Funnel(width, height int, segments []FunnelSegment, opts FunnelOpts) (template.HTML, error) {
	if len(segments) == 0 {
		return "", fmt.Errorf("svg: segments required")
	}
	if len(segments) > len(funnelWidths) {
		return "", fmt.Errorf("svg: at most %d segments supported", len(funnelWidths))
	}
	if width <= 0 {
		width = 420
	}
	if height <= 0 {
		height = 280
	}

	colors := opts.Colors
	if len(colors) == 0 {
		colors = []string{"#1d4ed8", "#2563eb", "#3b82f6", "#60a5fa"}
	}
	textColor := fallback(opts.TextColor, "#f8fafc")

	titleID := makeID(opts.Title, "funnel-title")
	descID := makeID(opts.Title, "funnel-desc")

	segHeight := float64(height) / float64(len(funnelWidths))
	center := float64(width) / 2

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Funnel de prédiction"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Répartition des devis par probabilité"))))

	for i, seg := range segments {
		topWidth := float64(width) * funnelWidths[i] / 100
		bottomWidth := topWidth
		if i+1 < len(funnelWidths) {
			bottomWidth = float64(width) * funnelWidths[i+1] / 100
		}
		topY := float64(i) * segHeight
		bottomY := topY + segHeight

		color := colors[i%len(colors)]
		b.WriteString(fmt.Sprintf("<polygon points=\"%.2f,%.2f %.2f,%.2f %.2f,%.2f %.2f,%.2f\" fill=\"%s\" aria-label=\"%s\"></polygon>",
			center-topWidth/2, topY,
			center+topWidth/2, topY,
			center+bottomWidth/2, bottomY,
			center-bottomWidth/2, bottomY,
			color, template.HTMLEscapeString(seg.Label)))

		labelY := topY + segHeight/2
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"12\" font-weight=\"bold\" text-anchor=\"middle\">%s</text>", center, labelY-4, textColor, template.HTMLEscapeString(seg.Label)))
		sub := seg.Value
		if seg.Sublabel != "" {
			sub = sub + " · " + seg.Sublabel
		}
		if sub != "" {
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", center, labelY+10, textColor, template.HTMLEscapeString(sub)))
		}
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
