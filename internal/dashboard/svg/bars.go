package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// GroupedBars renders two series side by side per label, used for the
// revenue-vs-objective widget.
func GroupedBars(width, height int, seriesA, seriesB []float64, labels []string, opts BarOpts) (template.HTML, error) {
	if len(labels) == 0 {
		return "", fmt.Errorf("svg: labels required")
	}
	if len(seriesA) != len(labels) || len(seriesB) != len(labels) {
		return "", fmt.Errorf("svg: series length must match labels")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	tickCount := opts.TickCount
	if tickCount <= 0 {
		tickCount = DefaultTicks
	}

	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5f5")
	colorA := fallback(opts.ColorA, "#2563eb")
	colorB := fallback(opts.ColorB, "#f59e0b")
	labelA := fallback(opts.SeriesALabel, "CA réalisé")
	labelB := fallback(opts.SeriesBLabel, "Objectif")

	chartWidth := float64(width) - 2*padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	_, maxA := seriesBounds(seriesA)
	_, maxB := seriesBounds(seriesB)
	maxVal := maxA
	if maxB > maxVal {
		maxVal = maxB
	}
	if maxVal <= 0 {
		maxVal = 1
	}
	scale := chartHeight / maxVal
	bottom := padding + chartHeight

	groupWidth := chartWidth / float64(len(labels))
	barWidth := groupWidth / 3

	titleID := makeID(opts.Title, "bars-title")
	descID := makeID(opts.Title, "bars-desc")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Histogramme"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Comparaison par commercial"))))

	for i := 0; i <= tickCount; i++ {
		ratio := float64(i) / float64(tickCount)
		value := maxVal * ratio
		y := bottom - ratio*chartHeight
		b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2,4\" aria-hidden=\"true\"></line>", padding, y, padding+chartWidth, y, gridColor))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"end\">%s</text>", padding-6, y+4, axisColor, template.HTMLEscapeString(formatTick(value))))
	}

	b.WriteString(fmt.Sprintf("<g stroke=\"%s\" aria-hidden=\"true\">", axisColor))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, padding, padding, bottom))
	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke-width=\"1\"></line>", padding, bottom, padding+chartWidth, bottom))
	b.WriteString("</g>")

	for i, label := range labels {
		baseX := padding + float64(i)*groupWidth
		hA := seriesA[i] * scale
		if hA < 0 {
			hA = 0
		}
		hB := seriesB[i] * scale
		if hB < 0 {
			hB = 0
		}
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s %s\"></rect>", baseX+barWidth*0.3, bottom-hA, barWidth, hA, colorA, template.HTMLEscapeString(labelA), template.HTMLEscapeString(label)))
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s %s\"></rect>", baseX+barWidth*1.4, bottom-hB, barWidth, hB, colorB, template.HTMLEscapeString(labelB), template.HTMLEscapeString(label)))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", baseX+groupWidth/2, bottom+14, axisColor, template.HTMLEscapeString(label)))
	}

	legendY := padding - 12
	if legendY < 12 {
		legendY = 12
	}
	b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"10\" height=\"10\" fill=\"%s\"></rect>", padding, legendY-8, colorA))
	b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\">%s</text>", padding+14, legendY, axisColor, template.HTMLEscapeString(labelA)))
	b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"10\" height=\"10\" fill=\"%s\"></rect>", padding+120, legendY-8, colorB))
	b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\">%s</text>", padding+134, legendY, axisColor, template.HTMLEscapeString(labelB)))

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

// MonthlyBars renders one bar per month, colored by the sign of the
// month-over-month delta: green for growth, red for decline, neutral for
// the baseline month.
func MonthlyBars(width, height int, values []float64, deltas []*float64, labels []string, opts BarOpts) (template.HTML, error) {
	if len(labels) == 0 {
		return "", fmt.Errorf("svg: labels required")
	}
	if len(values) != len(labels) {
		return "", fmt.Errorf("svg: values length must match labels")
	}
	if len(deltas) != len(values) {
		return "", fmt.Errorf("svg: deltas length must match values")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}

	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5f5")
	growColor := fallback(opts.ColorA, "#16a34a")
	dropColor := fallback(opts.ColorB, "#dc2626")
	neutralColor := "#64748b"

	chartWidth := float64(width) - 2*padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	_, maxVal := seriesBounds(values)
	if maxVal <= 0 {
		maxVal = 1
	}
	scale := chartHeight / maxVal
	bottom := padding + chartHeight
	slot := chartWidth / float64(len(labels))
	barWidth := slot * 0.6

	titleID := makeID(opts.Title, "monthly-title")
	descID := makeID(opts.Title, "monthly-desc")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "CA par mois"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Chiffre d'affaires mensuel"))))

	b.WriteString(fmt.Sprintf("<line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1\"></line>", padding, bottom, padding+chartWidth, bottom, gridColor))

	for i, label := range labels {
		h := values[i] * scale
		if h < 0 {
			h = 0
		}
		color := neutralColor
		if deltas[i] != nil {
			if *deltas[i] >= 0 {
				color = growColor
			} else {
				color = dropColor
			}
		}
		x := padding + float64(i)*slot + (slot-barWidth)/2
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\" aria-label=\"%s\"></rect>", x, bottom-h, barWidth, h, color, template.HTMLEscapeString(label)))
		if deltas[i] != nil {
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"9\" text-anchor=\"middle\">%+.1f%%</text>", x+barWidth/2, bottom-h-4, color, *deltas[i]))
		}
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", x+barWidth/2, bottom+14, axisColor, template.HTMLEscapeString(label)))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

func seriesBounds(series []float64) (float64, float64) {
	if len(series) == 0 {
		return 0, 0
	}
	return bounds(series)
}
