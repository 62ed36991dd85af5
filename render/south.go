package render

import (
	"github.com/sahadev/jyotish/chart"
)

// South renders the rasi chart in the south Indian arrangement: a fixed
// 4x3 grid where signs keep their positions and the chart is read
// clockwise from Aries in the top row.
func South(c *chart.Chart, opts Options) string {
	canvas, buf := newCanvas(opts)
	size := opts.Size

	margin := 30
	innerW := size - 2*margin
	innerH := size - 2*margin

	titleH := 0
	if opts.Title != "" {
		titleH = int(float64(size) * 0.06)
		canvas.Text(margin+12, margin+titleH*6/10, opts.Title,
			textStyle(size*3/100, opts.FontFamily, opts.TextColor, "700"))
	}

	gridY0 := float64(margin + titleH + 6)
	gridW := float64(innerW)
	gridH := float64(innerH - titleH - 10)

	cellW := gridW / 4
	cellH := gridH / 3

	m := float64(margin)
	layout := []housePos{
		{1, m + 3*cellW, gridY0},
		{2, m + 2*cellW, gridY0},
		{3, m + 1*cellW, gridY0},
		{4, m, gridY0},
		{5, m, gridY0 + cellH},
		{6, m, gridY0 + 2*cellH},
		{7, m + 1*cellW, gridY0 + 2*cellH},
		{8, m + 2*cellW, gridY0 + 2*cellH},
		{9, m + 3*cellW, gridY0 + 2*cellH},
		{10, m + 3*cellW, gridY0 + cellH},
		{11, m + 2*cellW, gridY0 + cellH},
		{12, m + 1*cellW, gridY0 + cellH},
	}

	// Panel backing with rounded border
	canvas.Roundrect(margin-6, int(gridY0)-6, int(gridW)+12, int(gridH)+12, 6, 6,
		"fill:#fff;stroke:"+opts.StrokeColor+";stroke-width:2")

	fontBase := int(float64(size) * 0.014)
	if fontBase < 12 {
		fontBase = 12
	}

	for _, hp := range layout {
		x, y := int(hp.x), int(hp.y)
		canvas.Rect(x, y, int(cellW), int(cellH),
			"stroke:"+opts.StrokeColor+";stroke-width:1.6;fill:none")

		headerX := x + 8
		headerY := y + fontBase + 4
		canvas.Text(headerX, headerY, ZodiacGlyphs[hp.sign-1],
			textStyle(fontBase*12/10, opts.FontFamily, opts.TextColor, ""))
		canvas.Text(headerX+fontBase*16/10, headerY, chart.SignName(hp.sign),
			textStyle(fontBase*105/100, opts.FontFamily, opts.TextColor, "700"))
	}

	bySign := planetsBySign(c)

	dotR := int(float64(size) * 0.0035)
	if dotR < 3 {
		dotR = 3
	}
	for _, hp := range layout {
		x, y := int(hp.x), int(hp.y)
		items := bySign[hp.sign]
		lineY := y + fontBase*18/10 + 8
		colXLeft := x + 8
		colXRight := x + int(cellW)/2 + 6
		left := true
		for _, item := range items {
			xDot := colXRight
			if left {
				xDot = colXLeft
			}
			label := item.name
			if opts.ShowDegrees {
				label += " " + degMin(item.deg)
			}
			lines := wrapLines(label, 18)
			for li, line := range lines {
				if li == 0 {
					canvas.Circle(xDot, lineY+2, dotR, "fill:"+planetColor(item.name))
				}
				canvas.Text(xDot+dotR+6, lineY+li*fontBase*105/100+fontBase*6/10, line,
					textStyle(fontBase*95/100, opts.FontFamily, opts.TextColor, ""))
			}
			if left {
				left = false
			} else {
				left = true
				n := len(lines)
				if n < 1 {
					n = 1
				}
				lineY += fontBase * 13 / 10 * n
			}
		}
	}

	ascSign := ascSignOf(c.Ascendant)
	for _, hp := range layout {
		if hp.sign == ascSign {
			ascBadge(canvas, opts, int(hp.x), int(hp.y), int(cellW), int(cellH), fontBase)
			break
		}
	}

	legendY := int(gridY0 + gridH + 6)
	legend(canvas, opts, margin, legendY, fontBase, 80)

	canvas.End()
	return buf.String()
}
