package render

import (
	"github.com/sahadev/jyotish/chart"
)

// housePos places one sign's box on the canvas
type housePos struct {
	sign int
	x, y float64
}

// North renders the rasi chart in the north Indian arrangement: a 3x3
// scaffold with the inner houses offset half a cell, giving the classic
// diamond-adjacent look while staying rectangular and legible.
func North(c *chart.Chart, opts Options) string {
	canvas, buf := newCanvas(opts)
	size := opts.Size

	margin := int(float64(size) * 0.06)
	innerW := size - 2*margin
	innerH := size - 2*margin
	titleH := 0
	if opts.Title != "" {
		titleH = int(float64(size) * 0.06)
		canvas.Text(margin+10, margin+titleH*6/10, opts.Title,
			textStyle(size*3/100, opts.FontFamily, opts.TextColor, "700"))
	}

	gridY0 := float64(margin + titleH + 6)
	gridW := float64(innerW)
	gridH := float64(innerH - titleH - 10)

	cellW := gridW / 3
	cellH := gridH / 3

	m := float64(margin)
	layout := []housePos{
		{1, m + cellW, gridY0},                   // Aries (top-center)
		{2, m + 2*cellW, gridY0},                 // Taurus (top-right)
		{3, m + 2*cellW, gridY0 + 0.5*cellH},     // Gemini (upper-right inner)
		{4, m + 2*cellW, gridY0 + 1.5*cellH},     // Cancer (lower-right inner)
		{5, m + 2*cellW, gridY0 + 2*cellH},       // Leo (bottom-right)
		{6, m + cellW, gridY0 + 2*cellH},         // Virgo (bottom-center)
		{7, m, gridY0 + 2*cellH},                 // Libra (bottom-left)
		{8, m, gridY0 + 1.5*cellH},               // Scorpio (lower-left inner)
		{9, m, gridY0 + 0.5*cellH},               // Sagittarius (upper-left inner)
		{10, m, gridY0},                          // Capricorn (top-left)
		{11, m + cellW*1.02, gridY0 + 0.5*cellH}, // Aquarius (mid, upper)
		{12, m + cellW*1.02, gridY0 + 1.5*cellH}, // Pisces (mid, lower)
	}

	houseW := int(cellW * 0.94)
	houseH := int(cellH * 0.9)
	fontBase := int(float64(size) * 0.014)
	if fontBase < 12 {
		fontBase = 12
	}

	// Boxes and headers
	for _, hp := range layout {
		x, y := int(hp.x), int(hp.y)
		canvas.Rect(x, y, houseW, houseH,
			"stroke:"+opts.StrokeColor+";stroke-width:1.6;fill:none")
		headerX := x + 8
		headerY := y + fontBase + 4
		canvas.Text(headerX, headerY, ZodiacGlyphs[hp.sign-1],
			textStyle(fontBase*12/10, opts.FontFamily, opts.TextColor, ""))
		canvas.Text(headerX+fontBase*16/10, headerY, chart.SignName(hp.sign),
			textStyle(fontBase, opts.FontFamily, opts.TextColor, "700"))
	}

	bySign := planetsBySign(c)

	// Planets flow down each house in two columns
	dotR := int(float64(size) * 0.0035)
	if dotR < 3 {
		dotR = 3
	}
	for _, hp := range layout {
		x, y := int(hp.x), int(hp.y)
		items := bySign[hp.sign]
		lineY := y + fontBase*19/10 + 6
		leftX := x + 8
		rightX := x + houseW/2 + 6
		left := true
		for _, item := range items {
			label := item.name
			if opts.ShowDegrees {
				label += " " + degMin(item.deg)
			}
			lines := wrapLines(label, 18)
			colX := rightX
			if left {
				colX = leftX
			}
			canvas.Circle(colX, lineY+2, dotR, "fill:"+planetColor(item.name))
			for li, line := range lines {
				canvas.Text(colX+dotR+6, lineY+fontBase*6/10+li*fontBase*105/100, line,
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

	// ASC marker
	ascSign := ascSignOf(c.Ascendant)
	for _, hp := range layout {
		if hp.sign == ascSign {
			ascBadge(canvas, opts, int(hp.x), int(hp.y), houseW, houseH, fontBase)
			break
		}
	}

	legendY := int(gridY0 + gridH + 6)
	legend(canvas, opts, margin, legendY, fontBase, 78)

	canvas.End()
	return buf.String()
}
