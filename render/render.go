// Package render draws birth charts as SVG in the two common regional
// styles, north and south Indian, plus a plain navamsa table.
package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/sahadev/jyotish/chart"
)

// ZodiacGlyphs holds the unicode glyphs Aries through Pisces.
var ZodiacGlyphs = []string{
	"♈", "♉", "♊", "♋", "♌", "♍",
	"♎", "♏", "♐", "♑", "♒", "♓",
}

// PlanetColors keeps contrast against a white background.
var PlanetColors = map[string]string{
	"Sun":     "#E4572E",
	"Moon":    "#4C78A8",
	"Mercury": "#2E8B57",
	"Venus":   "#FF7F0E",
	"Mars":    "#D62728",
	"Jupiter": "#8C564B",
	"Saturn":  "#6A5ACD",
	"Rahu":    "#7F7F7F",
	"Ketu":    "#2B2B2B",
}

// legendOrder fixes the legend sequence, since map iteration would
// shuffle it between renders
var legendOrder = []string{
	"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn", "Rahu", "Ketu",
}

// Options control chart appearance.
type Options struct {
	Size        int
	BGColor     string
	StrokeColor string
	TextColor   string
	FontFamily  string
	ShowDegrees bool
	Title       string
}

// DefaultOptions returns the standard large white-card appearance.
func DefaultOptions() Options {
	return Options{
		Size:        900,
		BGColor:     "#ffffff",
		StrokeColor: "#222222",
		TextColor:   "#111111",
		FontFamily:  "Segoe UI, Roboto, Arial, Helvetica, sans-serif",
		ShowDegrees: true,
	}
}

// Rasi renders the rasi chart in the requested style. Any style string
// starting with "n" selects the north layout; everything else gets the
// south layout.
func Rasi(c *chart.Chart, style string, opts Options) string {
	if style == "" || strings.HasPrefix(strings.ToLower(style), "n") {
		return North(c, opts)
	}
	return South(c, opts)
}

func planetColor(name string) string {
	if color, ok := PlanetColors[name]; ok {
		return color
	}
	return "#333333"
}

// degMin formats degrees-in-sign as D°MM'
func degMin(deg float64) string {
	d := int(deg)
	m := int(math.Round((deg - float64(d)) * 60))
	return fmt.Sprintf("%d°%02d'", d, m)
}

// wrapLines breaks a label into lines of at most maxChars characters,
// splitting on spaces.
func wrapLines(text string, maxChars int) []string {
	words := strings.Fields(text)
	lines := []string{}
	cur := ""
	for _, w := range words {
		sep := 0
		if cur != "" {
			sep = 1
		}
		if len(cur)+len(w)+sep <= maxChars {
			cur = strings.TrimSpace(cur + " " + w)
		} else {
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// planetDeg is one planet's entry within a sign cell
type planetDeg struct {
	name string
	deg  float64
}

// planetsBySign groups placements by occupied sign in stable legend
// order.
func planetsBySign(c *chart.Chart) map[int][]planetDeg {
	bySign := make(map[int][]planetDeg, 12)
	for _, name := range legendOrder {
		p, ok := c.Placements[name]
		if !ok {
			continue
		}
		sign := p.Sign
		if sign == 0 {
			sign = chart.SignOf(p.Lon)
		}
		bySign[sign] = append(bySign[sign], planetDeg{name, p.Deg})
	}
	return bySign
}

// ascSignOf buckets the ascendant longitude into a 1-based sign
func ascSignOf(asc float64) int {
	return int(math.Mod(math.Floor(asc/30), 12)) + 1
}

// textStyle builds an SVG style attribute for canvas text
func textStyle(size int, family, fill, weight string) string {
	s := fmt.Sprintf("font-size:%dpx;font-family:%s;fill:%s", size, family, fill)
	if weight != "" {
		s += ";font-weight:" + weight
	}
	return s
}

// legend draws the planet color key under the grid
func legend(canvas *svg.SVG, opts Options, margin, legendY, fontBase, step int) {
	canvas.Text(margin+6, legendY+12, "Legend:",
		textStyle(fontBase*9/10, opts.FontFamily, opts.TextColor, "700"))
	lx := margin + 74
	for i, name := range legendOrder {
		canvas.Circle(lx+i*step, legendY+8, 4, "fill:"+PlanetColors[name])
		canvas.Text(lx+10+i*step, legendY+12, name,
			textStyle(fontBase*85/100, opts.FontFamily, opts.TextColor, ""))
	}
}

// ascBadge draws the ASC marker in the corner of a house cell
func ascBadge(canvas *svg.SVG, opts Options, x, y, w, h, fontBase int) {
	badgeR := int(float64(min(w, h)) * 0.07)
	cx := x + w - (badgeR + 10)
	cy := y + badgeR + 10
	canvas.Circle(cx, cy, badgeR, "fill:#111111;stroke:#ffffff;stroke-width:1.2")
	canvas.Text(cx-badgeR*7/10, cy+badgeR*28/100, "ASC",
		textStyle(fontBase*8/10, opts.FontFamily, "#fff", "700"))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// newCanvas starts an SVG document with background filled
func newCanvas(opts Options) (*svg.SVG, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	canvas := svg.New(buf)
	canvas.Startview(opts.Size, opts.Size, 0, 0, opts.Size, opts.Size)
	canvas.Rect(0, 0, opts.Size, opts.Size, "fill:"+opts.BGColor)
	return canvas, buf
}
