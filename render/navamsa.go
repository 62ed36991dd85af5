package render

import (
	"fmt"
	"sort"

	"github.com/sahadev/jyotish/chart"
)

// NavamsaTable renders the navamsa placements as a plain listing, one
// planet per line with its ninth-harmonic sign.
func NavamsaTable(c *chart.Chart, opts Options) string {
	size := opts.Size
	if size == 0 {
		size = 420
	}
	tableOpts := opts
	tableOpts.Size = size

	canvas, buf := newCanvas(tableOpts)

	x, y := 12, 20
	canvas.Text(x, y, "Navamsa",
		textStyle(16, opts.FontFamily, opts.TextColor, "700"))

	names := make([]string, 0, len(c.Navamsa))
	for name := range c.Navamsa {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		sign := c.Navamsa[name]
		line := fmt.Sprintf("%s: %d (%s)", name, sign, chart.SignName(sign))
		canvas.Text(x, y+(i+1)*18, line,
			textStyle(13, opts.FontFamily, opts.TextColor, ""))
	}

	canvas.End()
	return buf.String()
}
