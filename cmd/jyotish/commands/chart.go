package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/sahadev/jyotish/chart"
	"github.com/sahadev/jyotish/config"
	"github.com/sahadev/jyotish/dasa"
	"github.com/sahadev/jyotish/ephemeris"
	"github.com/sahadev/jyotish/errors"
	"github.com/sahadev/jyotish/geocode"
	"github.com/sahadev/jyotish/render"
	"github.com/sahadev/jyotish/yoga"
)

// ChartCmd computes a single birth chart from the command line
var ChartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Compute a birth chart",
	Long: `Compute the rasi and navamsa chart for a birth moment without
starting the server. Accepts a place name (geocoded via Nominatim) or
direct "lat,lon" coordinates.`,
	RunE: runChart,
}

var (
	chartName  string
	chartDate  string
	chartTime  string
	chartPlace string
	chartTZ    string
	chartStyle string
	chartSVG   string
)

func init() {
	ChartCmd.Flags().StringVar(&chartName, "name", "", "Name for the chart heading")
	ChartCmd.Flags().StringVar(&chartDate, "date", "", "Birth date (YYYY-MM-DD)")
	ChartCmd.Flags().StringVar(&chartTime, "time", "", "Birth time (HH:MM)")
	ChartCmd.Flags().StringVar(&chartPlace, "place", "", "Birth place (name or 'lat,lon')")
	ChartCmd.Flags().StringVar(&chartTZ, "tz", "", "IANA timezone (guessed from place when omitted)")
	ChartCmd.Flags().StringVar(&chartStyle, "style", "", "Chart style: north, south")
	ChartCmd.Flags().StringVar(&chartSVG, "svg", "", "Write the rendered chart SVG to this file")

	ChartCmd.MarkFlagRequired("date")
	ChartCmd.MarkFlagRequired("time")
	ChartCmd.MarkFlagRequired("place")
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	date, err := time.Parse("2006-01-02", chartDate)
	if err != nil {
		return errors.Newf("invalid date %q, expected YYYY-MM-DD", chartDate)
	}
	clock, err := time.Parse("15:04", chartTime)
	if err != nil {
		return errors.Newf("invalid time %q, expected HH:MM", chartTime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	loc, err := geocode.NewClient(cfg.Geocoder).Resolve(ctx, chartPlace)
	if err != nil {
		return errors.WithHint(err, "Enter 'lat,lon' or a different place name")
	}

	tz := chartTZ
	if tz == "" {
		tz = geocode.GuessTimezoneFromLocation(chartPlace)
	}
	if tz == "" {
		tz, _ = geocode.DetectLocalTimezone()
	}
	normalized, err := geocode.NormalizeTimezone(tz)
	if err != nil {
		return errors.Newf("unknown timezone %q", tz)
	}

	birth, err := geocode.Localize(date.Year(), int(date.Month()), date.Day(),
		clock.Hour(), clock.Minute(), normalized)
	if err != nil {
		return errors.Wrap(err, "failed to localize birth time")
	}

	c := chart.Compute(chart.Input{
		Name:  chartName,
		Time:  birth,
		Lat:   loc.Lat,
		Lon:   loc.Lon,
		Place: chartPlace,
	})

	printChart(c)

	if yogas := yoga.Detect(c); len(yogas) > 0 {
		pterm.DefaultSection.Println("Yogas")
		for _, y := range yogas {
			pterm.Println("  • " + y)
		}
	}

	printDasas(c)

	if chartSVG != "" {
		style := chartStyle
		if style == "" {
			style = cfg.GetChartStyle()
		}
		svg := render.Rasi(c, style, render.DefaultOptions())
		if err := os.WriteFile(chartSVG, []byte(svg), config.DefaultFilePermissions); err != nil {
			return errors.Wrap(err, "failed to write SVG file")
		}
		pterm.Success.Printf("Chart written to %s\n", chartSVG)
	}

	return nil
}

func printChart(c *chart.Chart) {
	pterm.DefaultSection.Printf("Rasi chart (%s, %s)\n", c.Meta.Datetime, c.Meta.Timezone)

	rows := pterm.TableData{{"Graha", "Sign", "Degree", "Longitude", "Navamsa"}}
	for _, name := range ephemeris.Grahas {
		pl, ok := c.Placements[name]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			name,
			chart.SignName(pl.Sign),
			fmt.Sprintf("%.2f°", pl.Deg),
			fmt.Sprintf("%.4f°", pl.Lon),
			chart.SignName(c.Navamsa[name]),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	pterm.Printf("Ascendant: %s (%.2f°)\n", chart.SignName(c.AscSign), c.Ascendant)

	if nak, ok := c.MoonNakshatra(); ok {
		pterm.Printf("Moon nakshatra: %s (%.0f%% traversed)\n", nak.Name, nak.Fraction*100)
	}
}

func printDasas(c *chart.Chart) {
	var timeline *dasa.Timeline
	if moon, ok := c.Placements["Moon"]; ok {
		birth, _ := time.Parse(time.RFC3339, c.Meta.Datetime)
		timeline = dasa.Compute(moon.Lon, birth)
	} else {
		timeline = dasa.Unknown()
	}

	pterm.DefaultSection.Println("Vimshottari dasa")
	pterm.Printf("Current: %s (%.3f years remaining)\n", timeline.Current, timeline.RemainingYears)

	if len(timeline.Sequence) > 0 {
		rows := pterm.TableData{{"Lord", "Start", "End", "Years"}}
		for _, p := range timeline.Sequence {
			rows = append(rows, []string{
				p.Name,
				dasaDay(p.Start),
				dasaDay(p.End),
				fmt.Sprintf("%.2f", p.DurationYears),
			})
		}
		pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	}
}

// dasaDay reduces an RFC 3339 period boundary to its calendar day
func dasaDay(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02")
}
