// Package yoga holds heuristic detectors for a few classical planetary
// combinations. They are deliberately conservative threshold checks
// meant for quick feedback, not a full shastra-grade analysis.
package yoga

import (
	"fmt"
	"math"

	"github.com/sahadev/jyotish/chart"
	"github.com/sahadev/jyotish/ephemeris"
)

// kendra houses counted from Aries, and the trikona set used for the
// Mahalakshmi check
var (
	kendraSigns  = map[int]bool{1: true, 4: true, 7: true, 10: true}
	trikonaSigns = map[int]bool{1: true, 5: true, 9: true}
)

// rajaLords is the checking order for the kendra-strength heuristic
var rajaLords = []string{"Sun", "Moon", "Mercury", "Venus", "Jupiter", "Mars", "Saturn"}

// angleDistance returns the smallest separation between two longitudes
// in degrees.
func angleDistance(a, b float64) float64 {
	return math.Abs(math.Mod(a-b+180+360*4, 360) - 180)
}

// Detect runs the yoga heuristics over a rasi chart and returns
// human-readable findings, deduplicated in detection order.
func Detect(c *chart.Chart) []string {
	out := []string{}
	p := c.Placements

	// Gajakesari: strong Jupiter-Moon relationship, conjunction or
	// trine within orb
	if jup, ok := p["Jupiter"]; ok {
		if moon, ok := p["Moon"]; ok {
			d := angleDistance(jup.Lon, moon.Lon)
			if d <= 6 || math.Abs(d-120) <= 6 || math.Abs(d-240) <= 6 {
				out = append(out, "Gajakesari Yoga (heuristic)")
			}
		}
	}

	// Chandra-Mangal: Moon-Mars close conjunction
	if moon, ok := p["Moon"]; ok {
		if mars, ok := p["Mars"]; ok {
			if angleDistance(moon.Lon, mars.Lon) <= 3 {
				out = append(out, "Chandra-Mangal Yoga (heuristic)")
			}
		}
	}

	// Mahalakshmi: Venus in a trikona sign
	if venus, ok := p["Venus"]; ok {
		if trikonaSigns[venus.Sign] {
			out = append(out, "Mahalakshmi Yoga (heuristic)")
		}
	}

	// Raja-yoga family: strong lords placed in kendras
	for _, lord := range rajaLords {
		if pl, ok := p[lord]; ok && kendraSigns[pl.Sign] {
			out = append(out, fmt.Sprintf("Possible Raja-yoga influence (%s in kendra)", lord))
		}
	}

	// Very early degrees flag a possibly debilitated placement worth a
	// closer look
	for _, name := range ephemeris.Grahas {
		pl, ok := p[name]
		if !ok {
			continue
		}
		if pl.Deg < 2.0 {
			out = append(out, fmt.Sprintf("Possible Neecha (weak) placement: %s (~%.2f°) — may require detailed inspection", name, pl.Deg))
		}
	}

	// dedupe, preserving order
	seen := make(map[string]bool, len(out))
	filtered := make([]string, 0, len(out))
	for _, s := range out {
		if !seen[s] {
			filtered = append(filtered, s)
			seen[s] = true
		}
	}
	return filtered
}
