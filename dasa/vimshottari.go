// Package dasa computes a simplified Vimshottari Mahadasha timeline
// from the Moon's nakshatra position at birth.
package dasa

import (
	"fmt"
	"math"
	"time"

	"github.com/sahadev/jyotish/chart"
)

// Order is the fixed Vimshottari lord rotation.
var Order = []string{"Ketu", "Venus", "Sun", "Moon", "Mars", "Rahu", "Jupiter", "Saturn", "Mercury"}

// Years maps each lord to its Mahadasha duration in years.
var Years = map[string]float64{
	"Ketu": 7, "Venus": 20, "Sun": 6, "Moon": 10, "Mars": 7,
	"Rahu": 18, "Jupiter": 16, "Saturn": 19, "Mercury": 17,
}

// Period is one Mahadasha span in the timeline.
type Period struct {
	Name          string  `json:"name"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	DurationYears float64 `json:"duration_years"`
}

// Timeline is the current Mahadasha plus the upcoming sequence.
type Timeline struct {
	Current        string   `json:"current"`
	RemainingYears float64  `json:"remaining_years,omitempty"`
	Sequence       []Period `json:"sequence"`
}

// Compute builds the timeline from the Moon's longitude. The current
// lord follows from the nakshatra index, and the remaining portion of
// its period from how far the Moon has moved through the mansion. A
// zero birth time falls back to the current instant, producing relative
// spans.
func Compute(moonLon float64, birth time.Time) *Timeline {
	nak := chart.NakshatraOf(moonLon)

	startLord := Order[nak.Index%len(Order)]
	remainingYears := Years[startLord] * (1.0 - nak.Fraction)

	if birth.IsZero() {
		birth = time.Now().UTC()
	}

	sequence := make([]Period, 0, 7)

	curStart := birth
	curEnd := curStart.Add(yearsToDuration(remainingYears))
	sequence = append(sequence, Period{
		Name:          startLord,
		Start:         curStart.Format(time.RFC3339),
		End:           curEnd.Format(time.RFC3339),
		DurationYears: remainingYears,
	})

	startIndex := indexOf(startLord)
	idx := (startIndex + 1) % len(Order)
	runningStart := curEnd
	for i := 1; i < 7; i++ {
		lord := Order[idx]
		dur := Years[lord]
		runningEnd := runningStart.Add(yearsToDuration(dur))
		sequence = append(sequence, Period{
			Name:          lord,
			Start:         runningStart.Format(time.RFC3339),
			End:           runningEnd.Format(time.RFC3339),
			DurationYears: dur,
		})
		runningStart = runningEnd
		idx = (idx + 1) % len(Order)
	}

	return &Timeline{
		Current:        fmt.Sprintf("%s Mahadasha (approx)", startLord),
		RemainingYears: round3(remainingYears),
		Sequence:       sequence,
	}
}

// Unknown is the timeline returned when the chart carries no Moon
// position.
func Unknown() *Timeline {
	return &Timeline{
		Current:  "Unknown (no Moon position)",
		Sequence: []Period{},
	}
}

// yearsToDuration converts fractional years to a duration using the
// Julian year of 365.25 days.
func yearsToDuration(years float64) time.Duration {
	return time.Duration(years * 365.25 * 24 * float64(time.Hour))
}

func indexOf(lord string) int {
	for i, name := range Order {
		if name == lord {
			return i
		}
	}
	return 0
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
