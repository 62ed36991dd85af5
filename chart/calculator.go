package chart

import (
	"math"
	"time"

	"github.com/sahadev/jyotish/ephemeris"
)

// Placement is one graha's position in the rasi chart.
type Placement struct {
	Lon  float64 `json:"lon"`  // sidereal longitude, degrees
	Sign int     `json:"rasi"` // 1-based sign number
	Deg  float64 `json:"deg"`  // degrees within the sign
}

// Meta carries the birth details a chart was computed from.
type Meta struct {
	Name     string  `json:"name,omitempty"`
	Datetime string  `json:"datetime"` // RFC 3339, in the birth timezone
	Place    string  `json:"place,omitempty"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone,omitempty"`
	Ayanamsa string  `json:"ayanamsa"`
}

// Chart is a complete computed birth chart.
type Chart struct {
	Meta       Meta                 `json:"meta"`
	Placements map[string]Placement `json:"rasi"`
	Ascendant  float64              `json:"asc"`
	AscSign    int                  `json:"asc_sign"`
	Navamsa    map[string]int       `json:"navamsa"`
}

// Input describes a birth moment and place.
type Input struct {
	Name     string
	Time     time.Time // timezone-aware birth instant
	Lat, Lon float64
	Place    string
}

// Compute builds the full rasi and navamsa chart for a birth moment.
func Compute(in Input) *Chart {
	longs := ephemeris.Positions(in.Time)

	placements := make(map[string]Placement, len(longs))
	navamsa := make(map[string]int, len(longs))
	for name, lon := range longs {
		placements[name] = Placement{
			Lon:  lon,
			Sign: SignOf(lon),
			Deg:  DegreeInSign(lon),
		}
		navamsa[name] = Navamsa(lon)
	}

	asc := ephemeris.Ascendant(in.Time, in.Lat, in.Lon)
	ascSign := int(math.Mod(math.Floor(asc/30), 12)) + 1

	return &Chart{
		Meta: Meta{
			Name:     in.Name,
			Datetime: in.Time.Format(time.RFC3339),
			Place:    in.Place,
			Lat:      in.Lat,
			Lon:      in.Lon,
			Timezone: in.Time.Location().String(),
			Ayanamsa: "lahiri",
		},
		Placements: placements,
		Ascendant:  asc,
		AscSign:    ascSign,
		Navamsa:    navamsa,
	}
}

// MoonNakshatra returns the Moon's nakshatra position, or false when the
// chart has no Moon placement.
func (c *Chart) MoonNakshatra() (Nakshatra, bool) {
	moon, ok := c.Placements["Moon"]
	if !ok {
		return Nakshatra{}, false
	}
	return NakshatraOf(moon.Lon), true
}
