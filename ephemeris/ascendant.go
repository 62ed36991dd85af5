package ephemeris

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
)

// Ascendant returns the sidereal longitude of the rising degree in
// degrees for an instant and geographic location. Longitude is positive
// east. Near the poles the ascendant degenerates; those latitudes
// return 0 so chart assembly can carry on.
func Ascendant(t time.Time, lat, lon float64) float64 {
	if math.Abs(lat) > 89.9 {
		return 0
	}

	jde := julian.TimeToJD(t.UTC())

	// Local sidereal time in degrees (RAMC)
	gstDeg := sidereal.Apparent(jde).Sec() / 240
	theta := normalize(gstDeg+lon) * math.Pi / 180

	// True obliquity of the ecliptic
	_, dEps := nutation.Nutation(jde)
	eps := (nutation.MeanObliquity(jde).Deg() + dEps.Deg()) * math.Pi / 180

	phi := lat * math.Pi / 180

	// Meeus eq. 14.1, rearranged for atan2 quadrant safety
	num := math.Cos(theta)
	den := -(math.Sin(theta)*math.Cos(eps) + math.Tan(phi)*math.Sin(eps))
	asc := math.Atan2(num, den) * 180 / math.Pi

	return normalize(asc - Ayanamsa(jde))
}
