// Package ephemeris computes sidereal ecliptic longitudes for the grahas
// used in Vedic birth charts.
//
// Sun and Moon positions come from the Meeus algorithms in
// github.com/soniakeys/meeus. Mercury through Saturn use Keplerian mean
// orbital elements, which keeps accuracy well inside a zodiac sign for
// any birth date in the last few centuries. Rahu is the mean lunar node;
// Ketu sits exactly opposite.
package ephemeris

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/solar"
)

// Grahas lists the bodies placed in a rasi chart, in traditional
// presentation order.
var Grahas = []string{
	"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn", "Rahu", "Ketu",
}

// Positions returns sidereal ecliptic longitudes in degrees, keyed by
// graha name, for the given instant. The instant is converted to UTC
// before computing the Julian day.
func Positions(t time.Time) map[string]float64 {
	jde := julian.TimeToJD(t.UTC())
	T := base.J2000Century(jde)
	ayan := Ayanamsa(jde)

	longs := make(map[string]float64, len(Grahas))
	longs["Sun"] = normalize(sunLongitude(jde) - ayan)
	longs["Moon"] = normalize(moonLongitude(jde) - ayan)
	for _, name := range []string{"Mercury", "Venus", "Mars", "Jupiter", "Saturn"} {
		longs[name] = normalize(planetLongitude(name, T) - ayan)
	}
	longs["Rahu"] = normalize(meanLunarNode(T) - ayan)
	longs["Ketu"] = normalize(longs["Rahu"] + 180)
	return longs
}

// TropicalPositions returns tropical longitudes, used mostly in tests
// and for callers that want to apply their own ayanamsa.
func TropicalPositions(t time.Time) map[string]float64 {
	jde := julian.TimeToJD(t.UTC())
	T := base.J2000Century(jde)

	longs := make(map[string]float64, len(Grahas))
	longs["Sun"] = normalize(sunLongitude(jde))
	longs["Moon"] = normalize(moonLongitude(jde))
	for _, name := range []string{"Mercury", "Venus", "Mars", "Jupiter", "Saturn"} {
		longs[name] = normalize(planetLongitude(name, T))
	}
	longs["Rahu"] = normalize(meanLunarNode(T))
	longs["Ketu"] = normalize(longs["Rahu"] + 180)
	return longs
}

// sunLongitude returns the apparent geocentric longitude of the Sun in
// degrees, referred to the ecliptic of date.
func sunLongitude(jde float64) float64 {
	return solar.ApparentLongitude(base.J2000Century(jde)).Deg()
}

// moonLongitude returns the apparent geocentric longitude of the Moon in
// degrees. Meeus gives the geometric longitude, so nutation in longitude
// is added to get the apparent value.
func moonLongitude(jde float64) float64 {
	lambda, _, _ := moonposition.Position(jde)
	dPsi, _ := nutation.Nutation(jde)
	return lambda.Deg() + dPsi.Deg()
}

// meanLunarNode returns the mean longitude of the Moon's ascending node
// (Rahu) in degrees. Polynomial from Meeus chapter 47.
func meanLunarNode(T float64) float64 {
	return 125.0445479 - 1934.1362891*T + 0.0020754*T*T +
		T*T*T/467441 - T*T*T*T/60616000
}

// normalize wraps an angle in degrees to [0, 360)
func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
