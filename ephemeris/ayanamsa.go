package ephemeris

import "github.com/soniakeys/meeus/v3/base"

// Lahiri (Chitrapaksha) ayanamsa at J2000.0, in degrees, and its drift
// per Julian century (the general precession rate). The linear model is
// accurate to better than an arcminute across the 20th and 21st
// centuries, far tighter than a chart cares about.
const (
	lahiriJ2000 = 23.85236
	lahiriRate  = 1.396971
)

// Ayanamsa returns the Lahiri ayanamsa in degrees for a Julian day.
// Sidereal longitude = tropical longitude - ayanamsa.
func Ayanamsa(jde float64) float64 {
	T := base.J2000Century(jde)
	return lahiriJ2000 + lahiriRate*T
}
