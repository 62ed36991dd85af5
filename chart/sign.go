// Package chart assembles sidereal birth charts: rasi placements,
// navamsa placements, and nakshatra positions from ecliptic longitudes.
package chart

import "math"

// SignNames maps 1-based sign numbers to their Western names, used in
// renderings and fallback readings.
var SignNames = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignOf returns the 1-based rasi (sign) number for a longitude.
// Each sign spans 30 degrees starting at sidereal Aries 0.
func SignOf(lon float64) int {
	return int(math.Floor(normalize(lon)/30)) + 1
}

// DegreeInSign returns the degrees traversed within the occupied sign,
// in [0, 30).
func DegreeInSign(lon float64) float64 {
	return math.Mod(normalize(lon), 30)
}

// SignName returns the name for a 1-based sign number, or empty for
// out-of-range values.
func SignName(sign int) string {
	if sign < 1 || sign > 12 {
		return ""
	}
	return SignNames[sign-1]
}

// normalize wraps a longitude in degrees to [0, 360)
func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
