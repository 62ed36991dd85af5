package chart

import "math"

// Navamsa returns the 1-based sign occupied in the ninth divisional
// chart. Each sign is split into nine parts of 3 deg 20 min; the parts
// count continuously through the zodiac from the start of the occupied
// sign, wrapping modulo twelve.
func Navamsa(lon float64) int {
	lon = normalize(lon)
	part := 30.0 / 9.0
	signIndex := int(math.Floor(lon / 30))
	navIndex := int(math.Floor(math.Mod(lon, 30) / part))
	return (signIndex*9+navIndex)%12 + 1
}
