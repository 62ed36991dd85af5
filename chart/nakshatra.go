package chart

import "math"

// NakshatraNames lists the 27 lunar mansions in zodiacal order.
var NakshatraNames = []string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni",
	"Uttara Phalguni", "Hasta", "Chitra", "Swati", "Vishakha", "Anuradha",
	"Jyeshtha", "Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana",
	"Dhanishta", "Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada",
	"Revati",
}

// Nakshatra is a position within one of the 27 lunar mansions.
type Nakshatra struct {
	Index    int     // 0-based mansion index
	Name     string  // mansion name
	Fraction float64 // fraction of the mansion already traversed, [0, 1)
}

// NakshatraOf locates a longitude within the 27 mansions of 13 deg 20
// min each.
func NakshatraOf(lon float64) Nakshatra {
	lon = normalize(lon)
	span := 360.0 / 27.0
	idx := int(math.Floor(lon/span)) % 27
	return Nakshatra{
		Index:    idx,
		Name:     NakshatraNames[idx],
		Fraction: math.Mod(lon, span) / span,
	}
}
