package ephemeris

import "math"

// Keplerian mean orbital elements valid 1800 AD to 2050 AD, referred to
// the mean ecliptic and equinox of J2000 (Standish, JPL). Each element
// is a value at J2000 plus a rate per Julian century.
type orbitalElements struct {
	a, aDot   float64 // semi-major axis, au
	e, eDot   float64 // eccentricity
	i, iDot   float64 // inclination, deg
	l, lDot   float64 // mean longitude, deg
	w, wDot   float64 // longitude of perihelion, deg
	om, omDot float64 // longitude of ascending node, deg
}

var planetElements = map[string]orbitalElements{
	"Mercury": {
		0.38709927, 0.00000037,
		0.20563593, 0.00001906,
		7.00497902, -0.00594749,
		252.25032350, 149472.67411175,
		77.45779628, 0.16047689,
		48.33076593, -0.12534081,
	},
	"Venus": {
		0.72333566, 0.00000390,
		0.00677672, -0.00004107,
		3.39467605, -0.00078890,
		181.97909950, 58517.81538729,
		131.60246718, 0.00268329,
		76.67984255, -0.27769418,
	},
	"Earth": {
		1.00000261, 0.00000562,
		0.01671123, -0.00004392,
		-0.00001531, -0.01294668,
		100.46457166, 35999.37244981,
		102.93768193, 0.32327364,
		0.0, 0.0,
	},
	"Mars": {
		1.52371034, 0.00001847,
		0.09339410, 0.00007882,
		1.84969142, -0.00813131,
		-4.55343205, 19140.30268499,
		-23.94362959, 0.44441088,
		49.55953891, -0.29257343,
	},
	"Jupiter": {
		5.20288700, -0.00011607,
		0.04838624, -0.00013253,
		1.30439695, -0.00183714,
		34.39644051, 3034.74612775,
		14.72847983, 0.21252668,
		100.47390909, 0.20469106,
	},
	"Saturn": {
		9.53667594, -0.00125060,
		0.05386179, -0.00050991,
		2.48599187, 0.00193609,
		49.95424423, 1222.49362201,
		92.59887831, -0.41897216,
		113.66242448, -0.28867794,
	},
}

// General precession in ecliptic longitude, degrees per Julian century.
// Converts J2000-frame longitudes to the equinox of date.
const precessionRate = 1.39697

// planetLongitude returns the geocentric ecliptic longitude of a planet
// in degrees, referred to the ecliptic of date.
func planetLongitude(name string, T float64) float64 {
	px, py := heliocentric(planetElements[name], T)
	ex, ey := heliocentric(planetElements["Earth"], T)

	// Geocentric vector in the ecliptic plane
	lon := math.Atan2(py-ey, px-ex) * 180 / math.Pi

	return normalize(lon + precessionRate*T)
}

// heliocentric returns the x, y coordinates of a body in the J2000
// ecliptic plane, in au. The small z component is dropped since only
// ecliptic longitude is needed.
func heliocentric(el orbitalElements, T float64) (x, y float64) {
	a := el.a + el.aDot*T
	e := el.e + el.eDot*T
	i := (el.i + el.iDot*T) * math.Pi / 180
	l := el.l + el.lDot*T
	wBar := el.w + el.wDot*T
	om := (el.om + el.omDot*T) * math.Pi / 180

	// Argument of perihelion and mean anomaly
	w := (wBar - el.om - el.omDot*T) * math.Pi / 180
	M := normalize(l-wBar) * math.Pi / 180

	E := solveKepler(M, e)

	// Position in the orbital plane
	xp := a * (math.Cos(E) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(E)

	cw, sw := math.Cos(w), math.Sin(w)
	co, so := math.Cos(om), math.Sin(om)
	ci := math.Cos(i)

	x = (cw*co-sw*so*ci)*xp + (-sw*co-cw*so*ci)*yp
	y = (cw*so+sw*co*ci)*xp + (-sw*so+cw*co*ci)*yp
	return x, y
}

// solveKepler solves Kepler's equation M = E - e*sin(E) by Newton
// iteration. Converges in a handful of steps for planetary
// eccentricities.
func solveKepler(M, e float64) float64 {
	E := M
	if e > 0.8 {
		E = math.Pi
	}
	for iter := 0; iter < 30; iter++ {
		dE := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
		E -= dE
		if math.Abs(dE) < 1e-9 {
			break
		}
	}
	return E
}
