package chart

import (
	"math"
	"testing"
	"time"
)

func TestSignOf(t *testing.T) {
	cases := []struct {
		lon  float64
		sign int
	}{
		{0, 1},
		{29.999, 1},
		{30, 2},
		{185.5, 7},
		{359.999, 12},
		{360, 1},  // wraps
		{-10, 12}, // negative wraps backward
	}
	for _, tc := range cases {
		if got := SignOf(tc.lon); got != tc.sign {
			t.Errorf("SignOf(%f) = %d, want %d", tc.lon, got, tc.sign)
		}
	}
}

func TestDegreeInSign(t *testing.T) {
	if got := DegreeInSign(95.25); math.Abs(got-5.25) > 1e-9 {
		t.Errorf("DegreeInSign(95.25) = %f, want 5.25", got)
	}
	if got := DegreeInSign(30); got != 0 {
		t.Errorf("DegreeInSign(30) = %f, want 0", got)
	}
}

func TestNavamsa(t *testing.T) {
	cases := []struct {
		lon float64
		nav int
	}{
		{0, 1},        // Aries first pada -> Aries
		{3.34, 2},     // Aries second pada -> Taurus
		{29.99, 9},    // Aries last pada -> Sagittarius
		{30, 10},      // Taurus first pada -> Capricorn
		{120, 1},      // Leo first pada wraps around to Aries
		{200, 1},      // Libra, seventh pada
		{359.999, 12}, // Pisces last pada -> Pisces
	}
	for _, tc := range cases {
		if got := Navamsa(tc.lon); got != tc.nav {
			t.Errorf("Navamsa(%f) = %d, want %d", tc.lon, got, tc.nav)
		}
	}
}

func TestNakshatraOf(t *testing.T) {
	span := 360.0 / 27.0

	n := NakshatraOf(0)
	if n.Index != 0 || n.Name != "Ashwini" || n.Fraction != 0 {
		t.Errorf("NakshatraOf(0) = %+v, want Ashwini at fraction 0", n)
	}

	half := NakshatraOf(span / 2)
	if half.Index != 0 || math.Abs(half.Fraction-0.5) > 1e-9 {
		t.Errorf("half mansion: got %+v", half)
	}

	last := NakshatraOf(359.999)
	if last.Index != 26 || last.Name != "Revati" {
		t.Errorf("NakshatraOf(359.999) = %+v, want Revati", last)
	}
}

func TestCompute(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatal(err)
	}

	c := Compute(Input{
		Name:  "Test Native",
		Time:  time.Date(1990, 8, 15, 11, 0, 0, 0, loc),
		Lat:   13.0827,
		Lon:   80.2707,
		Place: "Chennai, India",
	})

	if len(c.Placements) != 9 {
		t.Fatalf("expected 9 placements, got %d", len(c.Placements))
	}

	for name, p := range c.Placements {
		if p.Sign < 1 || p.Sign > 12 {
			t.Errorf("%s sign %d out of range", name, p.Sign)
		}
		if p.Deg < 0 || p.Deg >= 30 {
			t.Errorf("%s degree-in-sign %f out of range", name, p.Deg)
		}
		if got := SignOf(p.Lon); got != p.Sign {
			t.Errorf("%s sign inconsistent with longitude", name)
		}
		nav, ok := c.Navamsa[name]
		if !ok || nav < 1 || nav > 12 {
			t.Errorf("%s navamsa %d invalid", name, nav)
		}
	}

	if c.AscSign < 1 || c.AscSign > 12 {
		t.Errorf("ascendant sign %d out of range", c.AscSign)
	}
	if c.Meta.Timezone != "Asia/Kolkata" {
		t.Errorf("timezone = %q", c.Meta.Timezone)
	}
	if c.Meta.Ayanamsa != "lahiri" {
		t.Errorf("ayanamsa = %q", c.Meta.Ayanamsa)
	}

	if _, ok := c.MoonNakshatra(); !ok {
		t.Error("expected Moon nakshatra to be present")
	}
}
