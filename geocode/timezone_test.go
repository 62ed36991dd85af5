package geocode

import (
	"testing"
)

func TestNormalizeTimezone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Asia/Kolkata", "Asia/Kolkata"},
		{"asia/kolkata", "Asia/Kolkata"},
		{"IST", "Asia/Kolkata"},
		{"ist", "Asia/Kolkata"},
		{"pst", "America/Los_Angeles"},
		{"chennai, india", "Asia/Kolkata"},
		{"in", "Asia/Kolkata"},
		{"uk", "Europe/London"},
		{"UTC", "UTC"},
	}
	for _, tc := range cases {
		got, err := NormalizeTimezone(tc.in)
		if err != nil {
			t.Errorf("NormalizeTimezone(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeTimezone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeTimezoneRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "Mars/Olympus", "zzz"} {
		if got, err := NormalizeTimezone(in); err == nil {
			t.Errorf("NormalizeTimezone(%q) = %q, expected error", in, got)
		}
	}
}

func TestGuessTimezoneFromLocation(t *testing.T) {
	if tz := GuessTimezoneFromLocation("Mumbai, Maharashtra, India"); tz != "Asia/Kolkata" {
		t.Errorf("got %q", tz)
	}
	if tz := GuessTimezoneFromLocation("The Middle of the Ocean"); tz != "" {
		t.Errorf("expected empty, got %q", tz)
	}
}

func TestValidateTimezone(t *testing.T) {
	if err := ValidateTimezone("Asia/Kolkata"); err != nil {
		t.Errorf("valid timezone rejected: %v", err)
	}
	if err := ValidateTimezone("Not/AZone"); err == nil {
		t.Error("invalid timezone accepted")
	}
}

func TestLocalize(t *testing.T) {
	got, err := Localize(1990, 8, 15, 11, 0, "Asia/Kolkata")
	if err != nil {
		t.Fatal(err)
	}
	if got.Hour() != 11 || got.Location().String() != "Asia/Kolkata" {
		t.Errorf("localized to %v", got)
	}

	// IST is UTC+5:30, so 11:00 local is 05:30 UTC
	utc := got.UTC()
	if utc.Hour() != 5 || utc.Minute() != 30 {
		t.Errorf("UTC conversion = %v", utc)
	}

	if _, err := Localize(1990, 8, 15, 11, 0, "Bad/Zone"); err == nil {
		t.Error("expected error for bad zone")
	}
}

func TestSanitizeTimezone(t *testing.T) {
	cases := map[string]string{
		"america/new_york": "America/New_york",
		" UTC ":            "Utc",
		"asia/kolkata":     "Asia/Kolkata",
	}
	for in, want := range cases {
		if got := sanitizeTimezone(in); got != want {
			t.Errorf("sanitizeTimezone(%q) = %q, want %q", in, got, want)
		}
	}
}
