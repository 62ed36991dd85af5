package geocode

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sahadev/jyotish/errors"
)

// Birth forms arrive with all sorts of timezone spellings. The maps
// below cover common abbreviations and place keywords so a reading does
// not fail on "IST" or "chennai, india".

var timezoneByAbbreviation = map[string]string{
	"pst":  "America/Los_Angeles",
	"pdt":  "America/Los_Angeles",
	"est":  "America/New_York",
	"edt":  "America/New_York",
	"cst":  "America/Chicago",
	"cdt":  "America/Chicago",
	"mst":  "America/Denver",
	"mdt":  "America/Denver",
	"bst":  "Europe/London",
	"cet":  "Europe/Berlin",
	"cest": "Europe/Berlin",
	"ist":  "Asia/Kolkata",
	"sgt":  "Asia/Singapore",
	"hkt":  "Asia/Hong_Kong",
	"aest": "Australia/Sydney",
}

var locationKeywordTimezones = map[string]string{
	"india":       "Asia/Kolkata",
	"delhi":       "Asia/Kolkata",
	"mumbai":      "Asia/Kolkata",
	"chennai":     "Asia/Kolkata",
	"bangalore":   "Asia/Kolkata",
	"kolkata":     "Asia/Kolkata",
	"hyderabad":   "Asia/Kolkata",
	"nepal":       "Asia/Kathmandu",
	"sri lanka":   "Asia/Colombo",
	"colombo":     "Asia/Colombo",
	"singapore":   "Asia/Singapore",
	"hong kong":   "Asia/Hong_Kong",
	"tokyo":       "Asia/Tokyo",
	"japan":       "Asia/Tokyo",
	"dubai":       "Asia/Dubai",
	"uae":         "Asia/Dubai",
	"london":      "Europe/London",
	"england":     "Europe/London",
	"paris":       "Europe/Paris",
	"france":      "Europe/Paris",
	"germany":     "Europe/Berlin",
	"berlin":      "Europe/Berlin",
	"amsterdam":   "Europe/Amsterdam",
	"netherlands": "Europe/Amsterdam",
	"new york":    "America/New_York",
	"boston":      "America/New_York",
	"toronto":     "America/Toronto",
	"canada":      "America/Toronto",
	"chicago":     "America/Chicago",
	"california":  "America/Los_Angeles",
	"los angeles": "America/Los_Angeles",
	"sydney":      "Australia/Sydney",
	"australia":   "Australia/Sydney",
}

var countryCodeTimezones = map[string]string{
	"in": "Asia/Kolkata",
	"np": "Asia/Kathmandu",
	"lk": "Asia/Colombo",
	"sg": "Asia/Singapore",
	"hk": "Asia/Hong_Kong",
	"jp": "Asia/Tokyo",
	"ae": "Asia/Dubai",
	"gb": "Europe/London",
	"uk": "Europe/London",
	"fr": "Europe/Paris",
	"de": "Europe/Berlin",
	"nl": "Europe/Amsterdam",
	"us": "America/New_York",
	"ca": "America/Toronto",
	"au": "Australia/Sydney",
}

// NormalizeTimezone attempts to resolve user input into a valid IANA timezone.
func NormalizeTimezone(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", errors.New("timezone cannot be empty")
	}

	// Already a valid timezone: canonicalize sloppy capitalization like
	// "asia/kolkata" but preserve proper names
	if isValidTimezone(trimmed) {
		if canonicalized := canonicalizeValidTimezone(trimmed); canonicalized != "" {
			return canonicalized, nil
		}
		return trimmed, nil
	}

	candidate := sanitizeTimezone(trimmed)
	if isValidTimezone(candidate) {
		return candidate, nil
	}

	lower := strings.ToLower(trimmed)
	if tz, ok := timezoneByAbbreviation[lower]; ok {
		return tz, nil
	}

	if tz := GuessTimezoneFromLocation(lower); tz != "" {
		return tz, nil
	}

	if tz, ok := countryCodeTimezones[lower]; ok {
		return tz, nil
	}

	return "", errors.Newf("unknown timezone: %s", input)
}

// GuessTimezoneFromLocation uses keyword heuristics to derive a
// timezone from a birth place string.
func GuessTimezoneFromLocation(location string) string {
	lower := strings.ToLower(strings.TrimSpace(location))
	for keyword, timezone := range locationKeywordTimezones {
		if strings.Contains(lower, keyword) {
			return timezone
		}
	}
	return ""
}

// DetectLocalTimezone attempts to determine the host operating system timezone.
func DetectLocalTimezone() (string, error) {
	if tz := os.Getenv("TZ"); tz != "" {
		if isValidTimezone(tz) {
			return tz, nil
		}
	}

	if name := time.Now().Location().String(); name != "" && name != "Local" {
		if isValidTimezone(name) {
			return name, nil
		}
	}

	if data, err := os.ReadFile("/etc/timezone"); err == nil {
		tz := sanitizeTimezone(string(data))
		if isValidTimezone(tz) {
			return tz, nil
		}
	}

	if tz, err := readZoneinfoSymlink("/etc/localtime"); err == nil && tz != "" {
		return tz, nil
	}

	return "", errors.New("could not detect local timezone: tried TZ env var, time.Now().Location(), /etc/timezone, /etc/localtime")
}

func readZoneinfoSymlink(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	idx := strings.Index(resolved, "zoneinfo")
	if idx == -1 {
		return "", errors.New("zoneinfo segment not found")
	}
	candidate := strings.TrimPrefix(resolved[idx+len("zoneinfo"):], string(filepath.Separator))
	candidate = strings.ReplaceAll(candidate, string(os.PathSeparator), "/")
	candidate = sanitizeTimezone(candidate)
	if isValidTimezone(candidate) {
		return candidate, nil
	}
	return "", errors.Newf("invalid timezone: %q (from %s)", candidate, path)
}

func sanitizeTimezone(tz string) string {
	trimmed := strings.TrimSpace(tz)
	trimmed = strings.Trim(trimmed, "\"'")
	trimmed = strings.ReplaceAll(trimmed, " ", "_")
	if strings.Contains(trimmed, "/") {
		parts := strings.Split(trimmed, "/")
		for i, part := range parts {
			parts[i] = title(part)
		}
		return strings.Join(parts, "/")
	}
	return title(trimmed)
}

func title(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func isValidTimezone(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// canonicalizeValidTimezone fixes capitalization like "asia/kolkata"
// while leaving properly formatted IANA names untouched.
func canonicalizeValidTimezone(tz string) string {
	if strings.ToLower(tz) == tz || hasIncorrectCapitalization(tz) {
		candidate := sanitizeTimezone(tz)
		if isValidTimezone(candidate) && candidate != tz {
			return candidate
		}
	}
	return ""
}

// hasIncorrectCapitalization detects timezones that need case correction
func hasIncorrectCapitalization(tz string) bool {
	if strings.ToLower(tz) == tz {
		return true
	}
	if strings.Contains(tz, "/") {
		parts := strings.Split(tz, "/")
		for _, part := range parts {
			if len(part) > 0 && part[0] >= 'a' && part[0] <= 'z' {
				return true
			}
		}
	}
	return false
}

// ValidateTimezone ensures the timezone string maps to a valid IANA entry.
func ValidateTimezone(tz string) error {
	if !isValidTimezone(tz) {
		return errors.Newf("invalid timezone: %s", tz)
	}
	return nil
}

// Localize interprets a naive wall-clock time in the named timezone.
func Localize(year, month, day, hour, minute int, tzName string) (time.Time, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid timezone %q", tzName)
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc), nil
}
