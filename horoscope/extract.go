package horoscope

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	trailingCommaObj = regexp.MustCompile(`,\s*}`)
	trailingCommaArr = regexp.MustCompile(`,\s*]`)
)

// extractReading pulls a Reading out of model text. Tries a direct
// unmarshal first, then the first balanced {...} block with trailing
// commas and markdown fences stripped. Returns nil when no usable
// JSON is found.
func extractReading(text string) *Reading {
	if text == "" {
		return nil
	}

	if r := tryUnmarshal(text); r != nil {
		return r
	}

	start := strings.Index(text, "{")
	if start == -1 {
		return nil
	}

	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				candidate := text[start : i+1]
				cleaned := trailingCommaObj.ReplaceAllString(candidate, "}")
				cleaned = trailingCommaArr.ReplaceAllString(cleaned, "]")
				cleaned = strings.Trim(cleaned, "` \n\r\t")
				return tryUnmarshal(cleaned)
			}
		}
	}
	return nil
}

func tryUnmarshal(s string) *Reading {
	var r Reading
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return nil
	}
	// An empty object parses fine but carries nothing usable
	if r.Headline == "" && r.Narrative == "" && len(r.Bullets) == 0 &&
		len(r.Yogas) == 0 && len(r.Dasas) == 0 {
		return nil
	}
	return &r
}
