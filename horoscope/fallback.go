package horoscope

import (
	"fmt"
	"strings"

	"github.com/sahadev/jyotish/ephemeris"
)

const fallbackHeadline = "Basic horoscope overview (local fallback)"

// Fallback produces a deterministic reading from the payload alone,
// used when no LLM is reachable. Bullets follow the fixed graha order
// and cap at six.
func Fallback(p Payload) *Reading {
	var bullets []string
	for _, name := range ephemeris.Grahas {
		info, ok := p.Rasi[name]
		if !ok {
			continue
		}
		bullets = append(bullets, fmt.Sprintf("%s: sign %d, %.1f°", name, info.Sign, info.Deg))
		if len(bullets) >= 6 {
			break
		}
	}
	if bullets == nil {
		bullets = []string{}
	}

	narrative := fallbackHeadline + "\n\n" +
		"Key placements: " + strings.Join(bullets, "; ") + ".\n\n" +
		"This is an automated fallback reading."

	return &Reading{
		Headline:  fallbackHeadline,
		Bullets:   bullets,
		Narrative: narrative,
		Yogas:     []string{},
		Dasas:     map[string]any{},
	}
}
