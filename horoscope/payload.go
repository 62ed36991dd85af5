package horoscope

import (
	"github.com/sahadev/jyotish/chart"
	"github.com/sahadev/jyotish/dasa"
)

// Payload is the structured chart data handed to the LLM. Its JSON
// shape is the engine's wire contract, so field tags stay stable.
type Payload struct {
	Meta    chart.Meta                 `json:"meta"`
	Rasi    map[string]chart.Placement `json:"rasi"`
	Asc     float64                    `json:"asc"`
	Navamsa map[string]int             `json:"navamsa"`
	Yogas   []string                   `json:"yogas"`
	Dasas   dasa.Timeline              `json:"dasas"`
}

// Reading is the reply shape expected from the model and produced by
// the local fallback.
type Reading struct {
	Headline  string         `json:"headline"`
	Bullets   []string       `json:"bullets"`
	Narrative string         `json:"narrative"`
	Yogas     []string       `json:"yogas"`
	Dasas     map[string]any `json:"dasas"`
}

// BuildPayload assembles the structured payload from the computed
// chart, detected yogas and the dasa timeline.
func BuildPayload(c *chart.Chart, yogas []string, timeline dasa.Timeline) Payload {
	if yogas == nil {
		yogas = []string{}
	}
	return Payload{
		Meta:    c.Meta,
		Rasi:    c.Placements,
		Asc:     c.Ascendant,
		Navamsa: c.Navamsa,
		Yogas:   yogas,
		Dasas:   timeline,
	}
}
