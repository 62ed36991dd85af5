// Package horoscope turns a computed chart into a narrative reading.
// It builds a structured prompt for an LLM, parses whatever JSON the
// model returns, retries once when the model asks for its input back,
// and falls back to a deterministic local reading when no model is
// reachable.
package horoscope

import (
	"context"
	_ "embed"
	"encoding/json"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sahadev/jyotish/ai/openrouter"
	"github.com/sahadev/jyotish/ai/provider"
	"github.com/sahadev/jyotish/config"
	"github.com/sahadev/jyotish/logger"
)

//go:embed templates/horoscope_prompt.txt
var defaultPromptTemplate string

const systemPrompt = "You are an expert Vedic astrologer and write in a culturally sensitive manner."

// Phrasings models use when they ask for the chart data instead of
// analyzing it.
var askPatterns = []*regexp.Regexp{
	regexp.MustCompile(`please provide.*structured.*json`),
	regexp.MustCompile(`please provide.*json`),
	regexp.MustCompile(`please provide the chart json`),
	regexp.MustCompile(`send me the json`),
	regexp.MustCompile(`i need the json`),
	regexp.MustCompile(`provide the structured json`),
}

// Engine generates horoscope readings
type Engine struct {
	client   provider.AIClient // nil means fallback-only
	template string
	lang     string
	logger   *zap.SugaredLogger
}

// NewEngine creates a reading engine. A nil client is valid and makes
// every reading use the local fallback.
func NewEngine(client provider.AIClient, cfg config.ReadingConfig) *Engine {
	template := defaultPromptTemplate
	if cfg.PromptTemplate != "" {
		if data, err := os.ReadFile(cfg.PromptTemplate); err == nil {
			template = string(data)
		} else {
			logger.Warnw("Failed to read prompt template, using built-in",
				"path", cfg.PromptTemplate, "error", err)
		}
	}

	lang := cfg.Lang
	if lang == "" {
		lang = "en"
	}

	return &Engine{
		client:   client,
		template: template,
		lang:     lang,
		logger:   logger.Logger,
	}
}

// WithLang returns a copy of the engine targeting another reading
// language.
func (e *Engine) WithLang(lang string) *Engine {
	clone := *e
	clone.lang = lang
	return &clone
}

// Generate produces a reading for the payload. Never returns nil: any
// LLM failure degrades to the local fallback.
func (e *Engine) Generate(ctx context.Context, payload Payload) *Reading {
	if e.client == nil || !e.client.IsConfigured() {
		e.logger.Debugw("No AI client configured, using local fallback")
		return Fallback(payload)
	}

	prompt := e.buildPrompt(payload)

	text, err := e.chat(ctx, prompt)
	if err != nil {
		e.logger.Warnw("LLM request failed, using local fallback", "error", err)
		return Fallback(payload)
	}

	if parsed := extractReading(text); parsed != nil {
		return parsed
	}

	// The model either asked for the data or produced no parseable
	// JSON. Retry once with the payload injected up front.
	if text != "" {
		if modelRequestsJSON(text) {
			e.logger.Debugw("Model asked for the chart JSON, retrying with injection")
		}

		injected := "Proceed using the following structured JSON (do not ask for it again). " +
			"Use it to produce JSON with keys: headline, bullets, narrative, yogas, dasas.\n\n" +
			marshalPayload(payload)

		text2, err := e.chat(ctx, injected)
		if err != nil {
			e.logger.Warnw("LLM retry failed, using local fallback", "error", err)
			return Fallback(payload)
		}
		if parsed := extractReading(text2); parsed != nil {
			return parsed
		}

		// Hand back whatever prose the model produced
		narrative := text2
		if narrative == "" {
			narrative = text
		}
		if narrative == "" {
			narrative = "LLM produced no usable output."
		}
		return &Reading{Narrative: narrative}
	}

	return Fallback(payload)
}

func (e *Engine) chat(ctx context.Context, prompt string) (string, error) {
	resp, err := e.client.Chat(ctx, openrouter.ChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   prompt,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// buildPrompt substitutes the payload into the template. Unknown
// templates get the JSON appended so the model always receives the
// data.
func (e *Engine) buildPrompt(payload Payload) string {
	s := marshalPayload(payload)

	var prompt string
	switch {
	case strings.Contains(e.template, "{{ structured_data }}"):
		prompt = strings.ReplaceAll(e.template, "{{ structured_data }}", s)
	case strings.Contains(e.template, "{input}"):
		prompt = strings.ReplaceAll(e.template, "{input}", s)
	default:
		prompt = e.template + "\n\nJSON_INPUT:\n" + s
	}

	if strings.HasPrefix(e.lang, "ta") {
		prompt += "\nWrite the narrative in Tamil."
	}
	return prompt
}

func marshalPayload(payload Payload) string {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

func modelRequestsJSON(text string) bool {
	t := strings.ToLower(text)
	for _, p := range askPatterns {
		if p.MatchString(t) {
			return true
		}
	}
	return false
}
