package openrouter

import "strings"

// modelPricing holds USD cost per million tokens
type modelPricing struct {
	promptPerM     float64
	completionPerM float64
}

// Pricing for commonly used models, USD per million tokens. Unlisted
// models fall back to a conservative mid-range estimate so budgets are
// never silently undercounted.
var pricingTable = map[string]modelPricing{
	"openai/gpt-4o-mini":               {0.15, 0.60},
	"openai/gpt-4o":                    {2.50, 10.00},
	"anthropic/claude-3.5-sonnet":      {3.00, 15.00},
	"anthropic/claude-3-haiku":         {0.25, 1.25},
	"google/gemini-flash-1.5":          {0.075, 0.30},
	"meta-llama/llama-3.1-8b-instruct": {0.05, 0.08},
	"mistralai/mistral-7b-instruct":    {0.06, 0.06},
}

var fallbackPricing = modelPricing{1.00, 3.00}

// CalculateCost estimates the USD cost of a completed request.
func CalculateCost(model string, promptTokens, completionTokens int) float64 {
	pricing, ok := pricingTable[strings.ToLower(model)]
	if !ok {
		pricing = fallbackPricing
	}
	return float64(promptTokens)/1e6*pricing.promptPerM +
		float64(completionTokens)/1e6*pricing.completionPerM
}
