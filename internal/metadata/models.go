package metadata

import "github.com/oukeidos/litra/internal/llm"

// Model describes a supported model and its USD-per-million-token rates.
// Cache rates are zero for providers without prompt caching.
type Model struct {
	ID                   string
	Label                string
	Provider             string
	InputPerMillion      float64
	OutputPerMillion     float64
	CacheReadPerMillion  float64
	CacheWritePerMillion float64
}

var ClaudeModels = []Model{
	{
		ID:                   "claude-opus-4-20250514",
		Label:                "Claude Opus 4",
		Provider:             "claude",
		InputPerMillion:      15.0,
		OutputPerMillion:     75.0,
		CacheReadPerMillion:  1.5,
		CacheWritePerMillion: 18.75,
	},
	{
		ID:                   "claude-sonnet-4-20250514",
		Label:                "Claude Sonnet 4",
		Provider:             "claude",
		InputPerMillion:      3.0,
		OutputPerMillion:     15.0,
		CacheReadPerMillion:  0.30,
		CacheWritePerMillion: 3.75,
	},
}

var GeminiModels = []Model{
	{
		ID:               "gemini-3-flash-preview",
		Label:            "Gemini 3 Flash (preview)",
		Provider:         "gemini",
		InputPerMillion:  0.50,
		OutputPerMillion: 3.00,
	},
	{
		ID:               "gemini-3-pro-preview",
		Label:            "Gemini 3 Pro (preview)",
		Provider:         "gemini",
		InputPerMillion:  2.00,
		OutputPerMillion: 12.00,
	},
}

// DefaultModelID is used when no model flag is given.
const DefaultModelID = "claude-sonnet-4-20250514"

// Models returns every known model, Claude first.
func Models() []Model {
	out := make([]Model, 0, len(ClaudeModels)+len(GeminiModels))
	out = append(out, ClaudeModels...)
	out = append(out, GeminiModels...)
	return out
}

// Pricing returns the rate card for a model ID. Unknown IDs fall back to
// the default model's rates so cost estimates stay plausible rather than
// silently zero; the second return reports whether the ID was recognized.
func Pricing(modelID string) (Model, bool) {
	for _, m := range Models() {
		if m.ID == modelID {
			return m, true
		}
	}
	fallback, _ := Pricing(DefaultModelID)
	fallback.ID = modelID
	return fallback, false
}

// CostEstimate returns the estimated cost of the given usage and what the
// same usage would have cost without prompt caching.
func CostEstimate(u llm.Usage, modelID string) (cost, costNoCache float64) {
	p, _ := Pricing(modelID)

	// Tokens that hit the cache don't count as regular input.
	uncachedInput := u.InputTokens - u.CacheReadTokens - u.CacheCreationTokens
	if uncachedInput < 0 {
		uncachedInput = 0
	}
	cost = float64(uncachedInput)/1e6*p.InputPerMillion +
		float64(u.OutputTokens)/1e6*p.OutputPerMillion +
		float64(u.CacheReadTokens)/1e6*p.CacheReadPerMillion +
		float64(u.CacheCreationTokens)/1e6*p.CacheWritePerMillion

	costNoCache = float64(u.InputTokens)/1e6*p.InputPerMillion +
		float64(u.OutputTokens)/1e6*p.OutputPerMillion
	return cost, costNoCache
}
