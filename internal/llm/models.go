package llm

import "strings"

// ModelCost is a model's price in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost is the USD price of one request.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

type catalogEntry struct {
	provider string
	alias    string // short name accepted in config, may be empty
	id       string
	cost     ModelCost
}

// catalog lists the models the config defaults and aliases select. Other
// model IDs are passed through unchanged and have no price.
var catalog = []catalogEntry{
	{"gemini", "gemini-flash", "gemini-2.0-flash", ModelCost{0.1, 0.4}},
	{"gemini", "gemini-flash-lite", "gemini-2.0-flash-lite", ModelCost{0.075, 0.3}},
	{"gemini", "gemini-pro", "gemini-1.5-pro", ModelCost{1.25, 5}},
	{"gemini", "", "gemini-2.5-flash", ModelCost{0.3, 2.5}},

	{"anthropic", "claude-haiku", "claude-haiku-4-5-20251001", ModelCost{1, 5}},
	{"anthropic", "claude-sonnet", "claude-sonnet-4-5-20250929", ModelCost{3, 15}},

	{"openai", "", "gpt-4o-mini", ModelCost{0.15, 0.6}},
	{"openai", "", "gpt-4o", ModelCost{2.5, 10}},
	{"openai", "", "gpt-4.1-mini", ModelCost{0.4, 1.6}},

	{"openrouter", "", "google/gemini-2.0-flash-001", ModelCost{0.1, 0.4}},
}

// resolveModel maps a provider's alias to its model ID. Unknown names are
// returned as given so full IDs can be configured directly.
func resolveModel(provider, name string) string {
	for _, e := range catalog {
		if e.provider == provider && e.alias != "" && e.alias == name {
			return e.id
		}
	}
	return name
}

// LookupCost returns the price of modelID, or nil when it is not in the
// catalog. APIs report dated snapshots ("gpt-4o-mini-2024-07-18"), so an
// ID extending a catalog ID with a dash suffix matches the longest such
// entry.
func LookupCost(modelID string) *ModelCost {
	var best *catalogEntry
	for i := range catalog {
		e := &catalog[i]
		if e.id != modelID && !strings.HasPrefix(modelID, e.id+"-") {
			continue
		}
		if best == nil || len(e.id) > len(best.id) {
			best = e
		}
	}
	if best == nil {
		return nil
	}
	c := best.cost
	return &c
}
