package model

import "time"

type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// WebSource is one trusted domain found in the search results.
type WebSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// WebSearchResult holds the outcome of one trusted-source web search.
// Context is a short snippet for prompt augmentation; Sources lists each
// trusted domain seen in the results, at most once, in scan order.
type WebSearchResult struct {
	Context string      `json:"context"`
	Sources []WebSource `json:"sources"`
}

// ParsedResponse is the structured view of raw model output.
// Response is never empty unless the raw text itself was empty; Thinking
// and Sources are nil when the corresponding sections were not found.
type ParsedResponse struct {
	Thinking string
	Response string
	Sources  []string
}

type WellnessTopic struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}
