package model

import "encoding/json"

// Stream event types, emitted in this order: an optional thinking phase
// (start, fragments, end), then the response phase, then metadata, then done.
const (
	EventThinkingStart = "thinking_start"
	EventThinking      = "thinking"
	EventThinkingEnd   = "thinking_end"
	EventResponseStart = "response_start"
	EventResponse      = "response"
	EventResponseEnd   = "response_end"
	EventMetadata      = "metadata"
	EventDone          = "done"
)

// StreamMetadata is the payload of the single metadata event. Sources and
// WebSources stay nil when absent so the wire carries explicit nulls.
type StreamMetadata struct {
	Sources     []string    `json:"sources"`
	WebSources  []WebSource `json:"web_sources"`
	WebSearched bool        `json:"web_searched"`
}

// StreamEvent is one unit of the chat event stream. Content is only set for
// thinking/response fragments, Metadata only for the metadata event.
type StreamEvent struct {
	Type     string
	Content  string
	Metadata *StreamMetadata
}

// MarshalJSON keeps each event type's wire shape minimal: marker events carry
// only "type", fragments add "content", metadata flattens its payload.
func (e StreamEvent) MarshalJSON() ([]byte, error) {
	if e.Metadata != nil {
		return json.Marshal(struct {
			Type        string      `json:"type"`
			Sources     []string    `json:"sources"`
			WebSources  []WebSource `json:"web_sources"`
			WebSearched bool        `json:"web_searched"`
		}{e.Type, e.Metadata.Sources, e.Metadata.WebSources, e.Metadata.WebSearched})
	}

	if e.Type == EventThinking || e.Type == EventResponse {
		return json.Marshal(struct {
			Type    string `json:"type"`
			Content string `json:"content"`
		}{e.Type, e.Content})
	}

	return json.Marshal(struct {
		Type string `json:"type"`
	}{e.Type})
}
