package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness-backend/internal/config"
	"wellness-backend/internal/model"
)

// collectEvents drains a zero-delay stream to completion.
func collectEvents(t *testing.T, p StreamParams) []model.StreamEvent {
	t.Helper()

	emitter := NewEmitter(config.StreamConfig{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var events []model.StreamEvent
	for ev := range emitter.Stream(ctx, p) {
		events = append(events, ev)
	}
	return events
}

func eventTypes(events []model.StreamEvent) []string {
	types := make([]string, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return types
}

func TestStream_FullSequenceWithThinking(t *testing.T) {
	events := collectEvents(t, StreamParams{
		Response: "Drink water.",
		Thinking: "check hydration basics",
	})

	assert.Equal(t, []string{
		model.EventThinkingStart,
		model.EventThinking, model.EventThinking, model.EventThinking,
		model.EventThinkingEnd,
		model.EventResponseStart,
		model.EventResponse, model.EventResponse,
		model.EventResponseEnd,
		model.EventMetadata,
		model.EventDone,
	}, eventTypes(events))
}

func TestStream_NoThinkingSkipsThinkingPhase(t *testing.T) {
	events := collectEvents(t, StreamParams{Response: "Rest."})

	types := eventTypes(events)
	assert.Equal(t, model.EventResponseStart, types[0])
	assert.NotContains(t, types, model.EventThinkingStart)
	assert.NotContains(t, types, model.EventThinkingEnd)
}

func TestStream_EmptyResponseYieldsFourEvents(t *testing.T) {
	events := collectEvents(t, StreamParams{})

	assert.Equal(t, []string{
		model.EventResponseStart,
		model.EventResponseEnd,
		model.EventMetadata,
		model.EventDone,
	}, eventTypes(events))
}

func TestStream_FragmentsReassembleExactly(t *testing.T) {
	thinking := "the user asks about sleep hygiene"
	response := "Keep a regular schedule and avoid screens before bed."

	events := collectEvents(t, StreamParams{Response: response, Thinking: thinking})

	var gotThinking, gotResponse strings.Builder
	for _, ev := range events {
		switch ev.Type {
		case model.EventThinking:
			gotThinking.WriteString(ev.Content)
		case model.EventResponse:
			gotResponse.WriteString(ev.Content)
		}
	}

	assert.Equal(t, thinking, gotThinking.String())
	assert.Equal(t, response, gotResponse.String())
}

func TestStream_MetadataCarriesFieldsVerbatim(t *testing.T) {
	webSources := []model.WebSource{{Name: "CDC", URL: "cdc.gov"}}
	events := collectEvents(t, StreamParams{
		Response:    "ok",
		Sources:     []string{"CDC", "WHO"},
		WebSources:  webSources,
		WebSearched: true,
	})

	var metadata *model.StreamMetadata
	count := 0
	for _, ev := range events {
		if ev.Type == model.EventMetadata {
			metadata = ev.Metadata
			count++
		}
	}

	require.Equal(t, 1, count, "metadata must be emitted exactly once")
	assert.Equal(t, []string{"CDC", "WHO"}, metadata.Sources)
	assert.Equal(t, webSources, metadata.WebSources)
	assert.True(t, metadata.WebSearched)
}

func TestStream_TailOrdering(t *testing.T) {
	events := collectEvents(t, StreamParams{Response: "a b c", Thinking: "x"})

	types := eventTypes(events)
	require.NotEmpty(t, types)
	assert.Equal(t, model.EventDone, types[len(types)-1])
	assert.Equal(t, model.EventMetadata, types[len(types)-2])
	assert.Equal(t, model.EventResponseEnd, types[len(types)-3])
}

func TestStream_CancelStopsProduction(t *testing.T) {
	emitter := NewEmitter(config.StreamConfig{ResponseDelay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())

	events := emitter.Stream(ctx, StreamParams{Response: "one two three four"})

	// Take the start marker and the first fragment, then walk away.
	<-events
	<-events
	cancel()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return // channel closed, producer released
			}
		case <-deadline:
			t.Fatal("producer did not stop after cancellation")
		}
	}
}

func TestStream_BackpressureNoBuffering(t *testing.T) {
	emitter := NewEmitter(config.StreamConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := emitter.Stream(ctx, StreamParams{Response: "a b c d e f g h"})

	// With no consumer progress the producer can be at most one send ahead;
	// nothing further is produced until we read.
	first := <-events
	assert.Equal(t, model.EventResponseStart, first.Type)
}

func TestStreamEvent_WireShapes(t *testing.T) {
	marker, err := json.Marshal(model.StreamEvent{Type: model.EventThinkingStart})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"thinking_start"}`, string(marker))

	fragment, err := json.Marshal(model.StreamEvent{Type: model.EventResponse, Content: "hi "})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"response","content":"hi "}`, string(fragment))

	metadata, err := json.Marshal(model.StreamEvent{
		Type:     model.EventMetadata,
		Metadata: &model.StreamMetadata{WebSearched: false},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"metadata","sources":null,"web_sources":null,"web_searched":false}`, string(metadata))
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "word", []string{"word"}},
		{"two", "hello world", []string{"hello ", "world"}},
		{"runs collapse", "a  b\n\tc", []string{"a ", "b ", "c"}},
		{"leading and trailing", "  x y  ", []string{"x ", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitWords(tt.in)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
