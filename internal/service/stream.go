package service

import (
	"context"
	"strings"
	"time"

	"wellness-backend/internal/config"
	"wellness-backend/internal/model"
)

// StreamParams carries the fully-materialized text and metadata for one
// simulated-typing stream. The emitter never touches the model or the
// network; everything here is final before streaming starts.
type StreamParams struct {
	Response    string
	Thinking    string
	Sources     []string
	WebSources  []model.WebSource
	WebSearched bool
}

// Emitter reconstructs a typing effect over already-complete text. Events are
// produced in a fixed order: an optional thinking phase, then the response
// phase, then one metadata event, then done. The output channel is
// unbuffered, so production is gated on the consumer accepting each event and
// stalls with the transport.
type Emitter struct {
	cfg config.StreamConfig
}

func NewEmitter(cfg config.StreamConfig) *Emitter {
	return &Emitter{cfg: cfg}
}

// Stream launches the producer goroutine and returns its event channel. The
// channel is closed after the done event, or early when ctx is cancelled
// (client disconnect); a cancelled stream emits nothing further.
func (e *Emitter) Stream(ctx context.Context, p StreamParams) <-chan model.StreamEvent {
	out := make(chan model.StreamEvent)

	go func() {
		defer close(out)

		if p.Thinking != "" {
			if !e.emitPhase(ctx, out, model.EventThinkingStart, p.Thinking, e.cfg.ThinkingDelay) {
				return
			}
			if !e.wait(ctx, e.cfg.ThinkingPause) {
				return
			}
		}

		if !e.emitPhase(ctx, out, model.EventResponseStart, p.Response, e.cfg.ResponseDelay) {
			return
		}

		metadata := model.StreamEvent{
			Type: model.EventMetadata,
			Metadata: &model.StreamMetadata{
				Sources:     p.Sources,
				WebSources:  p.WebSources,
				WebSearched: p.WebSearched,
			},
		}
		if !e.send(ctx, out, metadata) {
			return
		}

		e.send(ctx, out, model.StreamEvent{Type: model.EventDone})
	}()

	return out
}

// emitPhase runs one phase of the state machine: the start marker, the word
// fragments, then the matching end marker. Empty text still produces the
// start/end pair.
func (e *Emitter) emitPhase(ctx context.Context, out chan<- model.StreamEvent, startType, text string, delay time.Duration) bool {
	contentType := model.EventThinking
	endType := model.EventThinkingEnd
	if startType == model.EventResponseStart {
		contentType = model.EventResponse
		endType = model.EventResponseEnd
	}

	if !e.send(ctx, out, model.StreamEvent{Type: startType}) {
		return false
	}
	if !e.wait(ctx, e.cfg.PhaseLeadIn) {
		return false
	}

	for _, chunk := range splitWords(text) {
		if !e.send(ctx, out, model.StreamEvent{Type: contentType, Content: chunk}) {
			return false
		}
		if !e.wait(ctx, delay) {
			return false
		}
	}

	return e.send(ctx, out, model.StreamEvent{Type: endType})
}

func (e *Emitter) send(ctx context.Context, out chan<- model.StreamEvent, ev model.StreamEvent) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (e *Emitter) wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// splitWords splits text on whitespace runs and reattaches a single trailing
// space to every token except the last, so concatenating the chunks yields
// the text back with normalized spacing and no trailing space.
func splitWords(text string) []string {
	words := strings.Fields(text)
	chunks := make([]string, len(words))
	for i, word := range words {
		if i < len(words)-1 {
			chunks[i] = word + " "
		} else {
			chunks[i] = word
		}
	}
	return chunks
}
