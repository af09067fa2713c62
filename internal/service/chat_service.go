package service

import (
	"context"
	"fmt"

	"wellness-backend/internal/llm"
	"wellness-backend/internal/model"
	"wellness-backend/pkg/logger"
)

// ChatService sequences one chat request: optional web search, prompt
// composition, the blocking inference call, parsing, then the event stream.
// Setup is synchronous; only event delivery is asynchronous. Any failure
// before the stream starts aborts the whole request, so the caller either
// gets a complete event sequence or no stream at all.
type ChatService struct {
	generator llm.Generator
	searcher  Searcher
	emitter   *Emitter
}

func NewChatService(generator llm.Generator, searcher Searcher, emitter *Emitter) *ChatService {
	return &ChatService{
		generator: generator,
		searcher:  searcher,
		emitter:   emitter,
	}
}

// StreamChat materializes the full parsed response and returns the channel
// the emitter produces events on. The returned channel is nil when err is
// non-nil.
func (s *ChatService) StreamChat(ctx context.Context, req model.ChatRequest) (<-chan model.StreamEvent, error) {
	var webResult *model.WebSearchResult
	if req.UseWebSearch {
		result := s.searcher.Search(ctx, req.Message)
		webResult = &result
		logger.Debugf("Web search found %d sources", len(result.Sources))
	}

	webContext := ""
	if webResult != nil {
		webContext = webResult.Context
	}
	prompt := BuildPrompt(req.Message, webContext)

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate response: %w", err)
	}

	parsed := ParseStructuredResponse(raw)

	params := StreamParams{
		Response:    parsed.Response,
		Thinking:    parsed.Thinking,
		Sources:     parsed.Sources,
		WebSearched: req.UseWebSearch,
	}
	if webResult != nil {
		params.WebSources = webResult.Sources
	}

	return s.emitter.Stream(ctx, params), nil
}
