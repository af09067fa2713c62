package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"wellness-backend/internal/config"
	"wellness-backend/internal/utils"
)

// Generator is the single blocking inference call the chat service depends
// on. The hosted endpoint returns one completed text blob; there is no token
// streaming at this layer.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

var ErrEmptyCompletion = errors.New("model returned no choices")

// Client calls an OpenAI-compatible hosted inference endpoint.
type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

func NewClient(cfg config.LLMConfig) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.ProjectID != "" {
		clientConfig.OrgID = cfg.ProjectID
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = utils.NewHTTPClient(cfg.Timeout)
	}

	return &Client{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}
