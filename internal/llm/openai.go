package llm

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"symptom-checker/internal/config"
)

// Client sends a single prompt to a completion provider and returns the
// text of the first candidate.  An empty string with a nil error means the
// provider answered without any usable candidate.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient talks to any OpenAI-compatible chat completion endpoint.
// Groq is the default target.
type OpenAIClient struct {
	client *openai.Client
	params config.ProviderConfig
}

// NewOpenAIClient constructs a client from provider configuration.  The
// API key is not checked here; a missing or invalid key surfaces as an
// error from Complete.
func NewOpenAIClient(cfg config.ProviderConfig) *OpenAIClient {
	oaCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oaCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(oaCfg),
		params: cfg,
	}
}

// Complete sends the prompt as a single user message with the configured
// generation parameters.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.client == nil {
		return "", errors.New("openai client not initialized")
	}

	resp, err := c.client.CreateChatCompletion(ctx, c.request(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) request(prompt string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: c.params.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature:      c.params.Temperature,
		MaxTokens:        c.params.MaxTokens,
		TopP:             c.params.TopP,
		FrequencyPenalty: c.params.FrequencyPenalty,
		PresencePenalty:  c.params.PresencePenalty,
	}
}
