package llm

import (
	"context"
	"fmt"

	"github.com/Harie1904/agente-noticias-alexandre/internal/config"
	"github.com/Harie1904/agente-noticias-alexandre/internal/shared"

	openai "github.com/sashabaranov/go-openai"
)

const mistralBaseURL = "https://api.mistral.ai/v1"

// mistralClient is a client for the Mistral chat completions API. The API is
// OpenAI-compatible, so it reuses the OpenAI client with a custom base URL.
type mistralClient struct {
	client *openai.Client
	model  string
}

// NewMistralClient creates a new Mistral API client.
func NewMistralClient(cfg *config.Config) TextGenerator {
	return newMistralClient(cfg.MistralAPIKey, cfg.MistralModel, mistralBaseURL)
}

func newMistralClient(apiKey, model, baseURL string) *mistralClient {
	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = baseURL
	return &mistralClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

// GenerateContent sends a prompt to the Mistral model and returns the
// generated text along with the reported token usage.
func (c *mistralClient) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: temperature,
	})
	if err != nil {
		return ContentResponse{}, fmt.Errorf("mistral api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return ContentResponse{}, fmt.Errorf("no content generated")
	}

	return ContentResponse{
		Content: resp.Choices[0].Message.Content,
		Usage: shared.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
			Model:            resp.Model,
		},
	}, nil
}
