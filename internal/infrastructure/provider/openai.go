// Package provider adapts the hosted chat-completion API behind
// ports.ChatProvider. The provider is an opaque collaborator: every failure
// collapses into domain.ErrProvider and callers never inspect the cause.
package provider

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/api/metrics"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/core/domain"
)

const defaultModel = openai.GPT4oMini

// OpenAIProvider calls the OpenAI chat-completions endpoint.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a provider for the given API key and model.
// An empty model falls back to defaultModel.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = defaultModel
	}
	return &OpenAIProvider{client: openai.NewClient(apiKey), model: model}
}

func (p *OpenAIProvider) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	start := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, req)
	metrics.ChatCompletionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ChatCompletionsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	if len(resp.Choices) == 0 {
		metrics.ChatCompletionsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: empty response", domain.ErrProvider)
	}

	metrics.ChatCompletionsTotal.WithLabelValues("ok").Inc()
	return resp.Choices[0].Message.Content, nil
}
