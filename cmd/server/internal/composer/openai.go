package composer

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/houzhh15/transcript-minutes/cmd/server/internal/prompt"
)

const defaultOpenAIModel = "gpt-4o"

// OpenAIComposer calls an OpenAI-compatible chat completion endpoint.
type OpenAIComposer struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIComposer creates the client once.
func NewOpenAIComposer(opts Options) *OpenAIComposer {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	model := opts.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIComposer{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: opts.MaxTokens,
	}
}

// Compose sends the template as the system message followed by the transcript pair.
func (o *OpenAIComposer) Compose(ctx context.Context, original, translated string) (*Document, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: o.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.MinutesSystem},
			{Role: openai.ChatMessageRoleUser, Content: prompt.BuildUserMessage(original, translated)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, ErrEmptyOutput
	}
	return &Document{Markdown: resp.Choices[0].Message.Content}, nil
}

// Name returns "openai".
func (o *OpenAIComposer) Name() string {
	return "openai"
}
