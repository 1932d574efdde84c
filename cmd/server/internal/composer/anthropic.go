package composer

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/houzhh15/transcript-minutes/cmd/server/internal/prompt"
)

const defaultAnthropicModel = "claude-sonnet-4-20250514"

// AnthropicComposer calls the Anthropic Messages API.
type AnthropicComposer struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicComposer creates the client once. SDK retries are disabled.
func NewAnthropicComposer(opts Options) *AnthropicComposer {
	reqOpts := []option.RequestOption{option.WithMaxRetries(0)}
	if opts.APIKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(opts.APIKey))
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	model := opts.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	return &AnthropicComposer{
		client:    anthropic.NewClient(reqOpts...),
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

// Compose sends the template as the system block and the transcript pair as the only user turn.
func (a *AnthropicComposer) Compose(ctx context.Context, original, translated string) (*Document, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: a.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: prompt.MinutesSystem},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.BuildUserMessage(original, translated))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return nil, ErrEmptyOutput
	}
	return &Document{Markdown: b.String()}, nil
}

// Name returns "anthropic".
func (a *AnthropicComposer) Name() string {
	return "anthropic"
}
