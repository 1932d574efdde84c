// Package composer turns a transcript and its translation into Japanese meeting
// minutes by calling a large language model with the fixed instruction template.
package composer

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyOutput is returned when the model answers without any text.
var ErrEmptyOutput = errors.New("model returned no text")

// Document is the model output, passed through without structural validation.
type Document struct {
	Markdown string `json:"minutes"`
}

// Composer writes minutes from the original transcript and its translation.
// Upstream failures are returned as errors; implementations never retry.
type Composer interface {
	Compose(ctx context.Context, original, translated string) (*Document, error)

	// Name identifies the provider in logs and metrics.
	Name() string
}

// Options configures a provider.
type Options struct {
	Provider  string
	Model     string
	MaxTokens int
	APIKey    string
	BaseURL   string
}

// New builds the composer for opts.Provider.
func New(ctx context.Context, opts Options) (Composer, error) {
	switch opts.Provider {
	case "", "anthropic":
		return NewAnthropicComposer(opts), nil
	case "gemini":
		return NewGeminiComposer(ctx, opts)
	case "openai":
		return NewOpenAIComposer(opts), nil
	default:
		return nil, fmt.Errorf("unknown composer provider: %s", opts.Provider)
	}
}
