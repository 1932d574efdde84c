package composer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/houzhh15/transcript-minutes/cmd/server/internal/prompt"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiComposer calls the Gemini API.
type GeminiComposer struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

// NewGeminiComposer creates the client once.
func NewGeminiComposer(ctx context.Context, opts Options) (*GeminiComposer, error) {
	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiComposer{
		client:    client,
		model:     model,
		maxTokens: int32(opts.MaxTokens),
	}, nil
}

// Compose sends the template as the system instruction and the transcript pair as content.
func (g *GeminiComposer) Compose(ctx context.Context, original, translated string) (*Document, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(prompt.BuildUserMessage(original, translated)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(prompt.MinutesSystem, genai.RoleUser),
			MaxOutputTokens:   g.maxTokens,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, ErrEmptyOutput
	}

	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return nil, ErrEmptyOutput
	}
	return &Document{Markdown: b.String()}, nil
}

// Name returns "gemini".
func (g *GeminiComposer) Name() string {
	return "gemini"
}
