// Package minutes runs one transcript through translation and then minutes composition.
package minutes

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/houzhh15/transcript-minutes/cmd/server/internal/composer"
	"github.com/houzhh15/transcript-minutes/cmd/server/internal/translation"
	"github.com/houzhh15/transcript-minutes/pkg/logger"
	"github.com/houzhh15/transcript-minutes/pkg/metrics"
)

// Service holds the two upstream clients. It keeps no per-request state and is
// safe for concurrent use as long as the clients are.
type Service struct {
	translator translation.Translator
	composer   composer.Composer
	target     language.Tag
	log        *slog.Logger
}

// NewService wires the clients built at start-up. A zero target means Japanese.
func NewService(t translation.Translator, c composer.Composer, target language.Tag, log *slog.Logger) *Service {
	if target == language.Und {
		target = translation.DefaultTarget
	}
	if log == nil {
		log = logger.L()
	}
	return &Service{translator: t, composer: c, target: target, log: log}
}

// Create translates text and asks the composer for minutes. The composer is
// not called when translation fails. Original is returned exactly as given.
func (s *Service) Create(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	start := time.Now()
	tr, err := s.translator.Translate(ctx, text, s.target)
	s.observe("translation", s.translator.Name(), start, err)
	if err != nil {
		return nil, &UpstreamError{Stage: StageTranslate, Err: err}
	}

	start = time.Now()
	doc, err := s.composer.Compose(ctx, text, tr.TranslatedText)
	s.observe("composer", s.composer.Name(), start, err)
	if err != nil {
		return nil, &UpstreamError{Stage: StageCompose, Err: err}
	}

	return &Result{
		Original:         text,
		Translated:       tr.TranslatedText,
		DetectedLanguage: tr.DetectedLanguage,
		Minutes:          doc.Markdown,
	}, nil
}

// Ready reports whether both clients are wired.
func (s *Service) Ready() map[string]bool {
	return map[string]bool{
		"translator": s.translator != nil,
		"composer":   s.composer != nil,
	}
}

func (s *Service) observe(service, provider string, start time.Time, err error) {
	elapsed := time.Since(start)
	metrics.RecordUpstreamCall(service, provider, err)
	metrics.RecordUpstreamDuration(service, provider, elapsed.Seconds())
	logger.LogUpstreamCall(s.log, service, provider, elapsed.Milliseconds(), err)
}
