// Package translation wraps the external machine-translation service used as the
// first stage of minutes generation.
package translation

import (
	"context"

	"golang.org/x/text/language"
)

// UnknownLanguage is reported when the upstream service does not detect a source language.
const UnknownLanguage = "unknown"

// DefaultTarget is the language transcripts are translated into.
var DefaultTarget = language.Japanese

// Result is the translated text plus the source language reported by the service.
type Result struct {
	TranslatedText   string `json:"translated"`
	DetectedLanguage string `json:"detected_language"`
}

// Translator translates raw text into the target language.
//
// Callers must pass non-blank text. Implementations return upstream failures
// (network, auth, quota, malformed payload) as errors without retrying.
type Translator interface {
	Translate(ctx context.Context, text string, target language.Tag) (*Result, error)

	// Name identifies the backend in logs and metrics.
	Name() string
}
