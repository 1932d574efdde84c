package minutes

import (
	"errors"
	"fmt"
)

// Stages reported by UpstreamError.
const (
	StageTranslate = "translate"
	StageCompose   = "compose"
)

// ErrEmptyText is returned when the transcript is blank after trimming.
var ErrEmptyText = errors.New("transcript text is empty")

// UpstreamError wraps a failure from one of the two outbound calls.
type UpstreamError struct {
	Stage string
	Err   error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failed", e.Stage)
	}
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Result is everything the translate endpoint returns on success.
type Result struct {
	Original         string `json:"original"`
	Translated       string `json:"translated"`
	DetectedLanguage string `json:"detected_language"`
	Minutes          string `json:"minutes"`
}
