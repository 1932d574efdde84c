package translation

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"
)

// ErrEmptyResponse is returned when the service answers without any translation.
var ErrEmptyResponse = errors.New("translation service returned no translations")

// GoogleOptions selects credentials for the Cloud Translation v2 client.
// CredentialsJSON wins over APIKey; when both are empty Application Default
// Credentials are used.
type GoogleOptions struct {
	CredentialsJSON []byte
	APIKey          string
	Endpoint        string
}

// GoogleTranslator implements Translator on top of Google Cloud Translation v2.
// The generated REST client is used so the detected source language is
// reported exactly as the service returns it.
type GoogleTranslator struct {
	svc *translate.Service
}

// NewGoogleTranslator builds the client once; it is safe for concurrent use.
func NewGoogleTranslator(ctx context.Context, opts GoogleOptions) (*GoogleTranslator, error) {
	var clientOpts []option.ClientOption
	switch {
	case len(opts.CredentialsJSON) > 0:
		clientOpts = append(clientOpts, option.WithCredentialsJSON(opts.CredentialsJSON))
	case opts.APIKey != "":
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	svc, err := translate.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create translate client: %w", err)
	}
	return &GoogleTranslator{svc: svc}, nil
}

// Translate sends text as plain text (not HTML). An omitted source language
// becomes UnknownLanguage; any other code is passed through untouched.
func (g *GoogleTranslator) Translate(ctx context.Context, text string, target language.Tag) (*Result, error) {
	resp, err := g.svc.Translations.List([]string{text}, target.String()).
		Format("text").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("google translate: %w", err)
	}
	if resp == nil || len(resp.Translations) == 0 || resp.Translations[0] == nil {
		return nil, ErrEmptyResponse
	}

	t := resp.Translations[0]
	detected := t.DetectedSourceLanguage
	if detected == "" {
		detected = UnknownLanguage
	}

	return &Result{
		TranslatedText:   t.TranslatedText,
		DetectedLanguage: detected,
	}, nil
}

// Name returns "google".
func (g *GoogleTranslator) Name() string {
	return "google"
}

// Close is a no-op for the REST client.
func (g *GoogleTranslator) Close() error {
	return nil
}

// DecodeCredentials decodes a base64 service-account JSON blob, as provided through
// GOOGLE_CREDENTIALS_BASE64 on hosts without a credentials file.
func DecodeCredentials(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode credentials: %w", err)
	}
	if !json.Valid(data) {
		return nil, errors.New("decode credentials: payload is not JSON")
	}
	return data, nil
}
