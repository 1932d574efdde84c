package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/houzhh15/transcript-minutes/cmd/server/internal/composer"
	"github.com/houzhh15/transcript-minutes/cmd/server/internal/domain/minutes"
	"github.com/houzhh15/transcript-minutes/cmd/server/internal/middleware"
	"github.com/houzhh15/transcript-minutes/cmd/server/internal/translation"
)

type stubTranslator struct {
	detected string
	err      error
	calls    int
}

func (s *stubTranslator) Translate(_ context.Context, text string, _ language.Tag) (*translation.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &translation.Result{TranslatedText: "訳: " + text, DetectedLanguage: s.detected}, nil
}

func (s *stubTranslator) Name() string { return "stub" }

type stubComposer struct {
	err   error
	calls int
}

func (s *stubComposer) Compose(_ context.Context, _, translated string) (*composer.Document, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &composer.Document{Markdown: "# 議事録\n\n## 会議の要旨\n" + translated}, nil
}

func (s *stubComposer) Name() string { return "stub" }

func newTestRouter(t *testing.T, tr *stubTranslator, co *stubComposer, maxBody int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.BodyLimit(maxBody))
	SetupRoutes(r, minutes.NewService(tr, co, language.Japanese, nil))
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestTranslate_Success(t *testing.T) {
	tr := &stubTranslator{detected: "en"}
	co := &stubComposer{}
	r := newTestRouter(t, tr, co, 1<<20)

	for _, path := range []string{"/translate", "/api/translate"} {
		w := doJSON(r, http.MethodPost, path, `{"text":"We will ship 3/4 units next week."}`)
		require.Equal(t, http.StatusOK, w.Code, path)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "We will ship 3/4 units next week.", body["original"])
		assert.Equal(t, "訳: We will ship 3/4 units next week.", body["translated"])
		assert.Equal(t, "en", body["detected_language"])
		assert.True(t, strings.HasPrefix(body["minutes"].(string), "# 議事録"))
	}
	assert.Equal(t, 2, tr.calls)
	assert.Equal(t, 2, co.calls)
}

func TestTranslate_OriginalEchoedExactly(t *testing.T) {
	r := newTestRouter(t, &stubTranslator{detected: "en"}, &stubComposer{}, 1<<20)

	w := doJSON(r, http.MethodPost, "/api/translate", `{"text":"  Hello team \n"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "  Hello team \n", decodeBody(t, w)["original"])
}

func TestTranslate_UnknownLanguage(t *testing.T) {
	r := newTestRouter(t, &stubTranslator{detected: translation.UnknownLanguage}, &stubComposer{}, 1<<20)

	w := doJSON(r, http.MethodPost, "/api/translate", `{"text":"Hello"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unknown", decodeBody(t, w)["detected_language"])
}

func TestTranslate_BlankInput(t *testing.T) {
	cases := map[string]string{
		"whitespace": `{"text":"   "}`,
		"empty":      `{"text":""}`,
		"missing":    `{}`,
		"no body":    ``,
		"not json":   `text=hello`,
		"wrong type": `{"text":42}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			tr := &stubTranslator{detected: "en"}
			co := &stubComposer{}
			r := newTestRouter(t, tr, co, 1<<20)

			w := doJSON(r, http.MethodPost, "/api/translate", payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, map[string]any{"error": "テキストが入力されていません"}, decodeBody(t, w))
			assert.Zero(t, tr.calls)
			assert.Zero(t, co.calls)
		})
	}
}

func TestTranslate_TranslationFailure(t *testing.T) {
	tr := &stubTranslator{err: errors.New("permission denied: invalid credentials")}
	co := &stubComposer{}
	r := newTestRouter(t, tr, co, 1<<20)

	w := doJSON(r, http.MethodPost, "/api/translate", `{"text":"Hello team"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	msg := decodeBody(t, w)["error"].(string)
	assert.True(t, strings.HasPrefix(msg, "エラー: "))
	assert.Contains(t, msg, "permission denied: invalid credentials")
	assert.Zero(t, co.calls)
}

func TestTranslate_ComposeFailure(t *testing.T) {
	co := &stubComposer{err: errors.New("overloaded")}
	r := newTestRouter(t, &stubTranslator{detected: "en"}, co, 1<<20)

	w := doJSON(r, http.MethodPost, "/translate", `{"text":"Hello team"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "エラー: overloaded", decodeBody(t, w)["error"])
	assert.Equal(t, 1, co.calls)
}

func TestTranslate_BodyTooLarge(t *testing.T) {
	tr := &stubTranslator{detected: "en"}
	r := newTestRouter(t, tr, &stubComposer{}, 16)

	w := doJSON(r, http.MethodPost, "/api/translate", `{"text":"`+strings.Repeat("a", 64)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Zero(t, tr.calls)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, &stubTranslator{}, &stubComposer{}, 1<<20)

	for _, path := range []string{"/health", "/api/health"} {
		w := doJSON(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]any{"status": "ok"}, decodeBody(t, w))
	}
}

func TestReadiness(t *testing.T) {
	r := newTestRouter(t, &stubTranslator{}, &stubComposer{}, 1<<20)

	w := doJSON(r, http.MethodGet, "/readiness", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ReadinessCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Ready)
	assert.Equal(t, []ReadinessCheck{{Name: "composer", Status: "ok"}, {Name: "translator", Status: "ok"}}, resp.Checks)
}

type notReady struct{}

func (notReady) Ready() map[string]bool { return map[string]bool{"composer": true, "translator": false} }

func TestReadiness_NotReady(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/readiness", nil)

	HandleReadiness(notReady{})(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp ReadinessCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Ready)
}

func TestIndexAndNotFound(t *testing.T) {
	r := newTestRouter(t, &stubTranslator{}, &stubComposer{}, 1<<20)

	w := doJSON(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = doJSON(r, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "endpoint not found", decodeBody(t, w)["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, &stubTranslator{detected: "en"}, &stubComposer{}, 1<<20)
	doJSON(r, http.MethodPost, "/api/translate", `{"text":"Hello"}`)

	w := doJSON(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "minutes_requests_total")
	assert.Contains(t, w.Body.String(), "upstream_calls_total")
}

func TestSetupRoutes_PipelineRunsBeforeTranslate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tr := &stubTranslator{detected: "en"}
	r := gin.New()
	SetupRoutes(r, minutes.NewService(tr, &stubComposer{}, language.Japanese, nil), func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "busy"})
	})

	w := doJSON(r, http.MethodPost, "/api/translate", `{"text":"Hello"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Zero(t, tr.calls)

	w = doJSON(r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code, "pipeline applies to translate routes only")
}
