package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"transcribe-translate/internal/app/locale"
	"transcribe-translate/internal/app/model"
	"transcribe-translate/internal/app/publish"
	"transcribe-translate/internal/config"
	"transcribe-translate/internal/errors"
)

// stubRunner returns canned pipeline results without running anything
type stubRunner struct {
	result  *model.TranscriptResult
	outcome *publish.Outcome
	err     error
	calls   int
}

func (r *stubRunner) Run(ctx context.Context, sourceURL, country string) (*model.TranscriptResult, *publish.Outcome, error) {
	r.calls++
	if r.err != nil {
		return nil, nil, r.err
	}
	return r.result, r.outcome, nil
}

func newTestServer(runner *stubRunner) *Server {
	return NewServer(config.ServerConfig{
		Host:        "127.0.0.1",
		Port:        "0",
		Environment: "production",
	}, runner, zap.NewNop())
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestCreateTranscription_Success(t *testing.T) {
	runner := &stubRunner{
		result: &model.TranscriptResult{
			FileID:       "abc-123",
			Country:      "Japan",
			LanguageName: "Japanese",
			OriginalText: "こんにちは",
			EnglishText:  "Hello",
		},
		outcome: &publish.Outcome{
			TranscriptURL:    "https://storage.local/transcripts/abc-123_english.txt",
			NotificationSent: true,
		},
	}
	srv := newTestServer(runner)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/transcriptions",
		`{"file_url":"https://cdn.example.com/clip.mp4","country":"japan"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, runner.calls)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "abc-123", resp["file_id"])
	assert.Equal(t, "Japan", resp["country"])
	assert.Equal(t, "Japanese", resp["language_name"])
	assert.Equal(t, "こんにちは", resp["original_text"])
	assert.Equal(t, "Hello", resp["english_text"])
	assert.Equal(t, true, resp["notification_sent"])
}

func TestCreateTranscription_ValidationFailure(t *testing.T) {
	runner := &stubRunner{}
	srv := newTestServer(runner)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/transcriptions",
		`{"file_url":"not a url"}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, runner.calls)

	var resp struct {
		Kind      string            `json:"kind"`
		Details   map[string]string `json:"details"`
		RequestID string            `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation", resp.Kind)
	assert.Equal(t, "must be a valid URL", resp.Details["fileurl"])
	assert.Equal(t, "is required", resp.Details["country"])
	assert.NotEmpty(t, resp.RequestID)
}

func TestCreateTranscription_MalformedJSON(t *testing.T) {
	srv := newTestServer(&stubRunner{})

	w := doJSON(t, srv, http.MethodPost, "/api/v1/transcriptions", `{not json`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid JSON format", resp.Details["request"])
}

func TestCreateTranscription_UnsupportedCountry(t *testing.T) {
	runner := &stubRunner{
		err: errors.NewUnsupportedCountryError("atlantis", locale.SupportedCountries()),
	}
	srv := newTestServer(runner)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/transcriptions",
		`{"file_url":"https://cdn.example.com/clip.mp4","country":"atlantis"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Kind               string   `json:"kind"`
		Message            string   `json:"message"`
		SupportedCountries []string `json:"supported_countries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unsupported_country", resp.Kind)
	assert.Contains(t, resp.Message, "atlantis")
	assert.Equal(t, locale.SupportedCountries(), resp.SupportedCountries)
}

func TestCreateTranscription_RemoteFailureMapsToBadGateway(t *testing.T) {
	runner := &stubRunner{err: errors.NewTranscriptionFailedError("job failed upstream")}
	srv := newTestServer(runner)

	w := doJSON(t, srv, http.MethodPost, "/api/v1/transcriptions",
		`{"file_url":"https://cdn.example.com/clip.mp4","country":"usa"}`)

	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "transcription_failed", resp.Kind)
}

func TestCountries(t *testing.T) {
	srv := newTestServer(&stubRunner{})

	w := doJSON(t, srv, http.MethodGet, "/api/v1/countries", "")

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Countries []string `json:"countries"`
		Codes     []string `json:"codes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, locale.SupportedCountries(), resp.Countries)
	assert.Len(t, resp.Codes, len(resp.Countries))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubRunner{})

	w := doJSON(t, srv, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&stubRunner{})

	w := doJSON(t, srv, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
