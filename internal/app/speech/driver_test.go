package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"transcribe-translate/internal/app/clock"
	"transcribe-translate/internal/app/locale"
	"transcribe-translate/internal/config"
	"transcribe-translate/internal/errors"
)

// fakeSleeper records requested sleep durations without sleeping
type fakeSleeper struct {
	mu    sync.Mutex
	slept []time.Duration
}

func (s *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slept = append(s.slept, d)
	return nil
}

// fakeSpeechService simulates the remote recognition job service
type fakeSpeechService struct {
	t             *testing.T
	states        []string
	failMessage   string
	resultFiles   int
	phrases       []string
	statusFetches int
	manifestHits  int
	deleted       bool
	deleteStatus  int
	server        *httptest.Server
}

func newFakeSpeechService(t *testing.T, states []string) *fakeSpeechService {
	f := &fakeSpeechService{t: t, states: states, resultFiles: 1}
	mux := http.NewServeMux()

	// Method-prefixed ServeMux patterns need Go 1.22+; dispatch on method
	// manually so the fake works on Go 1.21.
	byMethod := func(handlers map[string]http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if h, ok := handlers[r.Method]; ok {
				h(w, r)
				return
			}
			http.Error(w, "405 method not allowed", http.StatusMethodNotAllowed)
		}
	}

	postTranscriptions := func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-key", r.Header.Get("Ocp-Apim-Subscription-Key"))

		var req transcriptionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.ContentURLs, 1)
		assert.True(t, req.Properties.DiarizationEnabled)
		assert.True(t, req.Properties.WordLevelTimestampsEnabled)

		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"self":"%s/jobs/1","status":"NotStarted"}`, f.server.URL)
	}

	getJob := func(w http.ResponseWriter, r *http.Request) {
		state := f.states[min(f.statusFetches, len(f.states)-1)]
		f.statusFetches++

		status := map[string]any{
			"self":   f.server.URL + "/jobs/1",
			"status": state,
			"links":  map[string]string{"files": f.server.URL + "/jobs/1/files"},
		}
		if state == "Failed" && f.failMessage != "" {
			status["properties"] = map[string]any{"error": map[string]string{"message": f.failMessage}}
		}
		json.NewEncoder(w).Encode(status)
	}

	getFiles := func(w http.ResponseWriter, r *http.Request) {
		f.manifestHits++
		values := []map[string]any{}
		for i := 0; i < f.resultFiles; i++ {
			values = append(values, map[string]any{
				"name":  fmt.Sprintf("result-%d.json", i),
				"kind":  "Transcription",
				"links": map[string]string{"contentUrl": f.server.URL + "/results/0"},
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"values": values})
	}

	getResult := func(w http.ResponseWriter, r *http.Request) {
		phrases := []map[string]any{}
		for _, p := range f.phrases {
			phrases = append(phrases, map[string]any{
				"nBest": []map[string]string{{"display": p}, {"display": "worse candidate"}},
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"recognizedPhrases": phrases})
	}

	deleteJob := func(w http.ResponseWriter, r *http.Request) {
		f.deleted = true
		status := f.deleteStatus
		if status == 0 {
			status = http.StatusNoContent
		}
		w.WriteHeader(status)
	}

	mux.HandleFunc("/speechtotext/v3.1/transcriptions", byMethod(map[string]http.HandlerFunc{
		http.MethodPost: postTranscriptions,
	}))
	mux.HandleFunc("/jobs/1", byMethod(map[string]http.HandlerFunc{
		http.MethodGet:    getJob,
		http.MethodDelete: deleteJob,
	}))
	mux.HandleFunc("/jobs/1/files", byMethod(map[string]http.HandlerFunc{
		http.MethodGet: getFiles,
	}))
	mux.HandleFunc("/results/0", byMethod(map[string]http.HandlerFunc{
		http.MethodGet: getResult,
	}))

	f.server = httptest.NewServer(mux)
	return f
}

func newTestDriver(endpoint string, sleeper clock.Sleeper, maxPolls int) *Driver {
	return NewDriver(config.SpeechConfig{
		Endpoint:     endpoint,
		APIKey:       "test-key",
		PollInterval: 5 * time.Second,
		MaxPolls:     maxPolls,
	}, sleeper, zap.NewNop())
}

func hindiProfile(t *testing.T) locale.Profile {
	profile, err := locale.Resolve("india")
	require.NoError(t, err)
	return profile
}

func TestTranscribe_PollsUntilSucceeded(t *testing.T) {
	svc := newFakeSpeechService(t, []string{"Running", "Running", "Succeeded"})
	defer svc.server.Close()
	svc.phrases = []string{"नमस्ते", "दुनिया", "फिर मिलेंगे"}

	sleeper := &fakeSleeper{}
	driver := newTestDriver(svc.server.URL, sleeper, 0)

	text, err := driver.Transcribe(context.Background(), "https://storage/audio.wav", hindiProfile(t))
	require.NoError(t, err)

	assert.Equal(t, "नमस्ते दुनिया फिर मिलेंगे", text)
	assert.Equal(t, 3, svc.statusFetches)
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, sleeper.slept)
	assert.True(t, svc.deleted)
}

func TestTranscribe_FailedOnFirstPoll(t *testing.T) {
	svc := newFakeSpeechService(t, []string{"Failed"})
	defer svc.server.Close()
	svc.failMessage = "audio format not supported"

	sleeper := &fakeSleeper{}
	driver := newTestDriver(svc.server.URL, sleeper, 0)

	_, err := driver.Transcribe(context.Background(), "https://storage/audio.wav", hindiProfile(t))
	require.Error(t, err)

	assert.Equal(t, errors.KindTranscriptionFailed, errors.KindOf(err))
	assert.Contains(t, err.Error(), "audio format not supported")
	assert.Equal(t, 1, svc.statusFetches)
	assert.Equal(t, 0, svc.manifestHits)
	assert.Empty(t, sleeper.slept)
}

func TestTranscribe_FailedWithoutMessage(t *testing.T) {
	svc := newFakeSpeechService(t, []string{"Failed"})
	defer svc.server.Close()

	driver := newTestDriver(svc.server.URL, &fakeSleeper{}, 0)

	_, err := driver.Transcribe(context.Background(), "https://storage/audio.wav", hindiProfile(t))
	require.Error(t, err)
	assert.Equal(t, errors.KindTranscriptionFailed, errors.KindOf(err))
	assert.Contains(t, err.Error(), "without a status message")
}

func TestTranscribe_EmptyManifest(t *testing.T) {
	svc := newFakeSpeechService(t, []string{"Succeeded"})
	defer svc.server.Close()
	svc.resultFiles = 0

	driver := newTestDriver(svc.server.URL, &fakeSleeper{}, 0)

	_, err := driver.Transcribe(context.Background(), "https://storage/audio.wav", hindiProfile(t))
	require.Error(t, err)
	assert.Equal(t, errors.KindNoTranscriptionOutput, errors.KindOf(err))
	assert.Equal(t, 1, svc.manifestHits)
}

func TestTranscribe_SubmissionRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid locale"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	driver := newTestDriver(server.URL, &fakeSleeper{}, 0)

	_, err := driver.Transcribe(context.Background(), "https://storage/audio.wav", hindiProfile(t))
	require.Error(t, err)
	assert.Equal(t, errors.KindJobSubmissionFailed, errors.KindOf(err))
	assert.Contains(t, err.Error(), "invalid locale")
}

func TestTranscribe_MaxPollsExhausted(t *testing.T) {
	svc := newFakeSpeechService(t, []string{"Running"})
	defer svc.server.Close()

	driver := newTestDriver(svc.server.URL, &fakeSleeper{}, 4)

	_, err := driver.Transcribe(context.Background(), "https://storage/audio.wav", hindiProfile(t))
	require.Error(t, err)
	assert.Equal(t, errors.KindTranscriptionFailed, errors.KindOf(err))
	assert.Equal(t, 4, svc.statusFetches)
}

func TestTranscribe_DeletionFailureNotSurfaced(t *testing.T) {
	svc := newFakeSpeechService(t, []string{"Succeeded"})
	defer svc.server.Close()
	svc.phrases = []string{"hello"}
	svc.deleteStatus = http.StatusInternalServerError

	driver := newTestDriver(svc.server.URL, &fakeSleeper{}, 0)
	text, err := driver.Transcribe(context.Background(), "https://storage/audio.wav", hindiProfile(t))
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.True(t, svc.deleted)
}

func TestJobStateTerminal(t *testing.T) {
	assert.True(t, StateSucceeded.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateRunning.Terminal())
	assert.False(t, StateCreated.Terminal())
	assert.False(t, JobState("NotStarted").Terminal())
}
