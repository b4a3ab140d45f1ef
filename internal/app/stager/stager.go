package stager

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"transcribe-translate/internal/app/audio"
	"transcribe-translate/internal/app/storage"
	"transcribe-translate/internal/errors"
)

// signTTL bounds how long the staged audio stays fetchable by the
// recognition engine
const signTTL = time.Hour

// Stager downloads source media, converts it to a normalized waveform,
// uploads it and returns a time-limited fetch URL. No retries: each
// step's failure is fatal to the staging attempt.
type Stager struct {
	client     *http.Client
	storage    storage.ObjectStorage
	converter  audio.Converter
	scratchDir string
	logger     *zap.Logger
}

// NewStager creates a media stager
func NewStager(store storage.ObjectStorage, converter audio.Converter, scratchDir string, logger *zap.Logger) *Stager {
	if scratchDir == "" {
		scratchDir = os.TempDir()
	}
	return &Stager{
		client:     &http.Client{Timeout: 10 * time.Minute},
		storage:    store,
		converter:  converter,
		scratchDir: scratchDir,
		logger:     logger,
	}
}

// Stage fetches the source media, produces a mono 16kHz waveform, uploads
// it under an audio/ key and returns a signed read URL. Both scratch files
// are removed on every exit path.
func (s *Stager) Stage(ctx context.Context, sourceURL string) (string, error) {
	id := uuid.New().String()
	srcPath := filepath.Join(s.scratchDir, id+sourceExtension(sourceURL))
	wavPath := filepath.Join(s.scratchDir, id+".wav")

	defer func() {
		os.Remove(srcPath)
		os.Remove(wavPath)
	}()

	if err := s.download(ctx, sourceURL, srcPath); err != nil {
		return "", err
	}

	if err := s.converter.Convert(srcPath, wavPath); err != nil {
		return "", errors.NewConversionFailedError(err.Error())
	}

	data, err := os.ReadFile(wavPath)
	if err != nil {
		return "", errors.NewConversionFailedError(fmt.Sprintf("reading converted waveform: %v", err))
	}

	key := "audio/" + id + ".wav"
	if err := s.storage.Put(ctx, key, data, "audio/wav"); err != nil {
		return "", errors.NewStoragePersistFailedError("staged audio", err)
	}

	stagedURL, err := s.storage.SignedReadURL(ctx, key, signTTL)
	if err != nil {
		return "", errors.NewStoragePersistFailedError("staged audio URL", err)
	}

	s.logger.Info("staged audio",
		zap.String("key", key),
		zap.Int("bytes", len(data)))

	return stagedURL, nil
}

func (s *Stager) download(ctx context.Context, sourceURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return errors.NewDownloadFailedError(sourceURL, err.Error())
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.NewDownloadFailedError(sourceURL, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewDownloadFailedError(sourceURL, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	out, err := os.Create(destPath)
	if err != nil {
		return errors.NewDownloadFailedError(sourceURL, err.Error())
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return errors.NewDownloadFailedError(sourceURL, err.Error())
	}

	return nil
}

// sourceExtension preserves the expected container extension from the URL
// path, falling back to .mp4 when none is present
func sourceExtension(sourceURL string) string {
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return ".mp4"
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	if ext == "" {
		return ".mp4"
	}
	return ext
}
