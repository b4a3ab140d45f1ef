package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"transcribe-translate/internal/app/clock"
	"transcribe-translate/internal/app/locale"
	"transcribe-translate/internal/config"
	"transcribe-translate/internal/errors"
)

const transcriptionsPath = "/speechtotext/v3.1/transcriptions"

// Driver submits a recognition job against staged audio and polls it to a
// terminal state. One Driver serves any number of concurrent jobs; all job
// state lives in the remote service.
type Driver struct {
	endpoint string
	apiKey   string
	client   *http.Client
	interval time.Duration
	maxPolls int
	sleeper  clock.Sleeper
	logger   *zap.Logger
}

// NewDriver creates a job driver from explicit configuration
func NewDriver(cfg config.SpeechConfig, sleeper clock.Sleeper, logger *zap.Logger) *Driver {
	interval := cfg.PollInterval
	if interval == 0 {
		interval = 5 * time.Second
	}
	return &Driver{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: 60 * time.Second},
		interval: interval,
		maxPolls: cfg.MaxPolls,
		sleeper:  sleeper,
		logger:   logger,
	}
}

// Transcribe drives one job end to end and returns the combined recognized
// text: the top candidate of every recognized segment in manifest order,
// joined by a single space.
func (d *Driver) Transcribe(ctx context.Context, audioURL string, profile locale.Profile) (string, error) {
	jobURL, err := d.submit(ctx, audioURL, profile)
	if err != nil {
		return "", err
	}

	d.logger.Info("transcription job created",
		zap.String("job", jobURL),
		zap.String("locale", profile.SpeechLocale))

	status, err := d.poll(ctx, jobURL)
	if err != nil {
		return "", err
	}

	if JobState(status.Status) == StateFailed {
		message := ""
		if status.Properties.Error != nil {
			message = status.Properties.Error.Message
		}
		return "", errors.NewTranscriptionFailedError(message)
	}

	// Remote job removal is best-effort once a result has been read
	defer d.deleteJob(jobURL)

	return d.fetchCombinedText(ctx, status.Links.Files)
}

func (d *Driver) submit(ctx context.Context, audioURL string, profile locale.Profile) (string, error) {
	body, err := json.Marshal(transcriptionRequest{
		ContentURLs: []string{audioURL},
		Locale:      profile.SpeechLocale,
		DisplayName: fmt.Sprintf("transcription-%s", profile.Key),
		Properties: transcriptionProperties{
			DiarizationEnabled:         true,
			WordLevelTimestampsEnabled: true,
		},
	})
	if err != nil {
		return "", errors.NewJobSubmissionFailedError(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint+transcriptionsPath, bytes.NewReader(body))
	if err != nil {
		return "", errors.NewJobSubmissionFailedError(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", errors.NewJobSubmissionFailedError(err.Error())
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return "", errors.NewJobSubmissionFailedError(fmt.Sprintf("status %d: %s", resp.StatusCode, payload))
	}

	var status transcriptionStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return "", errors.NewJobSubmissionFailedError(fmt.Sprintf("malformed create response: %v", err))
	}
	if status.Self == "" {
		return "", errors.NewJobSubmissionFailedError("create response carries no job URL")
	}

	return status.Self, nil
}

// poll fetches job status at a fixed interval until a terminal state is
// observed. With maxPolls == 0 it polls indefinitely; a positive bound
// turns exhaustion into a transcription failure.
func (d *Driver) poll(ctx context.Context, jobURL string) (*transcriptionStatus, error) {
	for polls := 0; ; polls++ {
		if d.maxPolls > 0 && polls >= d.maxPolls {
			return nil, errors.NewTranscriptionFailedError(
				fmt.Sprintf("job did not reach a terminal state after %d status checks", d.maxPolls))
		}
		if polls > 0 {
			if err := d.sleeper.Sleep(ctx, d.interval); err != nil {
				return nil, errors.NewTranscriptionFailedError(err.Error())
			}
		}

		status, err := d.fetchStatus(ctx, jobURL)
		if err != nil {
			return nil, err
		}

		d.logger.Debug("job status",
			zap.String("job", jobURL),
			zap.String("state", status.Status),
			zap.Int("polls", polls+1))

		if JobState(status.Status).Terminal() {
			return status, nil
		}
	}
}

func (d *Driver) fetchStatus(ctx context.Context, jobURL string) (*transcriptionStatus, error) {
	payload, err := d.get(ctx, jobURL, true)
	if err != nil {
		return nil, errors.NewTranscriptionFailedError(err.Error())
	}

	var status transcriptionStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return nil, errors.NewTranscriptionFailedError(fmt.Sprintf("malformed status response: %v", err))
	}
	return &status, nil
}

func (d *Driver) fetchCombinedText(ctx context.Context, filesURL string) (string, error) {
	payload, err := d.get(ctx, filesURL, true)
	if err != nil {
		return "", errors.NewTranscriptionFailedError(err.Error())
	}

	var files resultFileList
	if err := json.Unmarshal(payload, &files); err != nil {
		return "", errors.NewTranscriptionFailedError(fmt.Sprintf("malformed file manifest: %v", err))
	}
	if len(files.Values) == 0 {
		return "", errors.NewNoTranscriptionOutputError()
	}

	// Result file URLs are themselves signed; no key header needed
	payload, err = d.get(ctx, files.Values[0].Links.ContentURL, false)
	if err != nil {
		return "", errors.NewTranscriptionFailedError(err.Error())
	}

	var doc resultDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return "", errors.NewTranscriptionFailedError(fmt.Sprintf("malformed result document: %v", err))
	}

	parts := make([]string, 0, len(doc.RecognizedPhrases))
	for _, phrase := range doc.RecognizedPhrases {
		if len(phrase.NBest) > 0 {
			parts = append(parts, phrase.NBest[0].Display)
		}
	}

	return strings.Join(parts, " "), nil
}

// deleteJob issues a best-effort deletion of the remote job. Failures are
// logged, never surfaced as pipeline failures.
func (d *Driver) deleteJob(jobURL string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, jobURL, nil)
	if err != nil {
		d.logger.Warn("job deletion skipped", zap.String("job", jobURL), zap.Error(err))
		return
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Warn("job deletion failed", zap.String("job", jobURL), zap.Error(err))
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		d.logger.Warn("job deletion failed",
			zap.String("job", jobURL),
			zap.Int("status", resp.StatusCode))
	}
}

func (d *Driver) get(ctx context.Context, rawURL string, authenticated bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if authenticated {
		req.Header.Set("Ocp-Apim-Subscription-Key", d.apiKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: status %d: %s", rawURL, resp.StatusCode, payload)
	}

	return payload, nil
}
