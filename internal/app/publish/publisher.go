package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"transcribe-translate/internal/app/clock"
	"transcribe-translate/internal/app/model"
	"transcribe-translate/internal/app/storage"
	"transcribe-translate/internal/config"
	"transcribe-translate/internal/errors"
)

// transcriptTTL bounds the shareable English transcript link
const transcriptTTL = 24 * time.Hour

// Outcome reports what Publish accomplished. Notification failure is
// best-effort and lives here rather than in the returned error.
type Outcome struct {
	OriginalKey      string `json:"original_key"`
	EnglishKey       string `json:"english_key"`
	TranscriptURL    string `json:"transcript_url"`
	NotificationSent bool   `json:"notification_sent"`
	Attempts         int    `json:"attempts,omitempty"`
	DeliveryErr      error  `json:"-"`
}

// notification is the payload delivered to the downstream webhook
type notification struct {
	FileID        string `json:"file_id"`
	TranscriptURL string `json:"transcript_url"`
	Timestamp     string `json:"timestamp"`
}

// Publisher persists transcripts and notifies the downstream consumer
type Publisher struct {
	storage    storage.ObjectStorage
	webhookURL string
	maxRetries int
	baseDelay  time.Duration
	client     *http.Client
	sleeper    clock.Sleeper
	logger     *zap.Logger
}

// NewPublisher creates a publisher from explicit webhook configuration
func NewPublisher(store storage.ObjectStorage, cfg config.WebhookConfig, sleeper clock.Sleeper, logger *zap.Logger) *Publisher {
	baseDelay := cfg.BaseDelay
	if baseDelay == 0 {
		baseDelay = time.Second
	}
	return &Publisher{
		storage:    store,
		webhookURL: cfg.URL,
		maxRetries: cfg.MaxRetries,
		baseDelay:  baseDelay,
		client:     &http.Client{Timeout: 30 * time.Second},
		sleeper:    sleeper,
		logger:     logger,
	}
}

// Publish writes both transcripts, signs a shareable link for the English
// one and delivers the completion notification. Persistence failures abort
// and name the artifact that failed; delivery exhaustion is recorded in the
// outcome without rolling anything back.
func (p *Publisher) Publish(ctx context.Context, result *model.TranscriptResult) (*Outcome, error) {
	outcome := &Outcome{
		OriginalKey: result.OriginalKey(),
		EnglishKey:  result.EnglishKey(),
	}

	if err := p.storage.Put(ctx, outcome.OriginalKey, []byte(result.OriginalText), "text/plain; charset=utf-8"); err != nil {
		return outcome, errors.NewStoragePersistFailedError("original", err)
	}
	if err := p.storage.Put(ctx, outcome.EnglishKey, []byte(result.EnglishText), "text/plain; charset=utf-8"); err != nil {
		return outcome, errors.NewStoragePersistFailedError("english", err)
	}

	transcriptURL, err := p.storage.SignedReadURL(ctx, outcome.EnglishKey, transcriptTTL)
	if err != nil {
		return outcome, errors.NewStoragePersistFailedError("english transcript URL", err)
	}
	outcome.TranscriptURL = transcriptURL

	if p.webhookURL == "" {
		p.logger.Info("no webhook configured, skipping notification",
			zap.String("file_id", result.FileID))
		return outcome, nil
	}

	p.notify(ctx, result.FileID, transcriptURL, outcome)
	return outcome, nil
}

// notify delivers the payload with bounded retries and exponential backoff:
// baseDelay * 2^attempt between attempts, none after the last
func (p *Publisher) notify(ctx context.Context, fileID, transcriptURL string, outcome *Outcome) {
	payload, err := json.Marshal(notification{
		FileID:        fileID,
		TranscriptURL: transcriptURL,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		outcome.DeliveryErr = errors.NewNotificationDeliveryFailedError(0, err.Error())
		return
	}

	attempts := p.maxRetries + 1
	var lastReason string

	for i := 0; i < attempts; i++ {
		outcome.Attempts = i + 1

		ok, reason := p.deliver(ctx, payload)
		if ok {
			outcome.NotificationSent = true
			p.logger.Info("webhook notification delivered",
				zap.String("file_id", fileID),
				zap.Int("attempt", i+1))
			return
		}
		lastReason = reason

		p.logger.Warn("webhook notification attempt failed",
			zap.String("file_id", fileID),
			zap.Int("attempt", i+1),
			zap.String("reason", reason))

		if i < attempts-1 {
			if err := p.sleeper.Sleep(ctx, p.baseDelay*(1<<i)); err != nil {
				lastReason = err.Error()
				break
			}
		}
	}

	outcome.DeliveryErr = errors.NewNotificationDeliveryFailedError(outcome.Attempts, lastReason)
}

func (p *Publisher) deliver(ctx context.Context, payload []byte) (bool, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return false, err.Error()
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return false, err.Error()
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return true, ""
	}
	return false, fmt.Sprintf("status %d", resp.StatusCode)
}
