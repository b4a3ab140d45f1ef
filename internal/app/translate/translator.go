package translate

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

	"transcribe-translate/internal/app/locale"
	"transcribe-translate/internal/config"
	"transcribe-translate/internal/errors"
)

// Translator converts recognized text into the profile's target language
type Translator interface {
	Translate(ctx context.Context, text string, profile locale.Profile) (string, error)
}

// NewTranslator selects the translation backend from configuration
func NewTranslator(cfg config.TranslatorConfig, logger *zap.Logger) (Translator, error) {
	switch cfg.Provider {
	case "", "azure":
		return NewAzureTranslator(cfg, logger), nil
	case "openai":
		return NewOpenAITranslator(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown translator provider: %s", cfg.Provider)
	}
}

// AzureTranslator calls the Translator v3 REST API. Exactly one request
// per call; no batching, no retry.
type AzureTranslator struct {
	endpoint string
	apiKey   string
	region   string
	client   *http.Client
	logger   *zap.Logger
}

// NewAzureTranslator creates the REST-backed translator
func NewAzureTranslator(cfg config.TranslatorConfig, logger *zap.Logger) *AzureTranslator {
	return &AzureTranslator{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		region:   cfg.Region,
		client:   &http.Client{Timeout: 60 * time.Second},
		logger:   logger,
	}
}

type translateRequest struct {
	Text string `json:"Text"`
}

type translateResponse struct {
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}

// Translate posts the text with the resolved language pair. Empty input
// short-circuits to an empty result: empty recognized speech never needs
// translation and should not consume quota.
func (t *AzureTranslator) Translate(ctx context.Context, text string, profile locale.Profile) (string, error) {
	if text == "" {
		return "", nil
	}

	body, err := json.Marshal([]translateRequest{{Text: text}})
	if err != nil {
		return "", errors.NewTranslationFailedError(err.Error())
	}

	url := fmt.Sprintf("%s/translate?api-version=3.0&from=%s&to=%s",
		t.endpoint, profile.TranslateFrom, profile.TranslateTo)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.NewTranslationFailedError(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", t.apiKey)
	if t.region != "" {
		req.Header.Set("Ocp-Apim-Subscription-Region", t.region)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", errors.NewTranslationFailedError(err.Error())
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.NewTranslationFailedError(fmt.Sprintf("status %d: %s", resp.StatusCode, payload))
	}

	var parsed []translateResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", errors.NewTranslationFailedError(fmt.Sprintf("malformed response: %v", err))
	}
	if len(parsed) == 0 || len(parsed[0].Translations) == 0 {
		return "", errors.NewTranslationFailedError("empty translation response")
	}

	return parsed[0].Translations[0].Text, nil
}
