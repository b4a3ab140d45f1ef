package translate

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"transcribe-translate/internal/app/locale"
	"transcribe-translate/internal/config"
	"transcribe-translate/internal/errors"
)

// OpenAITranslator translates via a chat completion instead of a dedicated
// translation API. Useful where only an OpenAI key is provisioned.
type OpenAITranslator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAITranslator creates the chat-completion-backed translator
func NewOpenAITranslator(cfg config.TranslatorConfig, logger *zap.Logger) *OpenAITranslator {
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITranslator{
		client: openai.NewClient(cfg.OpenAIKey),
		model:  model,
		logger: logger,
	}
}

// Translate issues exactly one chat completion; empty input short-circuits
// without a remote call, matching the REST translator's policy
func (t *OpenAITranslator) Translate(ctx context.Context, text string, profile locale.Profile) (string, error) {
	if text == "" {
		return "", nil
	}

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a helpful translator.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Translate this %s text to English:\n\n%s", profile.LanguageName, text),
			},
		},
	})
	if err != nil {
		return "", errors.NewTranslationFailedError(err.Error())
	}
	if len(resp.Choices) == 0 {
		return "", errors.NewTranslationFailedError("empty completion response")
	}

	return resp.Choices[0].Message.Content, nil
}
