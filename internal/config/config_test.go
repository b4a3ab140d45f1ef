package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, 5*time.Second, cfg.Speech.PollInterval)
	assert.Zero(t, cfg.Speech.MaxPolls)
	assert.Equal(t, "azure", cfg.Translator.Provider)
	assert.Equal(t, "https://api.cognitive.microsofttranslator.com", cfg.Translator.Endpoint)
	assert.Equal(t, "gpt-4o-mini", cfg.Translator.Model)
	assert.Equal(t, "t2e-transcripts", cfg.Storage.Bucket)
	assert.Equal(t, 3, cfg.Webhook.MaxRetries)
	assert.Equal(t, time.Second, cfg.Webhook.BaseDelay)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Server.WriteTimeout)
	assert.NotEmpty(t, cfg.ScratchDir)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SPEECH_ENDPOINT", "https://eastus.api.cognitive.microsoft.com")
	t.Setenv("SPEECH_POLL_INTERVAL", "2s")
	t.Setenv("SPEECH_MAX_POLLS", "120")
	t.Setenv("TRANSLATOR_PROVIDER", "openai")
	t.Setenv("WEBHOOK_URL", "https://hooks.example.com/done")
	t.Setenv("WEBHOOK_MAX_RETRIES", "5")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := FromEnv()

	assert.Equal(t, "https://eastus.api.cognitive.microsoft.com", cfg.Speech.Endpoint)
	assert.Equal(t, 2*time.Second, cfg.Speech.PollInterval)
	assert.Equal(t, 120, cfg.Speech.MaxPolls)
	assert.Equal(t, "openai", cfg.Translator.Provider)
	assert.Equal(t, "https://hooks.example.com/done", cfg.Webhook.URL)
	assert.Equal(t, 5, cfg.Webhook.MaxRetries)
	assert.True(t, cfg.Storage.UseSSL)
}

func TestFromEnv_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("SPEECH_MAX_POLLS", "not-a-number")
	t.Setenv("SPEECH_POLL_INTERVAL", "soon")

	cfg := FromEnv()

	assert.Zero(t, cfg.Speech.MaxPolls)
	assert.Equal(t, 5*time.Second, cfg.Speech.PollInterval)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Speech:     SpeechConfig{Endpoint: "https://speech.example.com", APIKey: "speech-key"},
			Translator: TranslatorConfig{Provider: "azure", APIKey: "translator-key"},
		}
	}

	t.Run("valid azure", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing speech credentials", func(t *testing.T) {
		cfg := base()
		cfg.Speech.Endpoint = ""
		cfg.Speech.APIKey = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SPEECH_ENDPOINT")
		assert.Contains(t, err.Error(), "SPEECH_API_KEY")
	})

	t.Run("azure without translator key", func(t *testing.T) {
		cfg := base()
		cfg.Translator.APIKey = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TRANSLATOR_API_KEY")
	})

	t.Run("openai without key", func(t *testing.T) {
		cfg := base()
		cfg.Translator.Provider = "openai"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})

	t.Run("openai with key", func(t *testing.T) {
		cfg := base()
		cfg.Translator.Provider = "openai"
		cfg.Translator.OpenAIKey = "sk-test"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := base()
		cfg.Translator.Provider = "deepl"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown translator provider")
	})
}

func TestLoadFile_OverlaysOntoBase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
speech:
  endpoint: https://westus.api.cognitive.microsoft.com
  max_polls: 240
webhook:
  url: https://hooks.example.com/finished
  max_retries: 2
`), 0o644))

	base := FromEnv()
	base.Speech.APIKey = "from-env"

	cfg, err := LoadFile(base, path)
	require.NoError(t, err)

	// file values win, untouched base values survive
	assert.Equal(t, "https://westus.api.cognitive.microsoft.com", cfg.Speech.Endpoint)
	assert.Equal(t, 240, cfg.Speech.MaxPolls)
	assert.Equal(t, "from-env", cfg.Speech.APIKey)
	assert.Equal(t, "https://hooks.example.com/finished", cfg.Webhook.URL)
	assert.Equal(t, 2, cfg.Webhook.MaxRetries)
	assert.Equal(t, "t2e-transcripts", cfg.Storage.Bucket)
}

func TestLoadFile_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_SPEECH_KEY", "expanded-secret")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
speech:
  api_key: ${TEST_SPEECH_KEY}
`), 0o644))

	cfg, err := LoadFile(FromEnv(), path)
	require.NoError(t, err)
	assert.Equal(t, "expanded-secret", cfg.Speech.APIKey)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(FromEnv(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
