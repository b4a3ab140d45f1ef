package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SpeechConfig holds the speech recognition job service settings
type SpeechConfig struct {
	Endpoint     string        `yaml:"endpoint"`
	APIKey       string        `yaml:"api_key"`
	PollInterval time.Duration `yaml:"poll_interval"`
	// MaxPolls bounds the status poll loop; 0 polls until a terminal state
	MaxPolls int `yaml:"max_polls"`
}

// TranslatorConfig holds the translation service settings
type TranslatorConfig struct {
	// Provider selects the translation backend: "azure" or "openai"
	Provider  string `yaml:"provider"`
	Endpoint  string `yaml:"endpoint"`
	APIKey    string `yaml:"api_key"`
	Region    string `yaml:"region"`
	OpenAIKey string `yaml:"openai_key"`
	Model     string `yaml:"model"`
}

// StorageConfig holds the object storage settings
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// WebhookConfig holds the downstream notification settings.
// An empty URL disables delivery; the pipeline still reports success.
type WebhookConfig struct {
	URL        string        `yaml:"url"`
	MaxRetries int           `yaml:"max_retries"`
	BaseDelay  time.Duration `yaml:"base_delay"`
}

// ServerConfig holds the HTTP API server settings
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	Environment  string        `yaml:"environment"`
}

// Config is the explicit configuration object passed into each component
// at construction. No component reads ambient environment state.
type Config struct {
	Speech     SpeechConfig     `yaml:"speech"`
	Translator TranslatorConfig `yaml:"translator"`
	Storage    StorageConfig    `yaml:"storage"`
	Webhook    WebhookConfig    `yaml:"webhook"`
	Server     ServerConfig     `yaml:"server"`
	ScratchDir string           `yaml:"scratch_dir"`
}

// LoadEnv loads environment variables from a .env file if one exists.
// Missing files are not an error; variables may be set system-wide.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// FromEnv builds a Config from environment variables with sensible defaults
func FromEnv() *Config {
	return &Config{
		Speech: SpeechConfig{
			Endpoint:     getEnv("SPEECH_ENDPOINT", ""),
			APIKey:       getEnv("SPEECH_API_KEY", ""),
			PollInterval: getDuration("SPEECH_POLL_INTERVAL", 5*time.Second),
			MaxPolls:     getInt("SPEECH_MAX_POLLS", 0),
		},
		Translator: TranslatorConfig{
			Provider:  getEnv("TRANSLATOR_PROVIDER", "azure"),
			Endpoint:  getEnv("TRANSLATOR_ENDPOINT", "https://api.cognitive.microsofttranslator.com"),
			APIKey:    getEnv("TRANSLATOR_API_KEY", ""),
			Region:    getEnv("TRANSLATOR_REGION", ""),
			OpenAIKey: getEnv("OPENAI_API_KEY", ""),
			Model:     getEnv("TRANSLATOR_MODEL", "gpt-4o-mini"),
		},
		Storage: StorageConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "t2e-transcripts"),
			UseSSL:    getEnv("MINIO_USE_SSL", "") == "true",
		},
		Webhook: WebhookConfig{
			URL:        getEnv("WEBHOOK_URL", ""),
			MaxRetries: getInt("WEBHOOK_MAX_RETRIES", 3),
			BaseDelay:  getDuration("WEBHOOK_BASE_DELAY", time.Second),
		},
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Minute),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			Environment:  getEnv("ENVIRONMENT", "development"),
		},
		ScratchDir: getEnv("SCRATCH_DIR", os.TempDir()),
	}
}

// Validate checks that credentials required by the remote services are present
func (c *Config) Validate() error {
	var missing []string
	if c.Speech.Endpoint == "" {
		missing = append(missing, "SPEECH_ENDPOINT")
	}
	if c.Speech.APIKey == "" {
		missing = append(missing, "SPEECH_API_KEY")
	}
	switch c.Translator.Provider {
	case "azure":
		if c.Translator.APIKey == "" {
			missing = append(missing, "TRANSLATOR_API_KEY")
		}
	case "openai":
		if c.Translator.OpenAIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown translator provider: %s", c.Translator.Provider)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
