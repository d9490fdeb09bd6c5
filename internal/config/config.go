// README: Config loader with env defaults for HTTP, storefront, completion, maps and forwarding settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type StoreConfig struct {
	Name              string
	OriginAddress     string
	Timezone          string
	OpenDays          string
	OpenHour          int
	CloseHour         int
	MaxDeliveryMeters int
}

type Config struct {
	HTTP struct {
		Addr           string
		RequestTimeout time.Duration
	}
	Log struct {
		Level string
	}
	Store StoreConfig
	Maps  struct {
		APIKey   string
		Language string
	}
	AI struct {
		Provider          string
		OpenAIKey         string
		OpenAIModel       string
		OpenAIBaseURL     string
		GeminiKey         string
		GeminiModel       string
		SubstringFallback bool
	}
	Forward struct {
		WebhookURL string
		AMQPURL    string
		Timeout    time.Duration
	}
	Tracing struct {
		Endpoint string
	}
}

// Load reads the process environment, after merging an optional .env file
// from the working directory. Variables already set take precedence.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("HTTP_ADDR", ":"+envOrDefault("PORT", "3000"))
	cfg.HTTP.RequestTimeout = envOrDefaultDuration("REQUEST_TIMEOUT", 30*time.Second)
	cfg.Log.Level = envOrDefault("LOG_LEVEL", "info")

	cfg.Store.Name = envOrDefault("STORE_NAME", "Giulia Pizzaria")
	cfg.Store.OriginAddress = os.Getenv("STORE_ORIGIN_ADDRESS")
	cfg.Store.Timezone = envOrDefault("STORE_TIMEZONE", "America/Sao_Paulo")
	cfg.Store.OpenDays = envOrDefault("STORE_OPEN_DAYS", "tue-sun")
	cfg.Store.OpenHour = envOrDefaultInt("STORE_OPEN_HOUR", 17)
	cfg.Store.CloseHour = envOrDefaultInt("STORE_CLOSE_HOUR", 24)
	cfg.Store.MaxDeliveryMeters = envOrDefaultInt("DELIVERY_MAX_METERS", 10000)

	cfg.Maps.APIKey = os.Getenv("MAPS_API_KEY")
	cfg.Maps.Language = envOrDefault("MAPS_LANGUAGE", "pt-BR")

	cfg.AI.Provider = strings.ToLower(envOrDefault("COMPLETION_PROVIDER", "openai"))
	cfg.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AI.OpenAIModel = envOrDefault("OPENAI_MODEL", "gpt-4o")
	cfg.AI.OpenAIBaseURL = envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.GeminiModel = envOrDefault("GEMINI_MODEL", "gemini-2.0-flash")
	cfg.AI.SubstringFallback = envOrDefaultBool("CLASSIFIER_SUBSTRING_FALLBACK", true)

	cfg.Forward.WebhookURL = os.Getenv("MAKE_WEBHOOK_URL")
	cfg.Forward.AMQPURL = os.Getenv("AMQP_URL")
	cfg.Forward.Timeout = envOrDefaultDuration("OUTBOUND_TIMEOUT", 15*time.Second)

	cfg.Tracing.Endpoint = os.Getenv("TRACING_ENDPOINT")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every missing or inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Store.OriginAddress == "" {
		errs = append(errs, errors.New("STORE_ORIGIN_ADDRESS is required"))
	}
	if c.Maps.APIKey == "" {
		errs = append(errs, errors.New("MAPS_API_KEY is required"))
	}
	if c.Forward.WebhookURL == "" {
		errs = append(errs, errors.New("MAKE_WEBHOOK_URL is required"))
	}
	switch c.AI.Provider {
	case "openai":
		if c.AI.OpenAIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required"))
		}
	case "gemini":
		if c.AI.GeminiKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("COMPLETION_PROVIDER %q is not supported", c.AI.Provider))
	}
	if c.Store.MaxDeliveryMeters <= 0 {
		errs = append(errs, errors.New("DELIVERY_MAX_METERS must be positive"))
	}
	return errors.Join(errs...)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// envOrDefaultDuration accepts Go durations ("20s") or plain seconds ("20").
func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
