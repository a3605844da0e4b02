package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the relay service
type Config struct {
	Telegram TelegramConfig
	HTTP     HTTPConfig
	Media    MediaConfig
	Relay    RelayConfig
	Logging  LoggingConfig
	Service  ServiceConfig
}

// TelegramConfig holds Telegram Bot API configuration
type TelegramConfig struct {
	BotToken string
	// APIURL overrides the Bot API server, empty means api.telegram.org
	APIURL         string
	WebhookBaseURL string
	WebhookSecret  string
}

// HTTPConfig holds inbound HTTP server configuration
type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// MediaConfig holds media provider configuration
type MediaConfig struct {
	ShortLinkPrefix string
	MirrorHosts     []string
	UserAgent       string
	MinPayloadBytes int
	MaxPayloadBytes int64
	ResolveTimeout  time.Duration
	DownloadTimeout time.Duration
}

// RelayConfig holds pipeline configuration
type RelayConfig struct {
	PipelineTimeout time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config   *Config
	Telegram *TelegramConfig
	HTTP     *HTTPConfig
	Media    *MediaConfig
	Relay    *RelayConfig
	Logging  *LoggingConfig
	Service  *ServiceConfig
}

// Default browser-like agent, some mirrors refuse non-browser clients
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return cfg.Split(), nil
}

// Split returns the fx.Out view of an already loaded config
func (c *Config) Split() Result {
	return Result{
		Config:   c,
		Telegram: &c.Telegram,
		HTTP:     &c.HTTP,
		Media:    &c.Media,
		Relay:    &c.Relay,
		Logging:  &c.Logging,
		Service:  &c.Service,
	}
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	readTimeout, err := getDuration("HTTP_READ_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getDuration("HTTP_WRITE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	idleTimeout, err := getDuration("HTTP_IDLE_TIMEOUT", "120s")
	if err != nil {
		return nil, err
	}
	resolveTimeout, err := getDuration("MEDIA_RESOLVE_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	downloadTimeout, err := getDuration("MEDIA_DOWNLOAD_TIMEOUT", "120s")
	if err != nil {
		return nil, err
	}
	pipelineTimeout, err := getDuration("RELAY_PIPELINE_TIMEOUT", "5m")
	if err != nil {
		return nil, err
	}

	minPayload, err := strconv.Atoi(getEnv("MEDIA_MIN_PAYLOAD_BYTES", "9"))
	if err != nil {
		return nil, fmt.Errorf("invalid MEDIA_MIN_PAYLOAD_BYTES: %w", err)
	}
	maxPayload, err := strconv.ParseInt(getEnv("MEDIA_MAX_PAYLOAD_BYTES", "52428800"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MEDIA_MAX_PAYLOAD_BYTES: %w", err)
	}

	cfg := &Config{
		Telegram: TelegramConfig{
			BotToken:       getEnv("TELEGRAM_BOT_TOKEN", ""),
			APIURL:         getEnv("TELEGRAM_API_URL", ""),
			WebhookBaseURL: strings.TrimRight(getEnv("TELEGRAM_WEBHOOK_BASE_URL", ""), "/"),
			WebhookSecret:  getEnv("TELEGRAM_WEBHOOK_SECRET", ""),
		},
		HTTP: HTTPConfig{
			Port:         getEnv("SERVICE_PORT", "8080"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		Media: MediaConfig{
			ShortLinkPrefix: getEnv("MEDIA_SHORTLINK_PREFIX", "https://rj.app/"),
			MirrorHosts:     splitList(getEnv("MEDIA_MIRROR_HOSTS", "https://host2.rj-mw1.com,https://host1.rj-mw1.com")),
			UserAgent:       getEnv("MEDIA_USER_AGENT", DefaultUserAgent),
			MinPayloadBytes: minPayload,
			MaxPayloadBytes: maxPayload,
			ResolveTimeout:  resolveTimeout,
			DownloadTimeout: downloadTimeout,
		},
		Relay: RelayConfig{
			PipelineTimeout: pipelineTimeout,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Service: ServiceConfig{
			Name: getEnv("SERVICE_NAME", "media-relay"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if len(c.Media.MirrorHosts) == 0 {
		return fmt.Errorf("MEDIA_MIRROR_HOSTS is required")
	}

	if c.Media.MinPayloadBytes < 0 {
		return fmt.Errorf("MEDIA_MIN_PAYLOAD_BYTES must not be negative")
	}

	if c.Media.MaxPayloadBytes <= int64(c.Media.MinPayloadBytes) {
		return fmt.Errorf("MEDIA_MAX_PAYLOAD_BYTES must be greater than MEDIA_MIN_PAYLOAD_BYTES")
	}

	return nil
}

// WebhookURL returns the public webhook URL registered with Telegram, empty if not configured
func (c *TelegramConfig) WebhookURL() string {
	if c.WebhookBaseURL == "" {
		return ""
	}
	return c.WebhookBaseURL + "/webhook/" + c.BotToken
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimRight(strings.TrimSpace(item), "/")
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
