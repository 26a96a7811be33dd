package config

import (
	"os"
	"strings"
	"time"
)

// Config captures every knob the service needs, resolved once at startup and
// passed by reference into the components that use it. No ambient lookups.
type Config struct {
	Addr string

	// PostgresDSN selects the persistent store. Empty means in-memory stores,
	// which is what local development and most tests use.
	PostgresDSN string

	// RedisURL enables the Redis-backed webhook replay guard. Empty falls back
	// to the in-memory guard.
	RedisURL string

	Kafka    KafkaConfig
	Provider ProviderConfig
	Partner  PartnerConfig

	// JWTSigningKey protects the admin lead routes.
	JWTSigningKey string
}

// KafkaConfig configures the status-event publisher. Empty brokers disables it.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ProviderConfig holds the verification-provider API credentials and the level
// names accepted by the webhook router.
type ProviderConfig struct {
	AppToken     string
	SecretKey    string
	BaseURL      string
	LevelName    string
	LevelNameKYB string
	Timeout      time.Duration
}

// LevelFor maps a lead type to the provider level its applicants are created
// at. Anything other than "company" gets the individual KYC level.
func (c ProviderConfig) LevelFor(leadType string) string {
	if leadType == "company" {
		return c.LevelNameKYB
	}
	return c.LevelName
}

// AcceptedLevels returns the level names the webhook router processes.
func (c ProviderConfig) AcceptedLevels() []string {
	return []string{c.LevelName, c.LevelNameKYB}
}

// PartnerConfig holds the downstream partner API settings.
type PartnerConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:        envOr("KYCBRIDGE_ADDR", ":8080"),
		PostgresDSN: os.Getenv("KYCBRIDGE_POSTGRES_DSN"),
		RedisURL:    os.Getenv("KYCBRIDGE_REDIS_URL"),
		Kafka: KafkaConfig{
			Topic: envOr("KYCBRIDGE_KAFKA_TOPIC", "kycbridge.lead-events"),
		},
		Provider: ProviderConfig{
			AppToken:     os.Getenv("SUMSUB_APP_TOKEN"),
			SecretKey:    os.Getenv("SUMSUB_SECRET_KEY"),
			BaseURL:      envOr("SUMSUB_BASE_URL", "https://api.sumsub.com"),
			LevelName:    envOr("SUMSUB_LEVEL_NAME", "KYC-PEIBO"),
			LevelNameKYB: envOr("SUMSUB_LEVEL_NAME_KYB", "KYB-PEIBO"),
			Timeout:      15 * time.Second,
		},
		Partner: PartnerConfig{
			BaseURL: envOr("PEIBO_BASE_URL", "https://api.peibo.mx/v1"),
			APIKey:  os.Getenv("PEIBO_API_KEY"),
			Timeout: 30 * time.Second,
		},
		JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
	}
	if brokers := os.Getenv("KYCBRIDGE_KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
