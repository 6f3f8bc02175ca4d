package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultDatabaseURL is the published location of the FAA Releasable
// Aircraft Database distribution.
const DefaultDatabaseURL = "https://registry.faa.gov/database/ReleasableAircraft.zip"

// Config holds all tool settings, populated from environment variables.
// Command-line flags override individual values per invocation.
type Config struct {
	DatabaseURL  string
	HTTPTimeout  time.Duration
	LogLevel     string
	LogFormat    string
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	timeout, err := parseTimeout("FAA2ETC_HTTP_TIMEOUT", "10m")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:  envOrDefault("FAA2ETC_DATABASE_URL", DefaultDatabaseURL),
		HTTPTimeout:  timeout,
		LogLevel:     envOrDefault("FAA2ETC_LOG_LEVEL", "info"),
		LogFormat:    envOrDefault("FAA2ETC_LOG_FORMAT", "text"),
		KafkaBrokers: ParseBrokers(envOrDefault("FAA2ETC_KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOrDefault("FAA2ETC_KAFKA_TOPIC", "aircraft-registry"),
	}

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, errors.New("FAA2ETC_DATABASE_URL is required")
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("FAA2ETC_KAFKA_BROKERS is required")
	}

	return cfg, nil
}

// envOrDefault returns the variable's value, or fallback when unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ParseBrokers splits a comma-separated broker list, dropping empty parts.
func ParseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseTimeout(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return d, nil
}
