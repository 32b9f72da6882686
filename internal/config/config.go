package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime settings for the watchtower service, loaded
// from environment variables.
type Config struct {
	HTTPAddr    string
	DatabaseURL string

	KafkaBrokers []string
	KafkaTopic   string

	JWTSecret string

	// CheckInterval is the cadence of the background checker tick; each
	// tick probes every enabled monitor whose own interval has elapsed.
	CheckInterval time.Duration

	ServiceName       string
	CollectorEndpoint string
}

// Load reads configuration from the environment.
func Load() Config {
	return Config{
		HTTPAddr:          getEnv("WATCHTOWER_HTTP_ADDR", ":8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		KafkaBrokers:      strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaTopic:        getEnv("KAFKA_NOTIF_TOPIC", "watchtower.notifications"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		CheckInterval:     getEnvDuration("CHECK_INTERVAL", time.Minute),
		ServiceName:       getEnv("OTEL_SERVICE_NAME", "watchtower"),
		CollectorEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
