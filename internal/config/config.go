package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures runtime configuration for the performance service.
type Config struct {
	HTTPAddress    string
	MetricsAddress string
	HTTPTimeout    time.Duration
	JWTSecret      string
	JWTIssuer      string

	KafkaBrokers   []string
	ConsumerGroup  string
	ConsumerTopics []string
	ResultsTopic   string

	// Threshold speeds in m/s seeding the zone configuration; 0 leaves the
	// discipline unconfigured.
	SwimThresholdSpeed float64
	RunThresholdSpeed  float64
	BikeThresholdSpeed float64
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		HTTPAddress:        getEnv("HTTP_ADDRESS", ":8095"),
		MetricsAddress:     getEnv("METRICS_ADDRESS", ":9196"),
		HTTPTimeout:        getDurationEnv("HTTP_TIMEOUT", 5*time.Second),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:          getEnv("JWT_ISSUER", "i5e.identity"),
		KafkaBrokers:       splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092")),
		ConsumerGroup:      getEnv("CONSUMER_GROUP_ID", "performance-consumer"),
		ConsumerTopics:     splitAndTrim(getEnv("CONSUMER_TOPICS", "activity_samples")),
		ResultsTopic:       getEnv("RESULTS_TOPIC", "performance_metrics"),
		SwimThresholdSpeed: getFloatEnv("SWIM_THRESHOLD_SPEED", 0),
		RunThresholdSpeed:  getFloatEnv("RUN_THRESHOLD_SPEED", 0),
		BikeThresholdSpeed: getFloatEnv("BIKE_THRESHOLD_SPEED", 0),
	}
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
