package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the application configuration loaded from environment
// variables. A .env file is honored when present.
type Config struct {
	// Logging
	LogLevel logrus.Level

	// Pipeline
	Language          string
	UseMockRecognizer bool
	ModelDir          string
	ChunkDuration     time.Duration

	// HTTP service layer
	HTTPPort int
	APIKey   string

	// External collaborators
	OpenAIAPIKey string

	// Messaging
	AMQPUrl       string
	AMQPQueueName string
}

// Load reads configuration from the environment.
func Load(logger *logrus.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using environment as-is")
	}

	cfg := &Config{
		LogLevel:          parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Language:          getEnv("LANGUAGE", "en"),
		UseMockRecognizer: getEnv("USE_MOCK_ASR", "false") == "true",
		ModelDir:          getEnv("MODEL_DIR", "models"),
		ChunkDuration:     getEnvDuration("CHUNK_DURATION", time.Second),
		HTTPPort:          getEnvInt("HTTP_PORT", 8080),
		APIKey:            os.Getenv("API_KEY"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		AMQPUrl:           os.Getenv("AMQP_URL"),
		AMQPQueueName:     getEnv("AMQP_QUEUE_NAME", "honeypot_risk_events"),
	}

	logger.WithFields(logrus.Fields{
		"language":  cfg.Language,
		"mock_asr":  cfg.UseMockRecognizer,
		"http_port": cfg.HTTPPort,
	}).Info("Configuration loaded")
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseLogLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
