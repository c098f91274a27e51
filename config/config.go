package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Recipe dataset source: a local file, or an S3 object when the
	// bucket is set.
	DatasetPath     string
	DatasetS3Bucket string
	DatasetS3Key    string

	// Sqlite database for favorites and ratings
	DBPath string

	// Redis configuration (optional suggestion cache)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Generation collaborator configuration. An empty API key leaves
	// the collaborator unconfigured; the dataset pipeline serves alone.
	LLMAPIKey      string
	LLMAPIURL      string
	LLMTextModel   string
	LLMVisionModel string
}

// Load creates a Config from environment variables. Secrets accept a
// *_FILE variant pointing at a file, for Docker secrets.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DatasetPath:     getEnv("DATASET_PATH", "data/recipes.json"),
		DatasetS3Bucket: os.Getenv("DATASET_S3_BUCKET"),
		DatasetS3Key:    getEnv("DATASET_S3_KEY", "recipes.json"),

		DBPath: getEnv("DB_PATH", "pantrypilot.db"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getSecret("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),

		LLMAPIKey:      getSecret("LLM_API_KEY"),
		LLMAPIURL:      getEnv("LLM_API_URL", "https://generativelanguage.googleapis.com/v1beta/openai/chat/completions"),
		LLMTextModel:   getEnv("LLM_TEXT_MODEL", "gemini-1.5-flash"),
		LLMVisionModel: getEnv("LLM_VISION_MODEL", "gemini-1.5-flash"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// DatasetFromS3 reports whether the dataset is fetched from S3 instead
// of the local filesystem.
func (c *Config) DatasetFromS3() bool {
	return c.DatasetS3Bucket != ""
}

// getEnv returns the environment variable or a default.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getSecret reads KEY, falling back to the contents of the file named
// by KEY_FILE.
func getSecret(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}
