package config

import (
	"os"
	"strconv"
	"time"

	"github.com/jamiesoo123/ENG40011-EndoMML/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	Prediction PredictionConfig
	Store      StoreConfig
	Model      ModelConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
}

// CatalogConfig locates the question catalog document. URL wins when both
// are set; File defaults to the bundled document.
type CatalogConfig struct {
	URL  string
	File string
}

// PredictionConfig holds the prediction service endpoints
type PredictionConfig struct {
	PredictURL string
	ExplainURL string
	Timeout    time.Duration
}

// StoreConfig holds session store settings. An empty RedisURI selects the
// in-process store.
type StoreConfig struct {
	RedisURI   string
	SessionTTL time.Duration
}

// ModelConfig locates the coefficients document for the built-in scorer
type ModelConfig struct {
	File string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("SERVER_PORT", "8000"),
			APIPort: getEnvOrDefault("API_PORT", "8001"),
		},
		Catalog: CatalogConfig{
			URL:  os.Getenv("CATALOG_URL"),
			File: getEnvOrDefault("CATALOG_FILE", "data/questions.json"),
		},
		Prediction: PredictionConfig{
			PredictURL: getEnvOrDefault("PREDICT_URL", "http://localhost:8001/predict"),
			ExplainURL: getEnvOrDefault("EXPLAIN_URL", "http://localhost:8001/explain"),
			Timeout:    time.Duration(getEnvIntOrDefault("PREDICT_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Store: StoreConfig{
			RedisURI:   os.Getenv("REDIS_URI"),
			SessionTTL: time.Duration(getEnvIntOrDefault("SESSION_TTL_MINUTES", 60)) * time.Minute,
		},
		Model: ModelConfig{
			File: getEnvOrDefault("MODEL_FILE", "data/model.json"),
		},
	}

	if cfg.Catalog.URL == "" && cfg.Catalog.File == "" {
		return nil, errors.ConfigInvalid("CATALOG_URL or CATALOG_FILE is required")
	}
	if cfg.Prediction.PredictURL == "" {
		return nil, errors.ConfigInvalid("PREDICT_URL is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
