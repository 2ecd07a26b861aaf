package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first when present, so
// local setups can keep the news API key out of shell history.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("CREDOR_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("CREDOR_NEWS_ENDPOINT"); v != "" {
		cfg.NewsEndpoint = v
	}
	if v := os.Getenv("CREDOR_NEWS_KEY"); v != "" {
		cfg.NewsAPIKey = v
	}
	if v := os.Getenv("CREDOR_NEWS_TOPIC"); v != "" {
		cfg.NewsTopic = v
	}
	if v := os.Getenv("CREDOR_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
}
