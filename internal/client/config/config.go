// Package config handles configuration for the Credor client, including
// defaults, environment overlay, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the Credor client.
//
// Fields:
//   - APIBaseURL: base URL of the Credor backend.
//   - NewsEndpoint / NewsAPIKey / NewsTopic: external news provider settings.
//   - DatabasePath: SQLite file for the local key-value store.
//   - HTTPTimeout: per-request timeout for backend calls.
//   - NewsFreshnessWindow: how long cached news stays fresh.
type Config struct {
	APIBaseURL          string
	NewsEndpoint        string
	NewsAPIKey          string
	NewsTopic           string
	DatabasePath        string
	HTTPTimeout         time.Duration
	NewsFreshnessWindow time.Duration
}

// LoadDefaults populates c with sensible defaults. The news API key has no
// default; without one the feed stays on whatever cache exists.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.NewsEndpoint = "https://newsapi.org/v2/everything"
	c.NewsTopic = "cybersecurity"
	c.DatabasePath = "credor.db"
	c.HTTPTimeout = 15 * time.Second
	c.NewsFreshnessWindow = 2 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if present), and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
