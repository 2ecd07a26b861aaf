package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/credor-app/credor/internal/flagx"
	"github.com/credor-app/credor/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "2h"
// or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	NewsEndpoint        string         `json:"news_endpoint"`
	NewsAPIKey          string         `json:"news_api_key"`
	NewsTopic           string         `json:"news_topic"`
	DatabasePath        string         `json:"database_path"`
	HTTPTimeout         timex.Duration `json:"http_timeout"`
	NewsFreshnessWindow timex.Duration `json:"news_freshness_window"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// comes from the -c/-config flags. With no such flag, nothing is loaded.
// Read or unmarshal errors panic; config is resolved once at startup and a
// broken file should stop the program.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.NewsEndpoint != "" {
		cfg.NewsEndpoint = jc.NewsEndpoint
	}
	if jc.NewsAPIKey != "" {
		cfg.NewsAPIKey = jc.NewsAPIKey
	}
	if jc.NewsTopic != "" {
		cfg.NewsTopic = jc.NewsTopic
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = time.Duration(jc.HTTPTimeout.Duration)
	}
	if jc.NewsFreshnessWindow.Duration != 0 {
		cfg.NewsFreshnessWindow = time.Duration(jc.NewsFreshnessWindow.Duration)
	}
}
