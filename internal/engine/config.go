package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey         string
	YouTubeAPIKeyFallback string
	YouTubeRPS            float64 // Data API requests per second; 0 = unlimited
	DescriptionMaxChars   int     // fetched descriptions are cut at a word boundary
	TranscriptLangs       []string
	FetchTimeout          time.Duration
	CacheMaxEntries       int
	CacheTTL              time.Duration
	RedisURL              string
	DatabaseURL           string // Postgres analytics store; empty = SQLite
	AnalyticsDBPath       string // SQLite analytics file; empty = $HOME/.go_video/analytics.db
	GA4MeasurementID      string
	GA4APISecret          string
	LLMAPIKey             string
	LLMAPIKeyFallbacks    []string
	LLMAPIBase            string
	LLMModel              string
	LLMTemperature        float64
	LLMMaxTokens          int
	HTTPClient            *http.Client
	LLMClient             *llm.Client // nil = video_describe disabled
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources, analytics).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.HTTPClient == nil {
		timeout := c.FetchTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		c.HTTPClient = &http.Client{Timeout: timeout}
	}
	if c.DescriptionMaxChars <= 0 {
		c.DescriptionMaxChars = 200
	}
	cfg = c
	Cfg = &cfg
}

// HTTPClient returns the configured client, falling back to a default one
// when Init has not been called (tests, library use).
func HTTPClient() *http.Client {
	if cfg.HTTPClient != nil {
		return cfg.HTTPClient
	}
	return http.DefaultClient
}
