// go_video: YouTube/Vimeo embed service.
//
// Serves the CMS-facing HTTP API (metadata, render, analytics, playback) and
// exposes MCP tools: video_resolve, video_render, video_transcript,
// video_describe, video_analytics_summary.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/analytics"
	"github.com/anatolykoptev/go_video/internal/engine/render"
	"github.com/anatolykoptev/go_video/internal/engine/resolve"
	"github.com/anatolykoptev/go_video/internal/httpapi"
	"github.com/anatolykoptev/go_video/internal/videoserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
	apiPort = env.Str("API_PORT", "8894")
)

func main() {
	initEngine()

	sink, summary := initSinks(context.Background())
	resolver := resolve.New(nil)
	renderer := render.New()

	api := httpapi.New(httpapi.Deps{
		Resolver: resolver,
		Renderer: renderer,
		Sink:     sink,
		Summary:  summary,
	})
	go serveAPI(api.Routes())

	slog.Info("starting go_video",
		slog.String("mcp_port", mcpPort),
		slog.String("api_port", apiPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_video",
		Version: version,
	}, nil)

	n := videoserver.RegisterTools(server, videoserver.Deps{
		Resolver: resolver,
		Renderer: renderer,
		Summary:  summary,
	})
	slog.Info("tools registered", slog.Int("count", n))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_video",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		YouTubeAPIKey:         env.Str("YOUTUBE_API_KEY", ""),
		YouTubeAPIKeyFallback: env.Str("YOUTUBE_API_KEY_FALLBACK", ""),
		YouTubeRPS:            env.Float("YOUTUBE_RPS", 5),
		DescriptionMaxChars:   env.Int("DESCRIPTION_MAX_CHARS", 200),
		TranscriptLangs:       env.List("TRANSCRIPT_LANGS", "en"),
		FetchTimeout:          env.Duration("FETCH_TIMEOUT", 10*time.Second),
		CacheMaxEntries:       env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheTTL:              env.Duration("CACHE_TTL", 6*time.Hour),
		RedisURL:              env.Str("REDIS_URL", ""),
		DatabaseURL:           env.Str("DATABASE_URL", ""),
		AnalyticsDBPath:       env.Str("ANALYTICS_DB_PATH", ""),
		GA4MeasurementID:      env.Str("GA4_MEASUREMENT_ID", ""),
		GA4APISecret:          env.Str("GA4_API_SECRET", ""),
		LLMAPIKey:             env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:    env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:            env.Str("LLM_API_BASE", "https://generativelanguage.googleapis.com/v1beta/openai"),
		LLMModel:              env.Str("LLM_MODEL", "gemini-2.5-flash"),
		LLMTemperature:        env.Float("LLM_TEMPERATURE", 0.3),
		LLMMaxTokens:          env.Int("LLM_MAX_TOKENS", 1024),
	}
	c.HTTPClient = &http.Client{
		Timeout: c.FetchTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}

	if c.LLMAPIKey != "" {
		c.LLMClient = llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
			llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
			llm.WithMaxTokens(c.LLMMaxTokens),
			llm.WithTemperature(c.LLMTemperature),
			llm.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
		)
	} else {
		slog.Info("LLM_API_KEY not set, video_describe disabled")
	}

	engine.Init(c)
	engine.InitCache(c.RedisURL, c.CacheTTL, c.CacheMaxEntries)
}

// initSinks builds the analytics fan-out: Postgres when DATABASE_URL is set,
// SQLite otherwise, plus GA4 when credentials are present. The first store
// that opens answers summary queries.
func initSinks(ctx context.Context) (analytics.Sink, analytics.Summarizer) {
	var sinks analytics.MultiSink

	if engine.Cfg.DatabaseURL != "" {
		pg, err := analytics.ConnectPostgres(ctx, engine.Cfg.DatabaseURL)
		if err != nil {
			slog.Warn("analytics postgres init failed, falling back to sqlite", slog.Any("error", err))
		} else {
			sinks = append(sinks, pg)
		}
	}
	if len(sinks) == 0 {
		store, err := analytics.OpenSQLite()
		if err != nil {
			slog.Warn("analytics sqlite init failed, events kept in memory", slog.Any("error", err))
			sinks = append(sinks, &analytics.MemorySink{})
		} else {
			sinks = append(sinks, store)
		}
	}

	if engine.Cfg.GA4MeasurementID != "" && engine.Cfg.GA4APISecret != "" {
		ga4, err := analytics.NewGA4Forwarder(engine.Cfg.GA4MeasurementID, engine.Cfg.GA4APISecret)
		if err != nil {
			slog.Warn("ga4 forwarder init failed", slog.Any("error", err))
		} else {
			sinks = append(sinks, ga4)
			slog.Info("ga4 forwarder enabled", slog.String("measurement_id", engine.Cfg.GA4MeasurementID))
		}
	}
	return sinks, sinks
}

func serveAPI(h http.Handler) {
	srv := &http.Server{
		Addr:              ":" + apiPort,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      90 * time.Second,
	}
	slog.Info("http api listening", slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http api failed", slog.Any("error", err))
	}
}
