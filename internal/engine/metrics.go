package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	ResolveRequests      atomic.Int64
	RenderRequests       atomic.Int64
	YouTubeAPIRequests   atomic.Int64
	YouTubeOEmbedRequest atomic.Int64
	VimeoOEmbedRequests  atomic.Int64
	FetchErrors          atomic.Int64
	TranscriptRequests   atomic.Int64
	AnalyticsEvents      atomic.Int64
	AnalyticsSinkErrors  atomic.Int64
	LLMCalls             atomic.Int64
	LLMErrors            atomic.Int64
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"resolve_requests":        metrics.ResolveRequests.Load(),
		"render_requests":         metrics.RenderRequests.Load(),
		"youtube_api_requests":    metrics.YouTubeAPIRequests.Load(),
		"youtube_oembed_requests": metrics.YouTubeOEmbedRequest.Load(),
		"vimeo_oembed_requests":   metrics.VimeoOEmbedRequests.Load(),
		"fetch_errors":            metrics.FetchErrors.Load(),
		"transcript_requests":     metrics.TranscriptRequests.Load(),
		"analytics_events":        metrics.AnalyticsEvents.Load(),
		"analytics_sink_errors":   metrics.AnalyticsSinkErrors.Load(),
		"llm_calls":               metrics.LLMCalls.Load(),
		"llm_errors":              metrics.LLMErrors.Load(),
		"cache_hits":              hits,
		"cache_misses":            misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"resolve_requests", "render_requests",
		"youtube_api_requests", "youtube_oembed_requests", "vimeo_oembed_requests",
		"fetch_errors", "transcript_requests",
		"analytics_events", "analytics_sink_errors",
		"llm_calls", "llm_errors",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sub-packages.
func IncrResolve()             { metrics.ResolveRequests.Add(1) }
func IncrRender()              { metrics.RenderRequests.Add(1) }
func IncrYouTubeAPI()          { metrics.YouTubeAPIRequests.Add(1) }
func IncrYouTubeOEmbed()       { metrics.YouTubeOEmbedRequest.Add(1) }
func IncrVimeoOEmbed()         { metrics.VimeoOEmbedRequests.Add(1) }
func IncrFetchErrors()         { metrics.FetchErrors.Add(1) }
func IncrTranscript()          { metrics.TranscriptRequests.Add(1) }
func IncrAnalyticsEvent()      { metrics.AnalyticsEvents.Add(1) }
func IncrAnalyticsSinkErrors() { metrics.AnalyticsSinkErrors.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
