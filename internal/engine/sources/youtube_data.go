package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/video"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// ytDataAPIBase is a var so tests can point it at a stub server.
var ytDataAPIBase = "https://www.googleapis.com/youtube/v3"

// ytDescriptionWords matches the editor-facing summary length.
const ytDescriptionWords = 30

// errNoItems means the Data API answered but knows no such video.
var errNoItems = errors.New("youtube data API: no items")

// errQuota marks key-level failures worth retrying with the fallback key.
var errQuota = errors.New("youtube data API: quota or key rejected")

var (
	limiterMu  sync.Mutex
	limiter    *rate.Limiter
	limiterRPS float64
)

// dataAPILimiter returns the shared limiter for the configured rate.
// A non-positive rate disables limiting.
func dataAPILimiter() *rate.Limiter {
	limiterMu.Lock()
	defer limiterMu.Unlock()
	rps := engine.Cfg.YouTubeRPS
	if limiter == nil || rps != limiterRPS {
		limiterRPS = rps
		if rps <= 0 {
			limiter = rate.NewLimiter(rate.Inf, 1)
		} else {
			limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
	return limiter
}

// fetchYouTubeDataAPI looks a video up via the Data API v3.
// Automatically falls back to the secondary key on quota errors (403).
func fetchYouTubeDataAPI(ctx context.Context, videoID string) (video.Descriptor, error) {
	keys := []string{engine.Cfg.YouTubeAPIKey}
	if engine.Cfg.YouTubeAPIKeyFallback != "" {
		keys = append(keys, engine.Cfg.YouTubeAPIKeyFallback)
	}
	var lastErr error
	for _, key := range keys {
		d, err := doYouTubeDataLookup(ctx, videoID, key)
		if err == nil {
			return d, nil
		}
		lastErr = err
		if !errors.Is(err, errQuota) {
			break
		}
		slog.Debug("youtube data API key failed, trying fallback", slog.Any("err", err))
	}
	return video.Descriptor{}, lastErr
}

func doYouTubeDataLookup(ctx context.Context, videoID, apiKey string) (video.Descriptor, error) {
	if err := dataAPILimiter().Wait(ctx); err != nil {
		return video.Descriptor{}, fmt.Errorf("youtube data API: rate limit: %w", err)
	}
	engine.IncrYouTubeAPI()

	params := url.Values{}
	params.Set("id", videoID)
	params.Set("part", "snippet,contentDetails")
	params.Set("key", apiKey)
	apiURL := ytDataAPIBase + "/videos?" + params.Encode()

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.HTTPClient().Do(req)
	})
	if err != nil {
		return video.Descriptor{}, fmt.Errorf("youtube data API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return video.Descriptor{}, fmt.Errorf("read youtube data API: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusBadRequest:
		return video.Descriptor{}, fmt.Errorf("%w: %d %s", errQuota, resp.StatusCode,
			gjson.GetBytes(body, "error.message").String())
	case resp.StatusCode != http.StatusOK:
		return video.Descriptor{}, fmt.Errorf("youtube data API %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return video.Descriptor{}, errors.New("youtube data API: malformed JSON")
	}
	return parseYouTubeVideoItem(body, videoID)
}

// parseYouTubeVideoItem extracts metadata from a videos.list response body.
func parseYouTubeVideoItem(body []byte, videoID string) (video.Descriptor, error) {
	item := gjson.GetBytes(body, "items.0")
	if !item.Exists() {
		return video.Descriptor{}, errNoItems
	}
	snippet := item.Get("snippet")

	desc := engine.TrimWords(snippet.Get("description").String(), ytDescriptionWords)
	if n := engine.Cfg.DescriptionMaxChars; n > 0 {
		desc = engine.TruncateAtWord(desc, n)
	}

	return video.Descriptor{
		Title:        snippet.Get("title").String(),
		Description:  desc,
		Duration:     item.Get("contentDetails.duration").String(),
		UploadDate:   snippet.Get("publishedAt").String(),
		ThumbnailURL: bestYouTubeThumbnail(snippet.Get("thumbnails"), videoID),
	}, nil
}

// bestYouTubeThumbnail prefers the highest resolution the API lists.
func bestYouTubeThumbnail(thumbs gjson.Result, videoID string) string {
	for _, size := range []string{"maxres", "high", "medium", "default"} {
		if u := thumbs.Get(size + ".url").String(); u != "" {
			return u
		}
	}
	return video.DefaultYouTubeThumbnail(videoID)
}
