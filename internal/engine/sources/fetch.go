package sources

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/video"
)

// Fetch retrieves provider metadata for one video. The result always carries
// the provider, id and embed URL; metadata fields are empty when the provider
// could not be reached. The error is diagnostic only and callers may ignore it.
// Lookups that produce a title are cached in the engine cache.
func Fetch(ctx context.Context, p video.Provider, videoID string) (video.Descriptor, error) {
	base := video.Descriptor{
		Provider: p,
		VideoID:  videoID,
		EmbedURL: video.EmbedURL(p, videoID, false),
	}
	if p == video.ProviderNone || videoID == "" {
		return video.Descriptor{}, fmt.Errorf("fetch: %w", video.ErrInvalidURL)
	}

	key := engine.CacheKey("meta", string(p), videoID)
	if cached, ok := engine.CacheLoadJSON[video.Descriptor](ctx, key); ok {
		return withIdentity(cached, base), nil
	}

	var (
		meta video.Descriptor
		err  error
	)
	switch p {
	case video.ProviderYouTube:
		meta, err = fetchYouTube(ctx, videoID)
	case video.ProviderVimeo:
		meta, err = fetchVimeoOEmbed(ctx, videoID)
	default:
		return base, fmt.Errorf("fetch: unsupported provider %q", p)
	}
	if err != nil {
		engine.IncrFetchErrors()
		slog.Warn("sources: metadata fetch degraded",
			slog.String("provider", string(p)), slog.String("id", videoID), slog.Any("error", err))
		return withIdentity(meta, base), err
	}

	out := withIdentity(meta, base)
	if out.Title != "" {
		engine.CacheStoreJSON(ctx, key, out)
	}
	return out, nil
}

// fetchYouTube prefers the Data API when a key is configured and falls back
// to oEmbed when the key path fails or the API has no such video.
func fetchYouTube(ctx context.Context, videoID string) (video.Descriptor, error) {
	if engine.Cfg.YouTubeAPIKey != "" {
		d, err := fetchYouTubeDataAPI(ctx, videoID)
		if err == nil {
			return d, nil
		}
		slog.Warn("sources: youtube data API failed, using oembed",
			slog.String("id", videoID), slog.Any("error", err))
	}
	return fetchYouTubeOEmbed(ctx, videoID)
}

func withIdentity(meta, base video.Descriptor) video.Descriptor {
	meta.Provider = base.Provider
	meta.VideoID = base.VideoID
	meta.EmbedURL = base.EmbedURL
	return meta
}
