package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go_video/internal/engine"
)

// YouTube caption fetching.
// Primary:  watch page <script> ytInitialPlayerResponse → captionTracks → timedtext XML
// Fallback: ANDROID Innertube /player → captionTracks → timedtext XML

// ErrNoCaptions means the video exposes no usable caption track.
var ErrNoCaptions = errors.New("no usable caption track")

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// FetchYouTubeCaptions returns timed caption lines for a YouTube video,
// choosing a track by the language preferences in langs.
func FetchYouTubeCaptions(ctx context.Context, videoID string, langs []string) ([]Caption, error) {
	engine.IncrTranscript()
	if len(langs) == 0 {
		langs = engine.Cfg.TranscriptLangs
	}

	key := engine.CacheKey("captions", videoID, strings.Join(langs, ","))
	if cached, ok := engine.CacheLoadJSON[[]Caption](ctx, key); ok {
		return cached, nil
	}

	lines, err := fetchCaptionsViaPageScrape(ctx, videoID, langs)
	if err != nil {
		slog.Warn("youtube: page scrape failed, trying player",
			slog.String("id", videoID), slog.Any("err", err))
		lines, err = fetchCaptionsViaPlayer(ctx, videoID, langs)
	}
	if err != nil {
		return nil, err
	}
	engine.CacheStoreJSON(ctx, key, lines)
	return lines, nil
}

// fetchCaptionsViaPageScrape loads the watch page and reads the caption
// track list out of the inline ytInitialPlayerResponse script.
func fetchCaptionsViaPageScrape(ctx context.Context, videoID string, langs []string) ([]Caption, error) {
	watchURL := ytWatchURL + "?v=" + url.QueryEscape(videoID)

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.RandomUserAgent())
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		return engine.HTTPClient().Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page: HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	var jsonData []byte
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, ytInitialPlayerResponseMarker)
		if idx < 0 {
			return true
		}
		jsonData = extractJSON([]byte(text[idx+len(ytInitialPlayerResponseMarker):]))
		return jsonData == nil
	})
	if jsonData == nil {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}

	var playerResp innertubePlayerResp
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return captionsFromPlayer(ctx, playerResp, langs)
}

// fetchCaptionsViaPlayer uses the ANDROID Innertube /player endpoint.
// Works from non-blocked (residential/cloud) IP addresses.
func fetchCaptionsViaPlayer(ctx context.Context, videoID string, langs []string) ([]Caption, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, ytInnertubeURL+"?prettyPrint=false", bytes.NewReader(reqBody))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", ytAndroidUA)
		req.Header.Set("X-Youtube-Client-Name", "3")
		req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)
		return engine.HTTPClient().Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()

	var playerResp innertubePlayerResp
	if err := json.NewDecoder(io.LimitReader(resp.Body, 3*1024*1024)).Decode(&playerResp); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return captionsFromPlayer(ctx, playerResp, langs)
}

func captionsFromPlayer(ctx context.Context, playerResp innertubePlayerResp, langs []string) ([]Caption, error) {
	if playerResp.Captions == nil {
		if playerResp.PlayabilityStatus != nil && playerResp.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrNoCaptions, playerResp.PlayabilityStatus.Reason)
		}
		return nil, ErrNoCaptions
	}
	track, ok := pickBestTrack(playerResp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, langs)
	if !ok {
		return nil, ErrNoCaptions
	}
	return fetchTimedText(ctx, track.BaseURL)
}

// fetchTimedText fetches and parses a YouTube timedtext XML caption URL.
func fetchTimedText(ctx context.Context, baseURL string) ([]Caption, error) {
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		return engine.HTTPClient().Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch timedtext: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, err
	}
	lines, err := parseTimedText(body)
	if err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrNoCaptions
	}
	return lines, nil
}
