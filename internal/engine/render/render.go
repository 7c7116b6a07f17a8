// Package render produces the server-side embed fragment: schema.org
// VideoObject microdata, the click-to-play thumbnail, optional lightbox or
// AMP variants and the collapsible transcript.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/resolve"
	"github.com/anatolykoptev/go_video/internal/engine/sources"
	"github.com/anatolykoptev/go_video/internal/engine/transcript"
	"github.com/anatolykoptev/go_video/internal/engine/video"
)

// Renderer renders embed fragments. It is safe for concurrent use.
type Renderer struct {
	fetch    resolve.FetchFunc
	captions transcript.CaptionFetcher
	newID    func() string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFetch replaces the metadata fetcher.
func WithFetch(f resolve.FetchFunc) Option { return func(r *Renderer) { r.fetch = f } }

// WithCaptions replaces the caption fetcher used for auto transcripts.
func WithCaptions(f transcript.CaptionFetcher) Option {
	return func(r *Renderer) { r.captions = f }
}

// WithIDFunc replaces the wrapper id generator.
func WithIDFunc(f func() string) Option { return func(r *Renderer) { r.newID = f } }

// New returns a Renderer backed by sources.Fetch.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		fetch:    sources.Fetch,
		captions: sources.FetchYouTubeCaptions,
		newID:    func() string { return "ekwa-video-" + uuid.NewString() },
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

type view struct {
	ID            string
	Classes       string
	D             video.Descriptor
	ThumbURL      string
	ThumbAlt      string
	DurationLabel string
	ShowTitle     bool
	ShowDesc      bool
	Autoplay      bool
	Lightbox      bool
	LightboxURL   string
	AMP           bool
	IsYouTube     bool
	Transcript    template.HTML
}

// Describe returns the descriptor Render would use for req: overrides,
// then URL parsing for a missing provider/id, then provider metadata when
// the title or thumbnail is still missing.
func (r *Renderer) Describe(ctx context.Context, req Request) video.Descriptor {
	d := req.Descriptor
	d.Provider = video.ParseProvider(string(d.Provider))
	if !d.HasVideo() {
		p := video.Parse(req.VideoURL)
		d.Provider, d.VideoID = p.Provider, p.VideoID
	}
	if !d.HasVideo() {
		return video.Descriptor{}
	}
	if d.EmbedURL == "" {
		d.EmbedURL = video.EmbedURL(d.Provider, d.VideoID, false)
	}
	if d.Title == "" || d.ThumbnailURL == "" {
		fetched, err := r.fetch(ctx, d.Provider, d.VideoID)
		if err != nil {
			slog.Debug("render: metadata incomplete", slog.String("video_id", d.VideoID), slog.Any("error", err))
		}
		d = video.Merge(d, fetched)
	}
	return d
}

// Render returns the HTML fragment for req. An empty VideoURL renders
// nothing; a URL naming no supported video is video.ErrInvalidURL.
func (r *Renderer) Render(ctx context.Context, req Request) (string, error) {
	engine.IncrRender()
	req.VideoURL = strings.TrimSpace(req.VideoURL)
	if req.VideoURL == "" {
		return "", nil
	}
	d := r.Describe(ctx, req)
	if !d.HasVideo() {
		return "", fmt.Errorf("render %q: %w", req.VideoURL, video.ErrInvalidURL)
	}

	thumb, alt := d.Thumbnail(req.ThumbnailOverride())
	v := view{
		ID:          r.newID(),
		Classes:     classes(req.ClassName, d.Provider),
		D:           d,
		ThumbURL:    thumb,
		ThumbAlt:    alt,
		ShowTitle:   req.ShowTitle,
		ShowDesc:    req.ShowDescription,
		Autoplay:    req.Autoplay,
		Lightbox:    req.Lightbox,
		LightboxURL: video.EmbedURL(d.Provider, d.VideoID, true),
		AMP:         req.AMP,
		IsYouTube:   d.Provider == video.ProviderYouTube,
	}
	if d.Duration != "" {
		v.DurationLabel = video.FormatDuration(d.Duration)
	}
	if req.ShowTranscript {
		content, err := transcript.Resolve(ctx, d, req.Transcript, req.AutoTranscript, r.captions)
		if err != nil {
			slog.Warn("render: transcript unavailable", slog.String("video_id", d.VideoID), slog.Any("error", err))
		}
		v.Transcript = template.HTML(content) //nolint:gosec // sanitized by transcript.Resolve
	}

	var buf bytes.Buffer
	if err := fragmentTmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render %s: %w", d.VideoID, err)
	}
	return buf.String(), nil
}

func classes(extra string, p video.Provider) string {
	parts := []string{"ekwa-video-wrapper"}
	if extra = strings.TrimSpace(extra); extra != "" {
		parts = append(parts, extra)
	}
	return strings.Join(append(parts, "ekwa-video-"+string(p)), " ")
}
