// Package resolve turns an editor-supplied URL into a complete descriptor:
// parse, cached provider fetch, then the manual-over-fetched merge.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/sources"
	"github.com/anatolykoptev/go_video/internal/engine/video"
)

// ErrEmptyURL is returned when no URL was supplied at all.
var ErrEmptyURL = errors.New("empty video URL")

// FetchFunc retrieves provider metadata. sources.Fetch is the default.
type FetchFunc func(ctx context.Context, p video.Provider, id string) (video.Descriptor, error)

// Resolver combines parsing, fetching and merging.
type Resolver struct {
	fetch FetchFunc
}

// New returns a Resolver using fetch, or sources.Fetch when fetch is nil.
func New(fetch FetchFunc) *Resolver {
	if fetch == nil {
		fetch = sources.Fetch
	}
	return &Resolver{fetch: fetch}
}

// Resolve parses rawURL and fetches its metadata. Fetch failures degrade to
// a descriptor carrying only provider, id and embed URL; only an empty or
// unrecognized URL is an error.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (video.Descriptor, error) {
	return r.ResolveWith(ctx, rawURL, video.Descriptor{})
}

// ResolveWith is Resolve followed by Merge(manual, fetched).
func (r *Resolver) ResolveWith(ctx context.Context, rawURL string, manual video.Descriptor) (video.Descriptor, error) {
	fetched, err := r.lookup(ctx, rawURL)
	if err != nil {
		return video.Descriptor{}, err
	}
	return video.Merge(manual, fetched), nil
}

// lookup parses rawURL and returns the provider descriptor before any
// manual overrides are applied.
func (r *Resolver) lookup(ctx context.Context, rawURL string) (video.Descriptor, error) {
	engine.IncrResolve()
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return video.Descriptor{}, ErrEmptyURL
	}
	parsed := video.Parse(rawURL)
	if !parsed.HasVideo() {
		return video.Descriptor{}, fmt.Errorf("resolve %q: %w", rawURL, video.ErrInvalidURL)
	}

	fetched, _ := r.fetch(ctx, parsed.Provider, parsed.VideoID) // failure already logged, fields stay empty
	fetched.Provider, fetched.VideoID, fetched.EmbedURL = parsed.Provider, parsed.VideoID, parsed.EmbedURL
	return fetched, nil
}
