// Package video holds the provider-neutral video descriptor model: URL parsing,
// embed URL construction, ISO-8601 duration/date helpers and the manual-over-fetched
// merge policy. Everything here is pure and safe to call from any goroutine.
package video

import "strings"

// Provider identifies a third-party video host.
type Provider string

const (
	ProviderNone    Provider = ""
	ProviderYouTube Provider = "youtube"
	ProviderVimeo   Provider = "vimeo"
)

// ParseProvider normalises a provider name. Unknown names map to ProviderNone.
func ParseProvider(s string) Provider {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderYouTube:
		return ProviderYouTube
	case ProviderVimeo:
		return ProviderVimeo
	}
	return ProviderNone
}

// Descriptor is the normalized representation of one video.
// Provider and VideoID are either both set or both empty.
type Descriptor struct {
	Provider     Provider `json:"video_type"`
	VideoID      string   `json:"video_id"`
	EmbedURL     string   `json:"embed_url"`
	Title        string   `json:"video_title"`
	Description  string   `json:"video_description"`
	Duration     string   `json:"video_duration"` // ISO-8601, e.g. PT12M34S
	UploadDate   string   `json:"upload_date"`    // ISO-8601 UTC
	ThumbnailURL string   `json:"thumbnail_url"`
}

// HasVideo reports whether the descriptor references a concrete provider video.
func (d Descriptor) HasVideo() bool {
	return d.Provider != ProviderNone && d.VideoID != ""
}

// IsZero reports whether no field is set.
func (d Descriptor) IsZero() bool {
	return d == Descriptor{}
}

// ThumbnailOverride is an editor-supplied thumbnail. When URL is set it wins
// over the fetched ThumbnailURL.
type ThumbnailOverride struct {
	URL    string `json:"url"`
	Alt    string `json:"alt,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Thumbnail returns the effective thumbnail URL and alt text for d.
// The alt text falls back to the video title.
func (d Descriptor) Thumbnail(o *ThumbnailOverride) (url, alt string) {
	url, alt = d.ThumbnailURL, d.Title
	if o == nil {
		return url, alt
	}
	if o.URL != "" {
		url = o.URL
	}
	if o.Alt != "" {
		alt = o.Alt
	}
	return url, alt
}
