package video

import (
	"regexp"
	"strings"
)

var (
	// youtubeRE covers watch?v=, youtu.be/, /embed/, /v/, /e/, /shorts/ and
	// channel-style paths on youtube.com and youtube-nocookie.com. Path and
	// v= forms are tried before channel paths, and channel paths stop at the
	// query string, so ids embedded in query values never win.
	youtubeRE = regexp.MustCompile(`(?:youtube(?:-nocookie)?\.com/(?:(?:v|e(?:mbed)?|shorts)/|[^\s#]*?[?&]v=|[^/\s?]+/[^\s?]+/)|youtu\.be/)([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`)

	// vimeoRE covers plain ids plus channel, group, album and player URLs.
	vimeoRE = regexp.MustCompile(`vimeo\.com/(?:channels/(?:\w+/)?|groups/[^/]*/videos/|album/\d+/video/|video/|)(\d+)(?:$|/|\?|#)`)

	// vimeoLooseRE is the last-resort Vimeo pattern.
	vimeoLooseRE = regexp.MustCompile(`vimeo\.com/(\d+)`)
)

// Parse extracts the provider and video id from a user-supplied URL and fills
// in the canonical embed URL. Unrecognized input yields the zero Descriptor;
// callers treat that as an invalid URL.
func Parse(rawURL string) Descriptor {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return Descriptor{}
	}

	if m := youtubeRE.FindStringSubmatch(s); len(m) >= 2 {
		return newDescriptor(ProviderYouTube, m[1])
	}
	if m := vimeoRE.FindStringSubmatch(s); len(m) >= 2 {
		return newDescriptor(ProviderVimeo, m[1])
	}
	if m := vimeoLooseRE.FindStringSubmatch(s); len(m) >= 2 {
		return newDescriptor(ProviderVimeo, m[1])
	}
	return Descriptor{}
}

func newDescriptor(p Provider, id string) Descriptor {
	return Descriptor{
		Provider: p,
		VideoID:  id,
		EmbedURL: EmbedURL(p, id, false),
	}
}
