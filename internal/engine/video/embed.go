package video

import "net/url"

const (
	youtubeEmbedBase = "https://www.youtube.com/embed/"
	youtubeWatchBase = "https://www.youtube.com/watch?v="
	youtubeThumbBase = "https://img.youtube.com/vi/"
	vimeoEmbedBase   = "https://player.vimeo.com/video/"
	vimeoWatchBase   = "https://vimeo.com/"
)

// EmbedURL returns the provider iframe URL for id. autoplay selects the variant
// used when the player is created on click.
func EmbedURL(p Provider, id string, autoplay bool) string {
	if id == "" {
		return ""
	}
	switch p {
	case ProviderYouTube:
		u := youtubeEmbedBase + url.PathEscape(id) + "?rel=0"
		if autoplay {
			u += "&autoplay=1"
		}
		return u
	case ProviderVimeo:
		u := vimeoEmbedBase + url.PathEscape(id)
		if autoplay {
			u += "?autoplay=1&title=0&byline=0&portrait=0"
		}
		return u
	}
	return ""
}

// WatchURL returns the public page URL for id, as expected by oEmbed endpoints.
func WatchURL(p Provider, id string) string {
	switch p {
	case ProviderYouTube:
		return youtubeWatchBase + url.QueryEscape(id)
	case ProviderVimeo:
		return vimeoWatchBase + url.PathEscape(id)
	}
	return ""
}

// DefaultYouTubeThumbnail is the fixed max-resolution still used when no
// structured thumbnail data is available.
func DefaultYouTubeThumbnail(id string) string {
	return youtubeThumbBase + url.PathEscape(id) + "/maxresdefault.jpg"
}
