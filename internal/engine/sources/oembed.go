package sources

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/video"
	"github.com/tidwall/gjson"
)

// oEmbed endpoints; vars so tests can point them at a stub server.
var (
	ytOEmbedURL    = "https://www.youtube.com/oembed"
	vimeoOEmbedURL = "https://vimeo.com/api/oembed.json"
)

// fetchYouTubeOEmbed is the keyless YouTube path: title and author only.
// The fixed max-resolution still is always returned, even when oEmbed fails.
func fetchYouTubeOEmbed(ctx context.Context, videoID string) (video.Descriptor, error) {
	engine.IncrYouTubeOEmbed()
	d := video.Descriptor{ThumbnailURL: video.DefaultYouTubeThumbnail(videoID)}

	q := url.Values{}
	q.Set("url", video.WatchURL(video.ProviderYouTube, videoID))
	q.Set("format", "json")
	body, err := engine.FetchJSON(ctx, ytOEmbedURL+"?"+q.Encode())
	if err != nil {
		return d, fmt.Errorf("youtube oembed: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return d, errors.New("youtube oembed: malformed JSON")
	}

	title := gjson.GetBytes(body, "title")
	if !title.Exists() {
		return d, nil
	}
	d.Title = title.String()
	if author := gjson.GetBytes(body, "author_name").String(); author != "" {
		d.Description = "By " + author
	}
	return d, nil
}

// fetchVimeoOEmbed maps Vimeo oEmbed fields onto a descriptor: duration
// seconds become ISO-8601 and the upload date is normalized to UTC.
func fetchVimeoOEmbed(ctx context.Context, videoID string) (video.Descriptor, error) {
	engine.IncrVimeoOEmbed()

	q := url.Values{}
	q.Set("url", video.WatchURL(video.ProviderVimeo, videoID))
	body, err := engine.FetchJSON(ctx, vimeoOEmbedURL+"?"+q.Encode())
	if err != nil {
		return video.Descriptor{}, fmt.Errorf("vimeo oembed: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return video.Descriptor{}, errors.New("vimeo oembed: malformed JSON")
	}

	r := gjson.ParseBytes(body)
	d := video.Descriptor{
		Title:        r.Get("title").String(),
		Description:  engine.CleanHTML(r.Get("description").String()),
		ThumbnailURL: r.Get("thumbnail_url").String(),
		UploadDate:   video.NormalizeDate(r.Get("upload_date").String()),
	}
	if dur := r.Get("duration"); dur.Exists() {
		d.Duration = video.SecondsToISO8601(int(dur.Int()))
	}
	return d, nil
}
