package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_video/internal/engine/sources"
	"github.com/anatolykoptev/go_video/internal/engine/video"
)

type stubFetch struct {
	calls int
	d     video.Descriptor
	err   error
}

func (s *stubFetch) fetch(_ context.Context, p video.Provider, id string) (video.Descriptor, error) {
	s.calls++
	d := s.d
	d.Provider, d.VideoID = p, id
	return d, s.err
}

func newTestRenderer(f *stubFetch) *Renderer {
	return New(
		WithFetch(f.fetch),
		WithIDFunc(func() string { return "ekwa-video-test" }),
		WithCaptions(func(context.Context, string, []string) ([]sources.Caption, error) {
			return nil, sources.ErrNoCaptions
		}),
	)
}

func parseFragment(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderMicrodata(t *testing.T) {
	f := &stubFetch{d: video.Descriptor{
		Title:        "Never Gonna Give You Up",
		Description:  "Official video",
		Duration:     "PT1H2M3S",
		UploadDate:   "2009-10-25T06:57:33Z",
		ThumbnailURL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
	}}
	out, err := newTestRenderer(f).Render(context.Background(), Request{
		VideoURL:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		ShowTitle: true,
		ClassName: "alignwide",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.calls)

	doc := parseFragment(t, out)
	wrap := doc.Find(`div[itemprop="video"]`)
	require.Equal(t, 1, wrap.Length())
	id, _ := wrap.Attr("id")
	assert.Equal(t, "ekwa-video-test", id)
	cls, _ := wrap.Attr("class")
	assert.Equal(t, "ekwa-video-wrapper alignwide ekwa-video-youtube ekv-wrapper", cls)
	typ, _ := wrap.Attr("itemtype")
	assert.Equal(t, "http://schema.org/VideoObject", typ)

	meta := func(prop string) string {
		v, _ := doc.Find(`meta[itemprop="` + prop + `"]`).Attr("content")
		return v
	}
	assert.Equal(t, "Never Gonna Give You Up", meta("name"))
	assert.Equal(t, "PT1H2M3S", meta("duration"))
	assert.Equal(t, "2009-10-25T06:57:33Z", meta("uploadDate"))
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", meta("thumbnailURL"))
	assert.Equal(t, "1", meta("interactionCount"))
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ?rel=0", meta("embedURL"))
	assert.Equal(t, "Official video", meta("description"))

	assert.Equal(t, "Never Gonna Give You Up", doc.Find("h3.ekwa-video-title").Text())
	assert.Equal(t, "1:02:03", doc.Find(".ekwa-video-duration").Text())
	player := doc.Find(".ekwa-video-player")
	vid, _ := player.Attr("data-video-id")
	assert.Equal(t, "dQw4w9WgXcQ", vid)
	prov, _ := player.Attr("data-provider")
	assert.Equal(t, "youtube", prov)
	assert.Equal(t, 0, doc.Find(".ekwa-video-description").Length(), "description hidden by default")
	assert.Equal(t, 0, doc.Find(".video_transcript_btn").Length())
	assert.Equal(t, 1, doc.Find(".ekwa-video-iframe-container").Length())
}

func TestRenderManualWinsAndSkipsFetch(t *testing.T) {
	f := &stubFetch{}
	req := DefaultRequest()
	req.VideoURL = "https://vimeo.com/76979871"
	req.Title = "Editor title"
	req.ThumbnailURL = "https://cdn.example.com/fetched.jpg"
	req.CustomThumbnail = "https://cdn.example.com/custom.jpg"
	req.CustomThumbnailAlt = "Custom alt"

	out, err := newTestRenderer(f).Render(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, f.calls)

	doc := parseFragment(t, out)
	img := doc.Find("img.ekwa-video-thumb-img")
	src, _ := img.Attr("src")
	alt, _ := img.Attr("alt")
	assert.Equal(t, "https://cdn.example.com/custom.jpg", src)
	assert.Equal(t, "Custom alt", alt)
	embed, _ := doc.Find(".ekwa-video-thumbnail").Attr("data-embed-url")
	assert.Equal(t, "https://player.vimeo.com/video/76979871", embed)
	assert.Equal(t, "Editor title", doc.Find("h3.ekwa-video-title").Text())
}

func TestRenderPlaceholderWithoutThumbnail(t *testing.T) {
	f := &stubFetch{err: errors.New("offline")}
	out, err := newTestRenderer(f).Render(context.Background(), Request{VideoURL: "https://vimeo.com/1"})
	require.NoError(t, err)
	doc := parseFragment(t, out)
	assert.Equal(t, 1, doc.Find(".ekwa-video-placeholder").Length())
	assert.Equal(t, 0, doc.Find(".ekwa-video-thumbnail").Length())
	assert.Equal(t, 0, doc.Find(`meta[itemprop="name"]`).Length())
}

func TestRenderEmptyAndInvalid(t *testing.T) {
	r := newTestRenderer(&stubFetch{})
	out, err := r.Render(context.Background(), Request{VideoURL: "  "})
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = r.Render(context.Background(), Request{VideoURL: "https://example.com/clip.mp4"})
	assert.ErrorIs(t, err, video.ErrInvalidURL)
}

func TestRenderEscapesFields(t *testing.T) {
	f := &stubFetch{d: video.Descriptor{
		Title:        `<script>alert("x")</script>`,
		ThumbnailURL: "https://i.ytimg.com/x.jpg",
	}}
	out, err := newTestRenderer(f).Render(context.Background(), Request{
		VideoURL:  "https://youtu.be/dQw4w9WgXcQ",
		ShowTitle: true,
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	doc := parseFragment(t, out)
	assert.Equal(t, `<script>alert("x")</script>`, doc.Find("h3.ekwa-video-title").Text())
}

func TestRenderDescriptionAndTranscript(t *testing.T) {
	f := &stubFetch{d: video.Descriptor{Title: "T", Description: "About", ThumbnailURL: "https://i.ytimg.com/x.jpg"}}
	out, err := newTestRenderer(f).Render(context.Background(), Request{
		VideoURL:        "https://youtu.be/dQw4w9WgXcQ",
		ShowDescription: true,
		ShowTranscript:  true,
		Transcript:      "<p>Hello</p><script>bad()</script>",
	})
	require.NoError(t, err)
	doc := parseFragment(t, out)
	assert.Equal(t, "About", doc.Find(".ekwa-video-description p").Text())

	btn := doc.Find(".video_transcript_btn a.btn-transcript")
	require.Equal(t, 1, btn.Length())
	target, _ := btn.Attr("data-target")
	assert.Equal(t, "#transcript-dQw4w9WgXcQ", target)
	assert.Contains(t, btn.Text(), "Video Transcript")

	panel := doc.Find("#transcript-dQw4w9WgXcQ.transcript")
	require.Equal(t, 1, panel.Length())
	inner, _ := panel.Find(".ekv-transcript").Html()
	assert.Equal(t, "<p>Hello</p>", inner)
}

func TestRenderTranscriptHiddenWhenEmpty(t *testing.T) {
	f := &stubFetch{d: video.Descriptor{Title: "T", ThumbnailURL: "https://i.ytimg.com/x.jpg"}}
	out, err := newTestRenderer(f).Render(context.Background(), Request{
		VideoURL:       "https://youtu.be/dQw4w9WgXcQ",
		ShowTranscript: true,
		AutoTranscript: true,
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "video_transcript_btn")
}

func TestRenderLightbox(t *testing.T) {
	f := &stubFetch{d: video.Descriptor{Title: "T", ThumbnailURL: "https://i.ytimg.com/x.jpg"}}
	out, err := newTestRenderer(f).Render(context.Background(), Request{
		VideoURL: "https://youtu.be/dQw4w9WgXcQ",
		Lightbox: true,
	})
	require.NoError(t, err)
	doc := parseFragment(t, out)
	link := doc.Find("a.glightbox")
	require.Equal(t, 1, link.Length())
	href, _ := link.Attr("href")
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ?rel=0&autoplay=1", href)
	assert.Equal(t, 1, link.Find(".ekwa-video-thumbnail").Length())
}

func TestRenderAMP(t *testing.T) {
	f := &stubFetch{d: video.Descriptor{Title: "T", ThumbnailURL: "https://i.vimeocdn.com/x.jpg"}}
	r := newTestRenderer(f)

	out, err := r.Render(context.Background(), Request{VideoURL: "https://vimeo.com/76979871", AMP: true})
	require.NoError(t, err)
	doc := parseFragment(t, out)
	id, _ := doc.Find("amp-vimeo").Attr("data-videoid")
	assert.Equal(t, "76979871", id)
	assert.Equal(t, 0, doc.Find(".ekwa-video-player").Length())

	out, err = r.Render(context.Background(), Request{VideoURL: "https://youtu.be/dQw4w9WgXcQ", AMP: true})
	require.NoError(t, err)
	doc = parseFragment(t, out)
	id, _ = doc.Find("amp-youtube").Attr("data-videoid")
	assert.Equal(t, "dQw4w9WgXcQ", id)
}

func TestRenderGeneratesUniqueIDs(t *testing.T) {
	f := &stubFetch{d: video.Descriptor{Title: "T", ThumbnailURL: "https://i.ytimg.com/x.jpg"}}
	r := New(WithFetch(f.fetch))
	req := Request{VideoURL: "https://youtu.be/dQw4w9WgXcQ"}
	a, err := r.Render(context.Background(), req)
	require.NoError(t, err)
	b, err := r.Render(context.Background(), req)
	require.NoError(t, err)

	idA, _ := parseFragment(t, a).Find(`div[itemprop="video"]`).Attr("id")
	idB, _ := parseFragment(t, b).Find(`div[itemprop="video"]`).Attr("id")
	assert.True(t, strings.HasPrefix(idA, "ekwa-video-"))
	assert.NotEqual(t, idA, idB)
}
