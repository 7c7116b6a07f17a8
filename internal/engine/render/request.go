package render

import (
	"errors"
	"html"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_video/internal/engine/video"
)

// Request describes one embed. The embedded descriptor carries editor
// overrides; any field left empty is filled from provider metadata.
type Request struct {
	VideoURL string `json:"video_url"`
	video.Descriptor

	CustomThumbnail    string `json:"custom_thumbnail,omitempty"`
	CustomThumbnailAlt string `json:"custom_thumbnail_alt,omitempty"`

	ShowTitle       bool   `json:"show_title"`
	ShowDescription bool   `json:"show_description"`
	Autoplay        bool   `json:"autoplay"`
	Transcript      string `json:"transcript,omitempty"`
	ShowTranscript  bool   `json:"show_transcript"`
	AutoTranscript  bool   `json:"auto_transcript,omitempty"`
	ClassName       string `json:"class_name,omitempty"`
	Lightbox        bool   `json:"lightbox,omitempty"`
	AMP             bool   `json:"amp,omitempty"`
}

// DefaultRequest returns a Request with the block defaults applied.
// Decode JSON on top of it so absent flags keep their defaults.
func DefaultRequest() Request {
	return Request{ShowTitle: true}
}

// ThumbnailOverride returns the editor thumbnail, or nil when none is set.
func (r Request) ThumbnailOverride() *video.ThumbnailOverride {
	if r.CustomThumbnail == "" && r.CustomThumbnailAlt == "" {
		return nil
	}
	return &video.ThumbnailOverride{URL: r.CustomThumbnail, Alt: r.CustomThumbnailAlt}
}

// ShortcodeTag is the shortcode name accepted by ParseShortcode.
const ShortcodeTag = "ekwa_video"

// ErrNotShortcode is returned for input that is not an ekwa_video shortcode.
var ErrNotShortcode = errors.New("not an " + ShortcodeTag + " shortcode")

var (
	shortcodeRE = regexp.MustCompile(`^\[\s*` + ShortcodeTag + `(\s[^\]]*)?\]`)
	shortAttrRE = regexp.MustCompile(`([\w-]+)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'\]]+))`)
)

// ParseShortcode reads `[ekwa_video key="value" ...]` into a Request.
// Unknown attributes are ignored.
func ParseShortcode(s string) (Request, error) {
	m := shortcodeRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Request{}, ErrNotShortcode
	}
	req := DefaultRequest()
	for _, a := range shortAttrRE.FindAllStringSubmatch(m[1], -1) {
		val := a[2] + a[3] + a[4]
		setAttr(&req, strings.ToLower(a[1]), html.UnescapeString(val))
	}
	return req, nil
}

func setAttr(r *Request, key, val string) {
	switch key {
	case "video_url":
		r.VideoURL = val
	case "video_type":
		r.Provider = video.ParseProvider(val)
	case "video_id":
		r.VideoID = val
	case "embed_url":
		r.EmbedURL = val
	case "video_title":
		r.Title = val
	case "video_description":
		r.Description = val
	case "video_duration":
		r.Duration = val
	case "upload_date":
		r.UploadDate = val
	case "thumbnail_url":
		r.ThumbnailURL = val
	case "custom_thumbnail":
		r.CustomThumbnail = val
	case "custom_thumbnail_alt":
		r.CustomThumbnailAlt = val
	case "show_title":
		r.ShowTitle = truthy(val)
	case "show_description":
		r.ShowDescription = truthy(val)
	case "autoplay":
		r.Autoplay = truthy(val)
	case "transcript":
		r.Transcript = val
	case "show_transcript":
		r.ShowTranscript = truthy(val)
	case "auto_transcript":
		r.AutoTranscript = truthy(val)
	case "class_name":
		r.ClassName = val
	case "lightbox":
		r.Lightbox = truthy(val)
	case "amp":
		r.AMP = truthy(val)
	}
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
