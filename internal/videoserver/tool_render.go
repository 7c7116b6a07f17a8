package videoserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/render"
	"github.com/anatolykoptev/go_video/internal/engine/video"
)

// VideoRenderInput mirrors render.Request with flat, documented fields.
type VideoRenderInput struct {
	Shortcode          string `json:"shortcode,omitempty" jsonschema:"Full [ekwa_video ...] shortcode; when set, all other fields are ignored"`
	VideoURL           string `json:"video_url,omitempty" jsonschema:"YouTube or Vimeo URL"`
	Title              string `json:"video_title,omitempty" jsonschema:"Manual title"`
	Description        string `json:"video_description,omitempty" jsonschema:"Manual description"`
	CustomThumbnail    string `json:"custom_thumbnail,omitempty" jsonschema:"Thumbnail URL overriding the provider still"`
	CustomThumbnailAlt string `json:"custom_thumbnail_alt,omitempty" jsonschema:"Alt text for the custom thumbnail"`
	HideTitle          bool   `json:"hide_title,omitempty" jsonschema:"Do not render the h3 title"`
	ShowDescription    bool   `json:"show_description,omitempty" jsonschema:"Render the description paragraph"`
	Transcript         string `json:"transcript,omitempty" jsonschema:"Transcript HTML or plain text"`
	ShowTranscript     bool   `json:"show_transcript,omitempty" jsonschema:"Render the collapsible transcript"`
	AutoTranscript     bool   `json:"auto_transcript,omitempty" jsonschema:"Fetch YouTube captions when transcript is empty"`
	ClassName          string `json:"class_name,omitempty" jsonschema:"Extra wrapper CSS class"`
	Lightbox           bool   `json:"lightbox,omitempty" jsonschema:"Open the video in a lightbox"`
	AMP                bool   `json:"amp,omitempty" jsonschema:"Render AMP player tags"`
}

func (in VideoRenderInput) request() (render.Request, error) {
	if in.Shortcode != "" {
		return render.ParseShortcode(in.Shortcode)
	}
	req := render.DefaultRequest()
	req.VideoURL = in.VideoURL
	req.Title = in.Title
	req.Description = in.Description
	req.CustomThumbnail = in.CustomThumbnail
	req.CustomThumbnailAlt = in.CustomThumbnailAlt
	req.ShowTitle = !in.HideTitle
	req.ShowDescription = in.ShowDescription
	req.Transcript = in.Transcript
	req.ShowTranscript = in.ShowTranscript
	req.AutoTranscript = in.AutoTranscript
	req.ClassName = in.ClassName
	req.Lightbox = in.Lightbox
	req.AMP = in.AMP
	return req, nil
}

func registerRender(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_render",
		Description: "Render the HTML embed fragment for a YouTube or Vimeo video: schema.org VideoObject microdata, click-to-play thumbnail with duration badge, optional description and collapsible transcript. Supports lightbox and AMP variants and accepts an [ekwa_video] shortcode.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input VideoRenderInput) (*mcp.CallToolResult, engine.VideoRenderOutput, error) {
		out, err := renderVideo(ctx, d, input)
		return nil, out, err
	})
}

func renderVideo(ctx context.Context, d Deps, input VideoRenderInput) (engine.VideoRenderOutput, error) {
	req, err := input.request()
	if err != nil {
		return engine.VideoRenderOutput{}, err
	}
	if req.VideoURL == "" {
		return engine.VideoRenderOutput{}, errors.New("video_url is required")
	}
	html, err := d.Renderer.Render(ctx, req)
	if errors.Is(err, video.ErrInvalidURL) {
		return engine.VideoRenderOutput{}, errors.New("could not extract video information from video_url")
	}
	if err != nil {
		return engine.VideoRenderOutput{}, err
	}
	return engine.VideoRenderOutput{HTML: html}, nil
}
