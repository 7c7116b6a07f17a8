package videoserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/video"
)

func registerResolve(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_resolve",
		Description: "Resolve a YouTube or Vimeo URL into a normalized video descriptor: provider, id, embed URL, title, description, ISO-8601 duration, upload date and thumbnail. Manual fields override fetched metadata. Metadata comes from the YouTube Data API (when configured) or oEmbed.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoResolveInput) (*mcp.CallToolResult, engine.VideoResolveOutput, error) {
		out, err := resolveVideo(ctx, d, input)
		return nil, out, err
	})
}

func resolveVideo(ctx context.Context, d Deps, input engine.VideoResolveInput) (engine.VideoResolveOutput, error) {
	if input.URL == "" {
		return engine.VideoResolveOutput{}, errors.New("url is required")
	}
	manual := video.Descriptor{
		Title:        input.Title,
		Description:  input.Description,
		ThumbnailURL: input.Thumbnail,
	}
	desc, err := d.Resolver.ResolveWith(ctx, input.URL, manual)
	if err != nil {
		return engine.VideoResolveOutput{}, err
	}
	return toResolveOutput(desc), nil
}

func toResolveOutput(d video.Descriptor) engine.VideoResolveOutput {
	out := engine.VideoResolveOutput{
		Provider:     string(d.Provider),
		VideoID:      d.VideoID,
		EmbedURL:     d.EmbedURL,
		WatchURL:     video.WatchURL(d.Provider, d.VideoID),
		Title:        d.Title,
		Description:  d.Description,
		Duration:     d.Duration,
		UploadDate:   d.UploadDate,
		ThumbnailURL: d.ThumbnailURL,
	}
	if d.Duration != "" {
		out.DurationDisplay = video.FormatDuration(d.Duration)
	}
	return out
}
