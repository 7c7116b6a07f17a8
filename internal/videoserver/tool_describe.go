package videoserver

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/video"
	"github.com/anatolykoptev/go_video/internal/toolutil"
)

func registerDescribe(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_describe",
		Description: "Draft a short SEO description for a YouTube or Vimeo video from its metadata and, for YouTube, its captions. Use it to fill an empty video_description before rendering. Requires an LLM to be configured.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoDescribeInput) (*mcp.CallToolResult, engine.VideoDescribeOutput, error) {
		out, err := describeVideo(ctx, d, input)
		return nil, out, err
	})
}

func describeVideo(ctx context.Context, d Deps, input engine.VideoDescribeInput) (engine.VideoDescribeOutput, error) {
	if input.URL == "" {
		return engine.VideoDescribeOutput{}, errors.New("url is required")
	}
	desc, err := d.Resolver.Resolve(ctx, input.URL)
	if err != nil {
		return engine.VideoDescribeOutput{}, err
	}

	maxChars := input.MaxChars
	if maxChars <= 0 {
		maxChars = engine.Cfg.DescriptionMaxChars
	}
	key := engine.CacheKey("describe", string(desc.Provider), desc.VideoID, strconv.Itoa(maxChars))
	return toolutil.Cached(ctx, key, func(ctx context.Context) (engine.VideoDescribeOutput, error) {
		in := engine.DescribeInput{
			Title:       desc.Title,
			Provider:    string(desc.Provider),
			Duration:    video.FormatDuration(desc.Duration),
			Description: desc.Description,
			MaxChars:    maxChars,
		}
		grounded := "metadata"
		if desc.Provider == video.ProviderYouTube {
			lines, err := d.Captions(ctx, desc.VideoID, nil)
			if err != nil {
				slog.Debug("video_describe: no captions", slog.String("video_id", desc.VideoID), slog.Any("error", err))
			} else if len(lines) > 0 {
				in.Transcript = captionText(lines)
				grounded = "transcript"
			}
		}

		var text string
		err := engine.TrackOperation(ctx, "video_describe", func(ctx context.Context) error {
			var err error
			text, err = engine.DraftDescription(ctx, in)
			return err
		})
		if err != nil {
			return engine.VideoDescribeOutput{}, err
		}
		return engine.VideoDescribeOutput{
			VideoID:     desc.VideoID,
			Title:       desc.Title,
			Description: text,
			Grounded:    grounded,
		}, nil
	})
}
