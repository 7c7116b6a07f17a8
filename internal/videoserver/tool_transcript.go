package videoserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/sources"
	"github.com/anatolykoptev/go_video/internal/engine/transcript"
	"github.com/anatolykoptev/go_video/internal/engine/video"
	"github.com/anatolykoptev/go_video/internal/toolutil"
)

func registerTranscript(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_transcript",
		Description: "Fetch the caption transcript of a YouTube video. Returns timestamped paragraphs as markdown (default), HTML ready for the embed transcript panel, or plain text. Language preference is a comma-separated list; auto-generated tracks are used when no manual track matches.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoTranscriptInput) (*mcp.CallToolResult, engine.VideoTranscriptOutput, error) {
		out, err := fetchTranscript(ctx, d, input)
		return nil, out, err
	})
}

func fetchTranscript(ctx context.Context, d Deps, input engine.VideoTranscriptInput) (engine.VideoTranscriptOutput, error) {
	if input.URL == "" {
		return engine.VideoTranscriptOutput{}, errors.New("url is required")
	}
	format, err := toolutil.NormFormat(input.Format)
	if err != nil {
		return engine.VideoTranscriptOutput{}, err
	}
	desc := video.Parse(input.URL)
	if desc.Provider != video.ProviderYouTube {
		return engine.VideoTranscriptOutput{}, errors.New("transcripts are available for YouTube videos only")
	}

	var lines []sources.Caption
	err = engine.TrackOperation(ctx, "video_transcript", func(ctx context.Context) error {
		var err error
		lines, err = d.Captions(ctx, desc.VideoID, toolutil.SplitLangs(input.Languages))
		return err
	})
	if err != nil {
		return engine.VideoTranscriptOutput{}, fmt.Errorf("video_transcript: %w", err)
	}

	out := engine.VideoTranscriptOutput{VideoID: desc.VideoID, Format: format, Lines: len(lines)}
	switch format {
	case "text":
		out.Content = captionText(lines)
	case "html":
		out.Content = transcript.FromCaptions(lines)
	default:
		md, err := transcript.ToMarkdown(transcript.FromCaptions(lines))
		if err != nil {
			return engine.VideoTranscriptOutput{}, err
		}
		out.Content = md
	}
	return out, nil
}

func captionText(lines []sources.Caption) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.Text)
	}
	return strings.Join(parts, " ")
}
