package videoserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/analytics"
)

func registerAnalyticsSummary(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_analytics_summary",
		Description: "Engagement counts recorded by embedded players: video_load, video_start, video_progress (25/50/75%), video_pause and video_complete. Filter by provider video id or omit it for totals across all videos.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoSummaryInput) (*mcp.CallToolResult, analytics.Summary, error) {
		sum, err := d.Summary.Summary(ctx, input.VideoID)
		return nil, sum, err
	})
}
