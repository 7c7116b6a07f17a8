// Package videoserver exposes the video engine as MCP tools:
// video_resolve, video_render, video_transcript, video_describe and
// video_analytics_summary.
package videoserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_video/internal/engine/analytics"
	"github.com/anatolykoptev/go_video/internal/engine/render"
	"github.com/anatolykoptev/go_video/internal/engine/resolve"
	"github.com/anatolykoptev/go_video/internal/engine/sources"
	"github.com/anatolykoptev/go_video/internal/engine/transcript"
)

// Deps are the components behind the tools. Nil fields get package defaults;
// a nil Summary disables video_analytics_summary.
type Deps struct {
	Resolver *resolve.Resolver
	Renderer *render.Renderer
	Captions transcript.CaptionFetcher
	Summary  analytics.Summarizer
}

func (d Deps) withDefaults() Deps {
	if d.Resolver == nil {
		d.Resolver = resolve.New(nil)
	}
	if d.Renderer == nil {
		d.Renderer = render.New()
	}
	if d.Captions == nil {
		d.Captions = sources.FetchYouTubeCaptions
	}
	return d
}

// RegisterTools registers all video tools on the given MCP server and
// returns how many were added.
func RegisterTools(server *mcp.Server, d Deps) int {
	d = d.withDefaults()
	registerResolve(server, d)
	registerRender(server, d)
	registerTranscript(server, d)
	registerDescribe(server, d)
	n := 4
	if d.Summary != nil {
		registerAnalyticsSummary(server, d)
		n++
	}
	return n
}
