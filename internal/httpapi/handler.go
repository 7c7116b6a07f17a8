// Package httpapi is the CMS-facing HTTP surface: metadata lookup, embed
// rendering, analytics ingest, playback reports, metrics and health.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/anatolykoptev/go_video/internal/engine"
	"github.com/anatolykoptev/go_video/internal/engine/analytics"
	"github.com/anatolykoptev/go_video/internal/engine/render"
	"github.com/anatolykoptev/go_video/internal/engine/resolve"
)

// maxBody caps request bodies; transcripts are the largest payload.
const maxBody = 1 << 20

// Deps are the components the API serves.
type Deps struct {
	Resolver *resolve.Resolver
	Renderer *render.Renderer
	Sink     analytics.Sink
	Summary  analytics.Summarizer
	Playback *Playback
}

// Handler serves the HTTP API.
type Handler struct {
	Deps
}

// New returns a Handler. Missing components get defaults: the package
// resolver and renderer, an in-memory sink and a playback hub writing to it.
func New(d Deps) *Handler {
	if d.Resolver == nil {
		d.Resolver = resolve.New(nil)
	}
	if d.Renderer == nil {
		d.Renderer = render.New()
	}
	if d.Sink == nil {
		d.Sink = &analytics.MemorySink{}
	}
	if d.Summary == nil {
		if s, ok := d.Sink.(analytics.Summarizer); ok {
			d.Summary = s
		}
	}
	if d.Playback == nil {
		d.Playback = NewPlayback(d.Sink)
	}
	return &Handler{Deps: d}
}

// Routes returns the chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/metrics", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(engine.FormatMetrics()))
	})

	r.Route("/api/video", func(r chi.Router) {
		r.Post("/metadata", h.Metadata)
		r.Post("/render", h.Render)
		r.Post("/events", h.RecordEvent)
		r.Get("/events/summary", h.EventSummary)
		r.Post("/playback", h.PlaybackReport)
	})
	return r
}

// envelope is the {success, data} response shape the CMS expects.
type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Data: msg})
}
