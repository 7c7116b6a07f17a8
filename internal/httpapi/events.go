package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go_video/internal/engine/analytics"
)

// RecordEvent ingests one precomputed analytics event.
func (h *Handler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var ev analytics.Event
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := ev.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if err := h.Sink.Record(r.Context(), ev); err != nil {
		slog.Warn("events: record failed", slog.String("event", string(ev.Name)), slog.Any("error", err))
	}
	writeSuccess(w, http.StatusAccepted, "recorded")
}

// EventSummary returns per-event counts, optionally for one video_id.
func (h *Handler) EventSummary(w http.ResponseWriter, r *http.Request) {
	if h.Summary == nil {
		writeError(w, http.StatusNotImplemented, "no analytics store configured")
		return
	}
	sum, err := h.Summary.Summary(r.Context(), r.URL.Query().Get("video_id"))
	if err != nil {
		slog.Error("events: summary failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "summary failed")
		return
	}
	writeSuccess(w, http.StatusOK, sum)
}
