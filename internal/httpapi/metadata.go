package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_video/internal/engine/resolve"
	"github.com/anatolykoptev/go_video/internal/engine/video"
)

const (
	msgInvalidURL   = "Invalid video URL"
	msgUnrecognized = "Could not extract video information"
)

// readVideoURL accepts a form field or a JSON body carrying video_url.
func readVideoURL(w http.ResponseWriter, r *http.Request) (string, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var body struct {
			VideoURL string `json:"video_url"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&body); err != nil {
			return "", err
		}
		return body.VideoURL, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseForm(); err != nil {
		return "", err
	}
	return r.PostForm.Get("video_url"), nil
}

// Metadata resolves a pasted URL into a descriptor for the editor.
func (h *Handler) Metadata(w http.ResponseWriter, r *http.Request) {
	rawURL, err := readVideoURL(w, r)
	if err != nil || strings.TrimSpace(rawURL) == "" {
		writeError(w, http.StatusBadRequest, msgInvalidURL)
		return
	}

	d, err := h.Resolver.Resolve(r.Context(), rawURL)
	switch {
	case errors.Is(err, resolve.ErrEmptyURL):
		writeError(w, http.StatusBadRequest, msgInvalidURL)
		return
	case errors.Is(err, video.ErrInvalidURL):
		writeError(w, http.StatusBadRequest, msgUnrecognized)
		return
	case err != nil:
		slog.Error("metadata: resolve failed", slog.String("url", rawURL), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, msgUnrecognized)
		return
	}
	writeSuccess(w, http.StatusOK, d)
}
