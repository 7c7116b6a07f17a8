package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/anatolykoptev/go_video/internal/engine/render"
	"github.com/anatolykoptev/go_video/internal/engine/video"
)

// decodeRenderRequest reads either a RenderRequest JSON object or
// {"shortcode": "[ekwa_video ...]"}.
func decodeRenderRequest(body []byte) (render.Request, error) {
	if !gjson.ValidBytes(body) {
		return render.Request{}, errors.New("invalid JSON")
	}
	if sc := gjson.GetBytes(body, "shortcode"); sc.Exists() {
		return render.ParseShortcode(sc.String())
	}
	req := render.DefaultRequest()
	if err := json.Unmarshal(body, &req); err != nil {
		return render.Request{}, err
	}
	return req, nil
}

// Render returns the embed fragment as text/html.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	req, err := decodeRenderRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.Renderer.Render(r.Context(), req)
	if errors.Is(err, video.ErrInvalidURL) {
		writeError(w, http.StatusBadRequest, msgUnrecognized)
		return
	}
	if err != nil {
		slog.Error("render: failed", slog.String("url", req.VideoURL), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, out)
}
