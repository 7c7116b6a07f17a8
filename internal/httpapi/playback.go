package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/anatolykoptev/go_video/internal/engine/analytics"
	"github.com/anatolykoptev/go_video/internal/engine/player"
	"github.com/anatolykoptev/go_video/internal/engine/video"
)

// defaultIdle is how long an instance survives without reports.
const defaultIdle = 30 * time.Minute

// errNoPlayer is returned for provider events on an instance still showing
// its thumbnail.
var errNoPlayer = errors.New("instance has no player yet")

// PlaybackReport is one browser-side report for a mounted instance.
// Op is "click", "resize", "unload" or a provider event name.
type PlaybackReport struct {
	InstanceID  string   `json:"instance_id"`
	VideoURL    string   `json:"video_url"`
	Title       string   `json:"video_title,omitempty"`
	PageURL     string   `json:"page_url,omitempty"`
	Width       int      `json:"width,omitempty"`
	Op          string   `json:"event"`
	CurrentTime *float64 `json:"current_time,omitempty"`
	Duration    *float64 `json:"duration,omitempty"`
}

// PlaybackState is returned after every report: the controller's view of
// the instance and the commands the browser must apply to its player.
type PlaybackState struct {
	InstanceID  string           `json:"instance_id"`
	State       string           `json:"state"`
	Display     string           `json:"display"`
	SavedOffset float64          `json:"saved_offset"`
	Height      int              `json:"height"`
	Overlay     bool             `json:"overlay"`
	Commands    []player.Command `json:"commands"`
}

// Playback hosts a server-side player controller mirrored from browser
// reports. One mutex serializes the controller, which is single-owner.
type Playback struct {
	mu       sync.Mutex
	ctrl     *player.Controller
	tracker  *analytics.Tracker
	surfaces map[string]*player.HeadlessSurface
	seen     map[string]time.Time
	idle     time.Duration
	now      func() time.Time
}

// NewPlayback returns a hub whose analytics go to sink.
func NewPlayback(sink analytics.Sink) *Playback {
	p := &Playback{
		ctrl: player.NewController(
			player.WithFactory(video.ProviderYouTube, player.RemoteFactory),
			player.WithFactory(video.ProviderVimeo, player.RemoteFactory),
			player.WithFade(0),
		),
		tracker:  analytics.NewTracker(sink),
		surfaces: make(map[string]*player.HeadlessSurface),
		seen:     make(map[string]time.Time),
		idle:     defaultIdle,
		now:      time.Now,
	}
	p.tracker.Attach(context.Background(), p.ctrl.Bus())
	return p
}

func orKeep(v *float64) float64 {
	if v == nil {
		return -1
	}
	return *v
}

// Apply feeds one report through the controller.
func (p *Playback) Apply(rep PlaybackReport) (PlaybackState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sweep()

	id := strings.TrimSpace(rep.InstanceID)
	if id == "" {
		return PlaybackState{}, errors.New("instance_id is required")
	}
	if rep.Op == "unload" {
		p.drop(id)
		return PlaybackState{InstanceID: id, State: "unmounted"}, nil
	}

	in, ok := p.ctrl.Instance(id)
	if !ok {
		d := video.Parse(rep.VideoURL)
		if !d.HasVideo() {
			return PlaybackState{}, video.ErrInvalidURL
		}
		d.Title = rep.Title
		s := &player.HeadlessSurface{W: rep.Width, Container: id}
		var err error
		if in, err = p.ctrl.Mount(id, d, s, false); err != nil {
			return PlaybackState{}, err
		}
		p.surfaces[id] = s
	}
	p.seen[id] = p.now()
	if rep.PageURL != "" {
		p.tracker.SetPageURL(id, rep.PageURL)
	}

	switch rep.Op {
	case "click":
		if err := p.ctrl.Click(id); err != nil {
			return PlaybackState{}, err
		}
	case "resize":
		if err := p.ctrl.Resize(id, rep.Width); err != nil {
			return PlaybackState{}, err
		}
	default:
		ev, ok := player.ParseEvent(rep.Op)
		if !ok {
			return PlaybackState{}, errors.New("unknown event " + rep.Op)
		}
		remote, ok := in.Player().(*player.Remote)
		if !ok {
			return PlaybackState{}, errNoPlayer
		}
		remote.Report(ev, orKeep(rep.CurrentTime), orKeep(rep.Duration))
	}
	return p.snapshot(in), nil
}

func (p *Playback) snapshot(in *player.Instance) PlaybackState {
	st := PlaybackState{
		InstanceID:  in.ID,
		State:       in.State().String(),
		Display:     string(in.State().Display()),
		SavedOffset: in.SavedOffset(),
		Commands:    []player.Command{},
	}
	if s := p.surfaces[in.ID]; s != nil {
		st.Height, st.Overlay = s.H, s.Overlay
	}
	if remote, ok := in.Player().(*player.Remote); ok {
		if cmds := remote.Drain(); cmds != nil {
			st.Commands = cmds
		}
	}
	return st
}

func (p *Playback) drop(id string) {
	_ = p.ctrl.Unmount(id)
	p.tracker.Forget(id)
	delete(p.surfaces, id)
	delete(p.seen, id)
}

// sweep unmounts instances idle for longer than p.idle. Caller holds p.mu.
func (p *Playback) sweep() {
	cutoff := p.now().Add(-p.idle)
	for id, t := range p.seen {
		if t.Before(cutoff) {
			p.drop(id)
		}
	}
}

// Len returns the number of mounted instances.
func (p *Playback) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctrl.Registry().Len()
}

// PlaybackReport applies a browser report and returns the resulting state.
func (h *Handler) PlaybackReport(w http.ResponseWriter, r *http.Request) {
	var rep PlaybackReport
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&rep); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	st, err := h.Playback.Apply(rep)
	switch {
	case errors.Is(err, video.ErrInvalidURL):
		writeError(w, http.StatusBadRequest, msgUnrecognized)
	case errors.Is(err, errNoPlayer):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeSuccess(w, http.StatusOK, st)
	}
}
