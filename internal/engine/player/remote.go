package player

import (
	"time"

	"github.com/anatolykoptev/go_video/internal/engine/video"
)

// Command is an instruction queued for the real player on the client.
type Command struct {
	Op      string  `json:"op"` // play, pause, seek
	Seconds float64 `json:"seconds,omitempty"`
}

// Remote mirrors a player that runs elsewhere (a browser). The client
// reports what its player did via Report; calls the controller makes are
// queued as Commands for the client to apply.
type Remote struct {
	Descriptor video.Descriptor
	current    float64
	duration   float64
	handlers   map[Event][]func(Event)
	pending    []Command
}

// NewRemote returns a mirror for d.
func NewRemote(d video.Descriptor) *Remote {
	return &Remote{Descriptor: d, handlers: make(map[Event][]func(Event))}
}

// RemoteFactory is a Factory producing Remote players.
func RemoteFactory(d video.Descriptor, _ Surface) (Player, error) {
	return NewRemote(d), nil
}

func (r *Remote) Play() error {
	r.pending = append(r.pending, Command{Op: "play"})
	return nil
}

func (r *Remote) Pause() error {
	r.pending = append(r.pending, Command{Op: "pause"})
	return nil
}

func (r *Remote) SeekTo(seconds float64) error {
	r.current = seconds
	r.pending = append(r.pending, Command{Op: "seek", Seconds: seconds})
	return nil
}

func (r *Remote) CurrentTime() float64 { return r.current }
func (r *Remote) Duration() float64    { return r.duration }

func (r *Remote) On(ev Event, cb func(Event)) {
	r.handlers[ev] = append(r.handlers[ev], cb)
}

// Report records the client's position and fires ev. A negative duration
// keeps the previously known one. Handlers registered while ev is being
// dispatched run in the same dispatch.
func (r *Remote) Report(ev Event, current, duration float64) {
	if current >= 0 {
		r.current = current
	}
	if duration >= 0 {
		r.duration = duration
	}
	for i := 0; i < len(r.handlers[ev]); i++ {
		r.handlers[ev][i](ev)
	}
}

// Drain returns and clears the queued commands.
func (r *Remote) Drain() []Command {
	out := r.pending
	r.pending = nil
	return out
}

// HeadlessSurface is a Surface without rendering: transitions complete
// immediately and geometry is recorded for inspection.
type HeadlessSurface struct {
	W               int
	H               int
	ThumbnailHidden bool
	Overlay         bool
	OverlayW        int
	OverlayH        int
	Container       any
}

func (s *HeadlessSurface) Width() int       { return s.W }
func (s *HeadlessSurface) SetHeight(px int) { s.H = px }

func (s *HeadlessSurface) FadeThumbnail(_ time.Duration, done func()) {
	s.ThumbnailHidden = true
	if done != nil {
		done()
	}
}

func (s *HeadlessSurface) ShowOverlay(width, height int) {
	s.Overlay = true
	s.OverlayW, s.OverlayH = width, height
}

func (s *HeadlessSurface) HideOverlay(_ time.Duration, done func()) {
	s.Overlay = false
	if done != nil {
		done()
	}
}

func (s *HeadlessSurface) ResizeOverlay(width, height int) {
	s.OverlayW, s.OverlayH = width, height
}

func (s *HeadlessSurface) Handle() any { return s.Container }
