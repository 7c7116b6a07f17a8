package analytics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/anatolykoptev/go_video/internal/engine/player"
	"github.com/anatolykoptev/go_video/internal/engine/video"
)

// session is the per-instance milestone state.
type session struct {
	instanceID string
	d          video.Descriptor
	pageURL    string
	started    bool
	fired      map[int]bool
}

// Tracker turns player events into analytics events. Each mounted instance
// gets one session: video_start fires once, each milestone fires once.
type Tracker struct {
	sink Sink
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
	pages    map[string]string
}

// NewTracker returns a tracker writing to sink.
func NewTracker(sink Sink) *Tracker {
	return &Tracker{
		sink:     sink,
		now:      time.Now,
		sessions: make(map[string]*session),
		pages:    make(map[string]string),
	}
}

// SetPageURL records the page an instance lives on.
func (t *Tracker) SetPageURL(instanceID, pageURL string) {
	t.mu.Lock()
	t.pages[instanceID] = pageURL
	if s, ok := t.sessions[instanceID]; ok {
		s.pageURL = pageURL
	}
	t.mu.Unlock()
}

// Attach subscribes to bus. Every loaded player gets a session and its
// play, pause, ended and timeupdate events are tracked.
func (t *Tracker) Attach(ctx context.Context, bus *player.Bus) (unsubscribe func()) {
	return bus.Subscribe(func(ev player.LoadedEvent) {
		s := t.open(ev.InstanceID, ev.Descriptor)
		t.emit(ctx, s, EventLoad, 0, ev.Player.Duration(), 0)
		p := ev.Player
		for _, e := range []player.Event{player.EventPlay, player.EventPause, player.EventEnded, player.EventTimeUpdate} {
			p.On(e, func(e player.Event) {
				t.Observe(ctx, ev.InstanceID, e, p.CurrentTime(), p.Duration())
			})
		}
	})
}

// Forget drops the session of an unmounted instance.
func (t *Tracker) Forget(instanceID string) {
	t.mu.Lock()
	delete(t.sessions, instanceID)
	delete(t.pages, instanceID)
	t.mu.Unlock()
}

func (t *Tracker) open(instanceID string, d video.Descriptor) *session {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := &session{instanceID: instanceID, d: d, pageURL: t.pages[instanceID], fired: make(map[int]bool)}
	t.sessions[instanceID] = s
	return s
}

// Observe applies one player event to the instance's session. Unknown
// instances are ignored.
func (t *Tracker) Observe(ctx context.Context, instanceID string, ev player.Event, current, duration float64) {
	t.mu.Lock()
	s, ok := t.sessions[instanceID]
	if !ok {
		t.mu.Unlock()
		return
	}
	var out []Event
	switch ev {
	case player.EventPlay:
		if !s.started {
			s.started = true
			out = append(out, t.event(s, EventStart, 0, duration, 0))
		}
	case player.EventPause:
		out = append(out, t.event(s, EventPause, current, duration, 0))
	case player.EventEnded:
		out = append(out, t.event(s, EventComplete, 0, duration, 0))
	case player.EventTimeUpdate:
		if duration > 0 {
			pct := current / duration * 100
			for _, m := range Milestones {
				if pct >= float64(m) && !s.fired[m] {
					s.fired[m] = true
					out = append(out, t.event(s, EventProgress, current, duration, m))
				}
			}
		}
	}
	t.mu.Unlock()

	for _, e := range out {
		t.record(ctx, e)
	}
}

func (t *Tracker) record(ctx context.Context, e Event) {
	if err := t.sink.Record(ctx, e); err != nil {
		slog.Warn("analytics: record failed",
			slog.String("event", string(e.Name)),
			slog.String("instance", e.InstanceID),
			slog.Any("error", err))
	}
}

func (t *Tracker) emit(ctx context.Context, s *session, n Name, current, duration float64, pct int) {
	t.mu.Lock()
	e := t.event(s, n, current, duration, pct)
	t.mu.Unlock()
	t.record(ctx, e)
}

// event builds an Event for s. Caller holds t.mu.
func (t *Tracker) event(s *session, n Name, current, duration float64, pct int) Event {
	return Event{
		Name:        n,
		InstanceID:  s.instanceID,
		Title:       s.d.Title,
		Provider:    string(s.d.Provider),
		VideoID:     s.d.VideoID,
		PageURL:     s.pageURL,
		Percent:     pct,
		CurrentTime: seconds(current),
		Duration:    seconds(duration),
		At:          t.now().UTC(),
	}
}
