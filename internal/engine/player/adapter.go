package player

import (
	"time"

	"github.com/anatolykoptev/go_video/internal/engine/video"
)

// Event is a provider player lifecycle notification.
type Event string

const (
	EventReady Event = "ready"
	EventPlay  Event = "play"
	EventPause Event = "pause"
	EventEnded Event = "ended"
	EventError Event = "error"
	// EventTimeUpdate reports playback progress; the controller ignores it,
	// analytics uses it for milestones.
	EventTimeUpdate Event = "timeupdate"
)

// ParseEvent maps a wire name onto an Event. ok is false for unknown names.
func ParseEvent(s string) (Event, bool) {
	switch ev := Event(s); ev {
	case EventReady, EventPlay, EventPause, EventEnded, EventError, EventTimeUpdate:
		return ev, true
	}
	return "", false
}

// Player is the provider-neutral handle on an embedded player.
// On may be called any number of times per event; every callback runs.
type Player interface {
	Play() error
	Pause() error
	SeekTo(seconds float64) error
	CurrentTime() float64
	Duration() float64
	On(ev Event, cb func(Event))
}

// Surface is the page region an instance renders into: the wrapper whose
// width drives the 16:9 layout, the thumbnail and the iframe container.
type Surface interface {
	Width() int
	SetHeight(px int)
	// FadeThumbnail hides the thumbnail over d, then calls done (may be nil).
	FadeThumbnail(d time.Duration, done func())
	// ShowOverlay puts the thumbnail back on top of the mounted player,
	// sized to match it.
	ShowOverlay(width, height int)
	// HideOverlay fades the overlay out over d, then calls done (may be nil).
	HideOverlay(d time.Duration, done func())
	ResizeOverlay(width, height int)
	// Handle is the host's container element, passed through in LoadedEvent.
	Handle() any
}

// Factory creates a provider player inside s. Implementations should use the
// autoplay embed URL.
type Factory func(d video.Descriptor, s Surface) (Player, error)

// AspectHeight returns the 16:9 height for width.
func AspectHeight(width int) int {
	if width <= 0 {
		return 0
	}
	return width * 9 / 16
}
