// Package player drives per-instance playback state for embedded videos.
//
// A Controller owns a Registry of instances. Each instance moves through
// Thumbnail → Loading → Playing ⇄ Paused, with Ended reachable from either
// playing state. Provider SDKs sit behind the Player interface and page
// elements behind Surface, so the state machine never touches a provider
// or a DOM directly. A Controller is single-owner: call it from one
// goroutine (the host's event loop) and have adapters deliver their
// callbacks on that same goroutine.
package player

// State is the playback state of one instance.
type State int

const (
	StateThumbnail State = iota
	StateLoading
	StatePlaying
	StatePaused
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateThumbnail:
		return "thumbnail"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	}
	return "unknown"
}

// DisplayMode is the coarse view of State the page renders from.
type DisplayMode string

const (
	DisplayThumbnail DisplayMode = "thumbnail"
	DisplayPlaying   DisplayMode = "playing"
	DisplayPaused    DisplayMode = "paused"
)

// Display maps a state onto what the page shows. Loading still shows the
// fading thumbnail; Ended shows the overlay like Paused.
func (s State) Display() DisplayMode {
	switch s {
	case StatePlaying:
		return DisplayPlaying
	case StatePaused, StateEnded:
		return DisplayPaused
	}
	return DisplayThumbnail
}

// overlayVisible reports whether the thumbnail sits on top of a mounted player.
func (s State) overlayVisible() bool {
	return s == StatePaused || s == StateEnded
}
