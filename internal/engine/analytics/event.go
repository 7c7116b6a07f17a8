// Package analytics records viewer engagement: a per-instance milestone
// tracker fed by player events, and sinks that persist or forward events
// (SQLite, Postgres, GA4 Measurement Protocol).
package analytics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/anatolykoptev/go_video/internal/engine/video"
)

// Name is an analytics event name.
type Name string

const (
	EventLoad     Name = "video_load"
	EventStart    Name = "video_start"
	EventProgress Name = "video_progress"
	EventPause    Name = "video_pause"
	EventComplete Name = "video_complete"
)

// Names lists every event name in lifecycle order.
var Names = []Name{EventLoad, EventStart, EventProgress, EventPause, EventComplete}

// Milestones are the progress percentages reported once per session.
var Milestones = []int{25, 50, 75}

// ErrInvalidEvent is returned by Validate.
var ErrInvalidEvent = errors.New("invalid analytics event")

// Event is one engagement event. Times are whole seconds.
type Event struct {
	Name        Name      `json:"event"`
	InstanceID  string    `json:"instance_id,omitempty"`
	Title       string    `json:"video_title,omitempty"`
	Provider    string    `json:"video_provider"`
	VideoID     string    `json:"video_id"`
	PageURL     string    `json:"video_url,omitempty"`
	Percent     int       `json:"progress_percentage,omitempty"`
	CurrentTime int       `json:"video_current_time,omitempty"`
	Duration    int       `json:"video_duration,omitempty"`
	At          time.Time `json:"at"`
}

// ParseName maps a wire name onto a Name.
func ParseName(s string) (Name, bool) {
	for _, n := range Names {
		if string(n) == s {
			return n, true
		}
	}
	return "", false
}

// Validate checks the event name, provider and video id.
func (e Event) Validate() error {
	if _, ok := ParseName(string(e.Name)); !ok {
		return fmt.Errorf("%w: unknown event %q", ErrInvalidEvent, e.Name)
	}
	if video.ParseProvider(e.Provider) == video.ProviderNone {
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidEvent, e.Provider)
	}
	if e.VideoID == "" {
		return fmt.Errorf("%w: missing video_id", ErrInvalidEvent)
	}
	if e.Name == EventProgress && (e.Percent <= 0 || e.Percent > 100) {
		return fmt.Errorf("%w: progress_percentage %d out of range", ErrInvalidEvent, e.Percent)
	}
	return nil
}

func seconds(f float64) int {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Round(f))
}
