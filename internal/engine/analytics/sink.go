package analytics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/anatolykoptev/go_video/internal/engine"
)

// Sink receives analytics events.
type Sink interface {
	Record(ctx context.Context, ev Event) error
}

// Summarizer reports per-event counts.
type Summarizer interface {
	Summary(ctx context.Context, videoID string) (Summary, error)
}

// Summary holds event counts for one video, or all videos when VideoID is empty.
type Summary struct {
	VideoID string         `json:"video_id,omitempty"`
	Counts  map[Name]int64 `json:"counts"`
	Total   int64          `json:"total"`
}

func newSummary(videoID string) Summary {
	return Summary{VideoID: videoID, Counts: make(map[Name]int64, len(Names))}
}

func (s *Summary) add(n Name, c int64) {
	s.Counts[n] += c
	s.Total += c
}

// MultiSink fans events out to every sink. Failures are logged and
// counted, never returned.
type MultiSink []Sink

func (m MultiSink) Record(ctx context.Context, ev Event) error {
	engine.IncrAnalyticsEvent()
	for _, s := range m {
		if err := s.Record(ctx, ev); err != nil {
			engine.IncrAnalyticsSinkErrors()
			slog.Warn("analytics: sink failed",
				slog.String("event", string(ev.Name)),
				slog.String("video_id", ev.VideoID),
				slog.Any("error", err))
		}
	}
	return nil
}

// Summary returns the summary of the first sink that can produce one.
func (m MultiSink) Summary(ctx context.Context, videoID string) (Summary, error) {
	for _, s := range m {
		if sm, ok := s.(Summarizer); ok {
			return sm.Summary(ctx, videoID)
		}
	}
	return newSummary(videoID), nil
}

// MemorySink keeps events in memory.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func (m *MemorySink) Record(_ context.Context, ev Event) error {
	m.mu.Lock()
	m.events = append(m.events, ev)
	m.mu.Unlock()
	return nil
}

// Events returns a copy of the recorded events.
func (m *MemorySink) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

func (m *MemorySink) Summary(_ context.Context, videoID string) (Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := newSummary(videoID)
	for _, ev := range m.events {
		if videoID == "" || ev.VideoID == videoID {
			s.add(ev.Name, 1)
		}
	}
	return s, nil
}
