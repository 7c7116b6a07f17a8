package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFormatMetrics(t *testing.T) {
	before := GetMetrics()["render_requests"]
	IncrRender()
	IncrRender()
	if got := GetMetrics()["render_requests"]; got != before+2 {
		t.Errorf("render_requests = %d, want %d", got, before+2)
	}

	out := FormatMetrics()
	for _, k := range []string{"resolve_requests ", "render_requests ", "cache_hits ", "cache_misses "} {
		if !strings.Contains(out, k) {
			t.Errorf("FormatMetrics() missing %q:\n%s", k, out)
		}
	}
	if n := strings.Count(out, "\n"); n != len(GetMetrics()) {
		t.Errorf("FormatMetrics() has %d lines, want %d", n, len(GetMetrics()))
	}
}

func TestTrackOperation(t *testing.T) {
	want := errors.New("boom")
	err := TrackOperation(context.Background(), "test", func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Errorf("TrackOperation() = %v, want %v", err, want)
	}
}
