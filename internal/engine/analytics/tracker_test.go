package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_video/internal/engine/player"
	"github.com/anatolykoptev/go_video/internal/engine/video"
)

func names(evs []Event) []Name {
	out := make([]Name, len(evs))
	for i, e := range evs {
		out[i] = e.Name
	}
	return out
}

func TestTrackerLifecycle(t *testing.T) {
	ctx := context.Background()
	sink := &MemorySink{}
	tr := NewTracker(sink)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tr.now = func() time.Time { return fixed }

	c := player.NewController(player.WithFactory(video.ProviderYouTube, player.RemoteFactory), player.WithFade(0))
	tr.Attach(ctx, c.Bus())

	d := video.Parse("https://youtu.be/dQw4w9WgXcQ")
	d.Title = "Demo"
	_, err := c.Mount("v1", d, &player.HeadlessSurface{W: 640}, false)
	require.NoError(t, err)
	tr.SetPageURL("v1", "https://example.com/post")
	require.NoError(t, c.Click("v1"))

	in, _ := c.Instance("v1")
	remote := in.Player().(*player.Remote)

	remote.Report(player.EventReady, 0, 200)
	remote.Report(player.EventPlay, 0, -1)
	remote.Report(player.EventTimeUpdate, 30, -1)  // 15%
	remote.Report(player.EventTimeUpdate, 60, -1)  // 30% -> 25
	remote.Report(player.EventTimeUpdate, 160, -1) // 80% -> 50, 75
	remote.Report(player.EventTimeUpdate, 170, -1)
	remote.Report(player.EventPause, 170.4, -1)
	remote.Report(player.EventPlay, -1, -1)
	remote.Report(player.EventTimeUpdate, 60, -1) // seek back, no repeats
	remote.Report(player.EventEnded, 200, -1)

	evs := sink.Events()
	assert.Equal(t, []Name{
		EventLoad, EventStart,
		EventProgress, EventProgress, EventProgress,
		EventPause, EventComplete,
	}, names(evs))

	var pcts []int
	for _, e := range evs {
		if e.Name == EventProgress {
			pcts = append(pcts, e.Percent)
		}
	}
	assert.Equal(t, []int{25, 50, 75}, pcts)

	pause := evs[5]
	assert.Equal(t, 170, pause.CurrentTime)
	assert.Equal(t, 200, pause.Duration)
	assert.Equal(t, "Demo", pause.Title)
	assert.Equal(t, "youtube", pause.Provider)
	assert.Equal(t, "dQw4w9WgXcQ", pause.VideoID)
	assert.Equal(t, "https://example.com/post", pause.PageURL)
	assert.Equal(t, "v1", pause.InstanceID)
	assert.Equal(t, fixed, pause.At)
	for _, e := range evs {
		assert.NoError(t, e.Validate(), e.Name)
	}
}

func TestTrackerInstancesIndependent(t *testing.T) {
	ctx := context.Background()
	sink := &MemorySink{}
	tr := NewTracker(sink)
	c := player.NewController(player.WithFactory(video.ProviderVimeo, player.RemoteFactory), player.WithFade(0))
	tr.Attach(ctx, c.Bus())

	d := video.Parse("https://vimeo.com/76979871")
	for _, id := range []string{"a", "b"} {
		_, err := c.Mount(id, d, &player.HeadlessSurface{W: 320}, false)
		require.NoError(t, err)
		require.NoError(t, c.Click(id))
		in, _ := c.Instance(id)
		r := in.Player().(*player.Remote)
		r.Report(player.EventReady, 0, 100)
		r.Report(player.EventPlay, 0, -1)
		r.Report(player.EventTimeUpdate, 30, -1)
	}

	sum, err := sink.Summary(ctx, "76979871")
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.Counts[EventStart])
	assert.Equal(t, int64(2), sum.Counts[EventProgress])
	assert.Equal(t, int64(6), sum.Total)
}

func TestTrackerIgnoresUnknownAndForgotten(t *testing.T) {
	sink := &MemorySink{}
	tr := NewTracker(sink)
	tr.Observe(context.Background(), "nope", player.EventPlay, 0, 10)
	assert.Empty(t, sink.Events())

	tr.open("x", video.Parse("https://vimeo.com/1"))
	tr.Forget("x")
	tr.Observe(context.Background(), "x", player.EventPlay, 0, 10)
	assert.Empty(t, sink.Events())
}

func TestTrackerZeroDurationSkipsMilestones(t *testing.T) {
	sink := &MemorySink{}
	tr := NewTracker(sink)
	tr.open("x", video.Parse("https://vimeo.com/1"))
	tr.Observe(context.Background(), "x", player.EventTimeUpdate, 50, 0)
	assert.Empty(t, sink.Events())
}

func TestTrackerPlayWithoutReady(t *testing.T) {
	ctx := context.Background()
	sink := &MemorySink{}
	tr := NewTracker(sink)
	c := player.NewController(player.WithFactory(video.ProviderYouTube, player.RemoteFactory), player.WithFade(0))
	tr.Attach(ctx, c.Bus())

	_, err := c.Mount("v1", video.Parse("https://youtu.be/dQw4w9WgXcQ"), &player.HeadlessSurface{W: 640}, false)
	require.NoError(t, err)
	require.NoError(t, c.Click("v1"))
	in, _ := c.Instance("v1")
	in.Player().(*player.Remote).Report(player.EventPlay, 0, 120)

	assert.Equal(t, []Name{EventLoad, EventStart}, names(sink.Events()))
	assert.Equal(t, player.StatePlaying, in.State())
}
