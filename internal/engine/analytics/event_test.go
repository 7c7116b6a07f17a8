package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventValidate(t *testing.T) {
	ok := Event{Name: EventStart, Provider: "youtube", VideoID: "dQw4w9WgXcQ"}
	assert.NoError(t, ok.Validate())

	tests := []struct {
		name string
		ev   Event
	}{
		{"unknown name", Event{Name: "video_seek", Provider: "youtube", VideoID: "x"}},
		{"unknown provider", Event{Name: EventStart, Provider: "dailymotion", VideoID: "x"}},
		{"missing id", Event{Name: EventStart, Provider: "vimeo"}},
		{"bad percent", Event{Name: EventProgress, Provider: "vimeo", VideoID: "1", Percent: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ev.Validate(), ErrInvalidEvent)
		})
	}
}

func TestParseName(t *testing.T) {
	n, ok := ParseName("video_complete")
	assert.True(t, ok)
	assert.Equal(t, EventComplete, n)
	_, ok = ParseName("VIDEO_COMPLETE")
	assert.False(t, ok)
}

func TestSecondsRounding(t *testing.T) {
	assert.Equal(t, 43, seconds(42.5))
	assert.Equal(t, 0, seconds(-3))
	assert.Equal(t, 12, seconds(12.2))
}
