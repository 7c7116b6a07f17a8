package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGA4Forwarder(t *testing.T) {
	var got ga4Payload
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{
			"measurement_id": r.URL.Query().Get("measurement_id"),
			"api_secret":     r.URL.Query().Get("api_secret"),
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	old := ga4Endpoint
	ga4Endpoint = srv.URL
	t.Cleanup(func() { ga4Endpoint = old })

	fw, err := NewGA4Forwarder("G-TEST", "secret")
	require.NoError(t, err)
	err = fw.Record(context.Background(), Event{
		Name: EventProgress, InstanceID: "inst-1", Title: "Demo",
		Provider: "vimeo", VideoID: "76979871", PageURL: "https://example.com/p",
		Percent: 50, CurrentTime: 30, Duration: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, "G-TEST", query["measurement_id"])
	assert.Equal(t, "secret", query["api_secret"])
	assert.Equal(t, "inst-1", got.ClientID)
	require.Len(t, got.Events, 1)
	ev := got.Events[0]
	assert.Equal(t, "video_progress", ev.Name)
	assert.Equal(t, "76979871", ev.Params["video_id"])
	assert.Equal(t, "Demo", ev.Params["video_title"])
	assert.EqualValues(t, 50, ev.Params["progress_percentage"])
	assert.EqualValues(t, 30, ev.Params["video_current_time"])
}

func TestGA4ForwarderRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()
	old := ga4Endpoint
	ga4Endpoint = srv.URL
	t.Cleanup(func() { ga4Endpoint = old })

	fw, err := NewGA4Forwarder("G-TEST", "secret")
	require.NoError(t, err)
	err = fw.Record(context.Background(), Event{Name: EventStart, Provider: "vimeo", VideoID: "1"})
	assert.Error(t, err)
}

func TestGA4ForwarderRequiresCredentials(t *testing.T) {
	_, err := NewGA4Forwarder("", "secret")
	assert.Error(t, err)
}
