package transcript

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_video/internal/engine/sources"
	"github.com/anatolykoptev/go_video/internal/engine/video"
)

func TestFromCaptions(t *testing.T) {
	lines := []sources.Caption{
		{Start: 0, Duration: 2, Text: "Hello"},
		{Start: 2, Duration: 2, Text: "world"},
		{Start: 65.5, Duration: 1, Text: "a < b"},
	}
	got := FromCaptions(lines)
	want := `<p><span class="ekv-ts" data-start="0">0:00</span> Hello world</p>` +
		`<p><span class="ekv-ts" data-start="65.5">1:05</span> a &lt; b</p>`
	if got != want {
		t.Errorf("FromCaptions =\n%s\nwant\n%s", got, want)
	}
	if FromCaptions(nil) != "" {
		t.Error("no captions should render empty")
	}
}

func TestResolvePrefersEditorContent(t *testing.T) {
	d := video.Parse("https://youtu.be/dQw4w9WgXcQ")
	called := false
	fetch := func(context.Context, string, []string) ([]sources.Caption, error) {
		called = true
		return nil, nil
	}
	got, err := Resolve(context.Background(), d, "Manual text", true, fetch)
	if err != nil {
		t.Fatal(err)
	}
	if got != "<p>Manual text</p>" {
		t.Errorf("got %q", got)
	}
	if called {
		t.Error("captions must not be fetched when content is set")
	}
}

func TestResolveAutoCaptions(t *testing.T) {
	d := video.Parse("https://youtu.be/dQw4w9WgXcQ")
	fetch := func(_ context.Context, id string, _ []string) ([]sources.Caption, error) {
		if id != "dQw4w9WgXcQ" {
			t.Errorf("id = %q", id)
		}
		return []sources.Caption{{Start: 1, Duration: 1, Text: "line"}}, nil
	}
	got, err := Resolve(context.Background(), d, "", true, fetch)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "line") {
		t.Errorf("got %q", got)
	}

	off, _ := Resolve(context.Background(), d, "", false, fetch)
	if off != "" {
		t.Errorf("auto disabled should yield empty, got %q", off)
	}
}

func TestResolveVimeoAndErrors(t *testing.T) {
	vimeo := video.Parse("https://vimeo.com/76979871")
	got, err := Resolve(context.Background(), vimeo, "", true, nil)
	if err != nil || got != "" {
		t.Errorf("vimeo = %q, %v", got, err)
	}

	yt := video.Parse("https://youtu.be/dQw4w9WgXcQ")
	_, err = Resolve(context.Background(), yt, "", true, func(context.Context, string, []string) ([]sources.Caption, error) {
		return nil, sources.ErrNoCaptions
	})
	if !errors.Is(err, sources.ErrNoCaptions) {
		t.Errorf("err = %v, want ErrNoCaptions", err)
	}
}
