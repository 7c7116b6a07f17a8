package toolutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anatolykoptev/go_video/internal/engine"
)

func TestSplitLangs(t *testing.T) {
	got := SplitLangs(" EN, de ,,fr")
	want := []string{"en", "de", "fr"}
	if len(got) != len(want) {
		t.Fatalf("SplitLangs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitLangs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if SplitLangs("") != nil {
		t.Error("empty input should yield nil")
	}
}

func TestNormFormat(t *testing.T) {
	for in, want := range map[string]string{"": "markdown", "HTML": "html", " text ": "text"} {
		got, err := NormFormat(in)
		if err != nil || got != want {
			t.Errorf("NormFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := NormFormat("pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestCached(t *testing.T) {
	engine.InitCache("", time.Minute, 10)
	ctx := context.Background()
	calls := 0
	fn := func(context.Context) (string, error) {
		calls++
		return "value", nil
	}
	key := engine.CacheKey("toolutil-test", t.Name())
	for i := 0; i < 3; i++ {
		v, err := Cached(ctx, key, fn)
		if err != nil || v != "value" {
			t.Fatalf("Cached = %q, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}

	failKey := engine.CacheKey("toolutil-test", "fail")
	boom := errors.New("boom")
	if _, err := Cached(ctx, failKey, func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if _, ok := engine.CacheLoadJSON[int](ctx, failKey); ok {
		t.Error("failed result must not be cached")
	}
}
