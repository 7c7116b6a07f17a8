package engine

import (
	"context"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		k1 := CacheKey("meta", "youtube", "dQw4w9WgXcQ")
		k2 := CacheKey("meta", "youtube", "dQw4w9WgXcQ")
		if k1 != k2 {
			t.Errorf("CacheKey not deterministic: %q != %q", k1, k2)
		}
	})

	t.Run("different inputs differ", func(t *testing.T) {
		k1 := CacheKey("meta", "youtube", "dQw4w9WgXcQ")
		k2 := CacheKey("meta", "vimeo", "148751763")
		if k1 == k2 {
			t.Errorf("different inputs produced same key: %q", k1)
		}
	})

	t.Run("has prefix", func(t *testing.T) {
		k := CacheKey("test")
		if k[:3] != "gv:" {
			t.Errorf("expected gv: prefix, got %q", k[:3])
		}
	})
}

func TestCacheGetSet(t *testing.T) {
	InitCache("", time.Minute, 100)

	ctx := context.Background()
	key := CacheKey("test", "round-trip")

	if _, ok := CacheGet(ctx, key); ok {
		t.Error("expected cache miss on empty cache")
	}

	CacheSet(ctx, key, []byte("hello"))

	got, ok := CacheGet(ctx, key)
	if !ok {
		t.Fatal("expected cache hit after set")
	}
	if string(got) != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestCacheExpiration(t *testing.T) {
	InitCache("", 5*time.Millisecond, 100)

	ctx := context.Background()
	key := CacheKey("test", "expiry")

	CacheSet(ctx, key, []byte("temp"))
	time.Sleep(50 * time.Millisecond)

	if _, ok := CacheGet(ctx, key); ok {
		t.Error("expected cache miss after TTL expiry")
	}
}

func TestCacheEviction(t *testing.T) {
	InitCache("", time.Minute, 3)

	ctx := context.Background()
	for i, k := range []string{"a", "b", "c", "d", "e"} {
		CacheSet(ctx, CacheKey("evict", k), []byte{byte(i)})
	}

	if n := CacheLen(); n > 3 {
		t.Errorf("CacheLen() = %d, want <= 3", n)
	}
	if _, ok := CacheGet(ctx, CacheKey("evict", "a")); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := CacheGet(ctx, CacheKey("evict", "e")); !ok {
		t.Error("newest entry should be present")
	}
}

func TestCacheJSON(t *testing.T) {
	InitCache("", time.Minute, 10)
	ctx := context.Background()

	type meta struct {
		Title    string `json:"title"`
		Duration string `json:"duration"`
	}
	key := CacheKey("json", "x")
	CacheStoreJSON(ctx, key, meta{Title: "Intro", Duration: "PT1M"})

	got, ok := CacheLoadJSON[meta](ctx, key)
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Title != "Intro" || got.Duration != "PT1M" {
		t.Errorf("got %+v", got)
	}

	CacheSet(ctx, CacheKey("json", "bad"), []byte("{not json"))
	if _, ok := CacheLoadJSON[meta](ctx, CacheKey("json", "bad")); ok {
		t.Error("corrupt entry should be a miss")
	}
}

func TestCacheNotInitialized(t *testing.T) {
	saved := metaCache
	metaCache = nil
	defer func() { metaCache = saved }()

	ctx := context.Background()
	CacheSet(ctx, "k", []byte("v"))
	if _, ok := CacheGet(ctx, "k"); ok {
		t.Error("nil cache must always miss")
	}
	if CacheLen() != 0 {
		t.Error("nil cache must report zero length")
	}
}
