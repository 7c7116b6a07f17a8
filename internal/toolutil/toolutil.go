// Package toolutil provides shared helper functions for go_video MCP tools.
package toolutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_video/internal/engine"
)

// SplitLangs parses a comma-separated language list. Empty input yields nil
// so callers fall back to the configured default.
func SplitLangs(s string) []string {
	var out []string
	for _, l := range strings.Split(s, ",") {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// NormFormat normalises a transcript output format: empty → "markdown".
func NormFormat(f string) (string, error) {
	switch f = strings.ToLower(strings.TrimSpace(f)); f {
	case "":
		return "markdown", nil
	case "markdown", "html", "text":
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (valid: markdown, html, text)", f)
}

// Cached returns the cached value for key, or runs fn and caches its
// result on success.
func Cached[T any](ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	if v, ok := engine.CacheLoadJSON[T](ctx, key); ok {
		return v, nil
	}
	v, err := fn(ctx)
	if err != nil {
		return v, err
	}
	engine.CacheStoreJSON(ctx, key, v)
	return v, nil
}
