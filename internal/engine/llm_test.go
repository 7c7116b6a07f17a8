package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestExtractJSONAnswer(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "valid json", raw: `{"answer": "hello world"}`, want: "hello world"},
		{name: "escaped quotes", raw: `{"answer": "a \"quoted\" word"}`, want: `a "quoted" word`},
		{name: "escaped newlines", raw: `{"answer": "line1\nline2"}`, want: "line1\nline2"},
		{name: "no answer field", raw: `{"result": "something"}`, want: ""},
		{name: "empty input", raw: "", want: ""},
		{name: "malformed - no closing quote", raw: `{"answer": "unclosed`, want: "unclosed"},
		{name: "extra whitespace", raw: `{  "answer" :  "spaced out"  }`, want: "spaced out"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSONAnswer(tt.raw); got != tt.want {
				t.Errorf("ExtractJSONAnswer() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct{ in, want string }{
		{"```json\n{\"answer\":\"x\"}\n```", `{"answer":"x"}`},
		{"```\nplain\n```", "plain"},
		{"  no fences ", "no fences"},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildDescribePrompt(t *testing.T) {
	p := buildDescribePrompt(DescribeInput{
		Title:      "Knee replacement recovery",
		Provider:   "youtube",
		Duration:   "12:34",
		Transcript: strings.Repeat("word ", 2000),
		MaxChars:   150,
	})
	for _, want := range []string{"Knee replacement recovery", "youtube", "12:34", "at most 150 characters", "Current description: (none)"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Count(p, "word") > describeTranscriptChars/4 {
		t.Error("transcript excerpt was not truncated")
	}
}

func TestDraftDescriptionDisabled(t *testing.T) {
	saved := cfg
	defer func() { cfg = saved }()
	cfg.LLMClient = nil

	_, err := DraftDescription(context.Background(), DescribeInput{Title: "x"})
	if !errors.Is(err, ErrLLMDisabled) {
		t.Errorf("DraftDescription() error = %v, want ErrLLMDisabled", err)
	}
	if _, err := DraftDescription(context.Background(), DescribeInput{}); err == nil {
		t.Error("expected error for empty input")
	}
}
