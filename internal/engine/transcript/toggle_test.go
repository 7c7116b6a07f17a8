package transcript

import (
	"testing"
	"time"
)

type fakeButton struct {
	label    string
	expanded bool
	bound    bool
	clicks   []func()
}

func (b *fakeButton) Label() string      { return b.label }
func (b *fakeButton) SetLabel(s string)  { b.label = s }
func (b *fakeButton) SetExpanded(v bool) { b.expanded = v }
func (b *fakeButton) OnClick(fn func())  { b.clicks = append(b.clicks, fn) }
func (b *fakeButton) Bound() bool        { return b.bound }
func (b *fakeButton) MarkBound()         { b.bound = true }
func (b *fakeButton) click() {
	for _, fn := range b.clicks {
		fn()
	}
}

type fakePanel struct {
	open  bool
	slide time.Duration
}

func (p *fakePanel) Open(d time.Duration)  { p.open, p.slide = true, d }
func (p *fakePanel) Close(d time.Duration) { p.open, p.slide = false, d }

func TestToggleLabelAndAria(t *testing.T) {
	btn := &fakeButton{label: "Video Transcript"}
	panel := &fakePanel{}
	blocks := NewBinder().Rebind([]Binding{{Button: btn, Panel: panel}})
	if len(blocks) != 1 {
		t.Fatalf("bound %d blocks, want 1", len(blocks))
	}

	btn.click()
	if btn.label != "Hide Transcript" {
		t.Errorf("label = %q, want %q", btn.label, "Hide Transcript")
	}
	if !btn.expanded || !panel.open || !blocks[0].Expanded() {
		t.Error("expected expanded after first click")
	}
	if panel.slide != DefaultSlide {
		t.Errorf("slide = %v, want %v", panel.slide, DefaultSlide)
	}

	btn.click()
	if btn.label != "Video Transcript" {
		t.Errorf("label = %q, want %q", btn.label, "Video Transcript")
	}
	if btn.expanded || panel.open {
		t.Error("expected collapsed after second click")
	}
}

func TestToggleReplacesFirstOccurrenceOnly(t *testing.T) {
	btn := &fakeButton{label: "Video Video"}
	NewBinder().Rebind([]Binding{{Button: btn, Panel: &fakePanel{}}})
	btn.click()
	if btn.label != "Hide Video" {
		t.Errorf("label = %q, want %q", btn.label, "Hide Video")
	}
}

func TestRebindIsIdempotent(t *testing.T) {
	b := NewBinder()
	btn := &fakeButton{label: "Video Transcript"}
	panel := &fakePanel{}
	pairs := []Binding{{Button: btn, Panel: panel}}

	b.Rebind(pairs)
	if got := b.Rebind(pairs); len(got) != 0 {
		t.Errorf("second rebind bound %d blocks, want 0", len(got))
	}
	if len(btn.clicks) != 1 {
		t.Fatalf("click handlers = %d, want 1", len(btn.clicks))
	}

	// One click must expand, not toggle twice.
	btn.click()
	if !panel.open {
		t.Error("panel should be open after a single click")
	}
}

func TestRebindClonedMarkup(t *testing.T) {
	b := NewBinder()
	first := &fakeButton{label: "Video Transcript"}
	b.Rebind([]Binding{{Button: first, Panel: &fakePanel{}}})

	clone := &fakeButton{label: "Video Transcript"}
	got := b.Rebind([]Binding{
		{Button: first, Panel: &fakePanel{}},
		{Button: clone, Panel: &fakePanel{}},
		{Button: &fakeButton{}, Panel: nil},
	})
	if len(got) != 1 {
		t.Fatalf("bound %d blocks, want 1", len(got))
	}
	if len(b.Blocks()) != 2 {
		t.Errorf("total blocks = %d, want 2", len(b.Blocks()))
	}
	if clone.expanded {
		t.Error("new block must start collapsed")
	}
}
