// Package transcript handles the collapsible transcript attached to a video:
// the expand/collapse toggle and its idempotent binding, content
// sanitization, caption-to-HTML rendering and a Markdown rendition.
package transcript

import (
	"strings"
	"time"
)

// DefaultSlide is the panel open/close animation time.
const DefaultSlide = 300 * time.Millisecond

const (
	labelCollapsed = "Video"
	labelExpanded  = "Hide"
)

// Button is the transcript toggle control. Bound and MarkBound carry the
// per-element guard flag, so cloned markup gets its own binding while an
// already bound element is never bound twice.
type Button interface {
	Label() string
	SetLabel(string)
	SetExpanded(bool) // aria-expanded
	OnClick(func())
	Bound() bool
	MarkBound()
}

// Panel is the collapsible transcript region.
type Panel interface {
	Open(d time.Duration)
	Close(d time.Duration)
}

// Block pairs one button with its panel. It is independent of the player.
type Block struct {
	button   Button
	panel    Panel
	expanded bool
	slide    time.Duration
}

// Expanded reports whether the panel is open.
func (b *Block) Expanded() bool { return b.expanded }

// Toggle flips the block between collapsed and expanded, swapping the
// "Video"/"Hide" word in the button label and updating aria-expanded.
func (b *Block) Toggle() {
	if b.expanded {
		b.panel.Close(b.slide)
		b.button.SetLabel(strings.Replace(b.button.Label(), labelExpanded, labelCollapsed, 1))
	} else {
		b.panel.Open(b.slide)
		b.button.SetLabel(strings.Replace(b.button.Label(), labelCollapsed, labelExpanded, 1))
	}
	b.expanded = !b.expanded
	b.button.SetExpanded(b.expanded)
}

// Binding is one button/panel pair found in the page.
type Binding struct {
	Button Button
	Panel  Panel
}

// Binder attaches toggles to transcript buttons. Hosts call Rebind after
// any insertion or cloning of markup.
type Binder struct {
	Slide  time.Duration
	blocks []*Block
}

// NewBinder returns a binder using DefaultSlide.
func NewBinder() *Binder {
	return &Binder{Slide: DefaultSlide}
}

// Rebind binds every pair whose button is not bound yet and returns the
// blocks created by this call. Pairs without a panel are skipped.
func (b *Binder) Rebind(pairs []Binding) []*Block {
	var created []*Block
	for _, p := range pairs {
		if p.Button == nil || p.Panel == nil || p.Button.Bound() {
			continue
		}
		blk := &Block{button: p.Button, panel: p.Panel, slide: b.Slide}
		p.Button.MarkBound()
		p.Button.SetExpanded(false)
		p.Button.OnClick(blk.Toggle)
		created = append(created, blk)
		b.blocks = append(b.blocks, blk)
	}
	return created
}

// Blocks returns every block bound so far.
func (b *Binder) Blocks() []*Block { return b.blocks }
