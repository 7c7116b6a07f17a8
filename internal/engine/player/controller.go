package player

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_video/internal/engine/video"
)

// DefaultFade is the thumbnail/overlay transition time.
const DefaultFade = 300 * time.Millisecond

// Controller runs the playback state machine for every mounted instance.
type Controller struct {
	registry  *Registry
	bus       *Bus
	factories map[video.Provider]Factory
	fade      time.Duration
	logger    *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithFactory registers the player factory for a provider.
func WithFactory(p video.Provider, f Factory) Option {
	return func(c *Controller) { c.factories[p] = f }
}

// WithFade overrides DefaultFade.
func WithFade(d time.Duration) Option {
	return func(c *Controller) { c.fade = d }
}

// WithBus shares an existing event bus.
func WithBus(b *Bus) Option {
	return func(c *Controller) { c.bus = b }
}

// WithLogger sets the logger; slog.Default() otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController returns a controller with an empty registry.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		registry:  NewRegistry(),
		bus:       NewBus(),
		factories: make(map[video.Provider]Factory),
		fade:      DefaultFade,
	}
	for _, o := range opts {
		o(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Bus returns the loaded-event bus.
func (c *Controller) Bus() *Bus { return c.bus }

// Registry exposes the instance map.
func (c *Controller) Registry() *Registry { return c.registry }

// Mount registers a new instance showing its thumbnail.
func (c *Controller) Mount(id string, d video.Descriptor, s Surface, lightbox bool) (*Instance, error) {
	in, err := c.registry.Add(id, d, s, lightbox)
	if err != nil {
		return nil, fmt.Errorf("mount %q: %w", id, err)
	}
	if s != nil {
		s.SetHeight(AspectHeight(s.Width()))
	}
	return in, nil
}

// Unmount forgets an instance. Its player is left to the host to dispose.
func (c *Controller) Unmount(id string) error {
	if err := c.registry.Remove(id); err != nil {
		return fmt.Errorf("unmount %q: %w", id, err)
	}
	return nil
}

// Instance returns a mounted instance.
func (c *Controller) Instance(id string) (*Instance, bool) {
	return c.registry.Get(id)
}

// Click handles a click on the thumbnail or overlay.
//
// Thumbnail starts loading a player; Paused and Ended resume the existing
// player from the saved offset. Loading and Playing ignore the click. A
// descriptor without provider, id or embed URL leaves the instance in
// Thumbnail and returns video.ErrMissingEmbedData.
func (c *Controller) Click(id string) error {
	in, ok := c.registry.Get(id)
	if !ok {
		return fmt.Errorf("click %q: %w", id, ErrUnknownInstance)
	}
	switch in.state {
	case StateThumbnail:
		return c.load(in)
	case StatePaused, StateEnded:
		c.resume(in)
	}
	return nil
}

func (c *Controller) load(in *Instance) error {
	if err := in.Descriptor.Validate(); err != nil {
		c.logger.Error("player: missing video data",
			slog.String("instance", in.ID), slog.String("provider", string(in.Descriptor.Provider)))
		return fmt.Errorf("click %q: %w", in.ID, err)
	}
	factory, ok := c.factories[in.Descriptor.Provider]
	if !ok {
		c.logger.Error("player: no factory for provider",
			slog.String("instance", in.ID), slog.String("provider", string(in.Descriptor.Provider)))
		return fmt.Errorf("click %q: no player for provider %q", in.ID, in.Descriptor.Provider)
	}

	in.state = StateLoading
	if in.surface != nil {
		in.surface.SetHeight(AspectHeight(in.Width()))
	}
	p, err := factory(in.Descriptor, in.surface)
	if err != nil {
		in.state = StateThumbnail
		c.logger.Error("player: create failed", slog.String("instance", in.ID), slog.Any("error", err))
		return fmt.Errorf("click %q: create player: %w", in.ID, err)
	}
	in.player = p

	id := in.ID
	for _, ev := range []Event{EventReady, EventPlay, EventPause, EventEnded, EventError} {
		p.On(ev, func(ev Event) { c.handle(id, ev) })
	}
	if in.surface != nil {
		in.surface.FadeThumbnail(c.fade, nil)
	}
	return nil
}

func (c *Controller) resume(in *Instance) {
	in.state = StatePlaying
	p, offset := in.player, in.savedOffset
	play := func() {
		if err := p.SeekTo(offset); err != nil {
			c.logger.Warn("player: seek failed", slog.String("instance", in.ID), slog.Any("error", err))
		}
		if err := p.Play(); err != nil {
			c.logger.Warn("player: play failed", slog.String("instance", in.ID), slog.Any("error", err))
		}
	}
	if in.surface == nil {
		play()
		return
	}
	in.surface.HideOverlay(c.fade, play)
}

// handle applies a provider event. Events for unmounted instances are dropped.
func (c *Controller) handle(id string, ev Event) {
	in, ok := c.registry.Get(id)
	if !ok {
		return
	}
	switch ev {
	case EventReady:
		if in.state == StateLoading {
			in.state = StatePlaying
		}
		c.publishLoaded(in)
	case EventPlay:
		switch in.state {
		case StateLoading:
			in.state = StatePlaying
			c.publishLoaded(in)
		case StatePaused, StateEnded:
			// Resumed from the provider's own controls underneath the overlay.
			in.state = StatePlaying
			if in.surface != nil {
				in.surface.HideOverlay(c.fade, nil)
			}
		}
	case EventPause:
		if in.state != StatePlaying {
			return
		}
		in.savedOffset = in.player.CurrentTime()
		in.state = StatePaused
		c.showOverlay(in)
	case EventEnded:
		if in.state != StatePlaying && in.state != StatePaused {
			return
		}
		in.savedOffset = 0
		in.state = StateEnded
		c.showOverlay(in)
	case EventError:
		c.logger.Warn("player: provider error",
			slog.String("instance", id), slog.String("state", in.state.String()))
	}
}

func (c *Controller) publishLoaded(in *Instance) {
	if in.loadedSent {
		return
	}
	in.loadedSent = true
	var container any
	if in.surface != nil {
		container = in.surface.Handle()
	}
	c.bus.Publish(LoadedEvent{
		InstanceID: in.ID,
		Provider:   in.Descriptor.Provider,
		VideoID:    in.Descriptor.VideoID,
		Descriptor: in.Descriptor,
		Player:     in.player,
		Container:  container,
	})
}

func (c *Controller) showOverlay(in *Instance) {
	if in.surface == nil {
		return
	}
	w := in.Width()
	in.surface.ShowOverlay(w, AspectHeight(w))
}

// Resize re-applies the 16:9 layout after the wrapper width changed. The
// width is kept so a later overlay lines up with the resized player.
func (c *Controller) Resize(id string, width int) error {
	in, ok := c.registry.Get(id)
	if !ok {
		return fmt.Errorf("resize %q: %w", id, ErrUnknownInstance)
	}
	in.width = width
	if in.surface == nil {
		return nil
	}
	h := AspectHeight(width)
	in.surface.SetHeight(h)
	if in.state.overlayVisible() {
		in.surface.ResizeOverlay(width, h)
	}
	return nil
}
