package player

import (
	"errors"
	"sort"

	"github.com/anatolykoptev/go_video/internal/engine/video"
	"github.com/google/uuid"
)

// ErrUnknownInstance is returned for operations on an id that is not mounted.
var ErrUnknownInstance = errors.New("unknown player instance")

// ErrDuplicateInstance is returned when mounting an id twice.
var ErrDuplicateInstance = errors.New("player instance already mounted")

// Instance is one embedded video on a page. It owns its descriptor copy.
type Instance struct {
	ID          string
	Descriptor  video.Descriptor
	Lightbox    bool
	state       State
	savedOffset float64
	player      Player
	surface     Surface
	width       int // last width passed to Resize; 0 = surface width
	loadedSent  bool
}

// State returns the current playback state.
func (in *Instance) State() State { return in.state }

// SavedOffset is the playback position restored on the next resume.
func (in *Instance) SavedOffset() float64 { return in.savedOffset }

// Width is the wrapper width the layout is sized from.
func (in *Instance) Width() int {
	if in.width > 0 || in.surface == nil {
		return in.width
	}
	return in.surface.Width()
}

// Player returns the provider player, nil before the first click.
func (in *Instance) Player() Player { return in.player }

// Registry maps instance ids to instances.
type Registry struct {
	items map[string]*Instance
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*Instance)}
}

// Add stores a new instance in the Thumbnail state. An empty id gets a
// random one.
func (r *Registry) Add(id string, d video.Descriptor, s Surface, lightbox bool) (*Instance, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if _, ok := r.items[id]; ok {
		return nil, ErrDuplicateInstance
	}
	in := &Instance{ID: id, Descriptor: d, Lightbox: lightbox, surface: s}
	r.items[id] = in
	return in, nil
}

// Get looks an instance up.
func (r *Registry) Get(id string) (*Instance, bool) {
	in, ok := r.items[id]
	return in, ok
}

// Remove drops an instance.
func (r *Registry) Remove(id string) error {
	if _, ok := r.items[id]; !ok {
		return ErrUnknownInstance
	}
	delete(r.items, id)
	return nil
}

// Clear drops every instance.
func (r *Registry) Clear() {
	clear(r.items)
}

// Len returns the number of mounted instances.
func (r *Registry) Len() int { return len(r.items) }

// IDs returns mounted ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
