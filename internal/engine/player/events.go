package player

import "github.com/anatolykoptev/go_video/internal/engine/video"

// LoadedEvent is published once per instance, when its player first reports ready.
type LoadedEvent struct {
	InstanceID string
	Provider   video.Provider
	VideoID    string
	Descriptor video.Descriptor
	Player     Player
	Container  any
}

// Bus fans LoadedEvents out to subscribers in subscription order.
type Bus struct {
	next int
	subs map[int]func(LoadedEvent)
	ids  []int
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(LoadedEvent))}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(LoadedEvent)) (unsubscribe func()) {
	id := b.next
	b.next++
	b.subs[id] = fn
	b.ids = append(b.ids, id)
	return func() {
		delete(b.subs, id)
		for i, v := range b.ids {
			if v == id {
				b.ids = append(b.ids[:i], b.ids[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers ev to every current subscriber.
func (b *Bus) Publish(ev LoadedEvent) {
	ids := append([]int(nil), b.ids...)
	for _, id := range ids {
		if fn, ok := b.subs[id]; ok {
			fn(ev)
		}
	}
}
