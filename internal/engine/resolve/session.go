package resolve

import (
	"context"
	"errors"
	"sync"

	"github.com/anatolykoptev/go_video/internal/engine/video"
)

// ErrStaleResult is returned when a newer lookup started before this one finished.
var ErrStaleResult = errors.New("stale resolve result")

// Session tracks one editor's URL field. Each Update takes a sequence number;
// a result is committed only if no newer Update began meanwhile, so a slow
// fetch for an old URL never overwrites the descriptor of the current one.
type Session struct {
	r *Resolver

	mu      sync.Mutex
	seq     uint64
	manual  video.Descriptor
	fetched video.Descriptor // provider result of the last committed Update
	state   video.Descriptor
	err     error
}

// NewSession returns a session backed by r.
func NewSession(r *Resolver) *Session {
	return &Session{r: r}
}

// SetManual replaces the editor overrides and re-merges them over the last
// fetched descriptor, so a cleared override falls back to the provider value.
func (s *Session) SetManual(manual video.Descriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manual = manual
	if s.fetched.HasVideo() {
		s.state = video.Merge(manual, s.fetched)
	}
}

// Update resolves rawURL and commits the result unless superseded.
func (s *Session) Update(ctx context.Context, rawURL string) (video.Descriptor, error) {
	s.mu.Lock()
	s.seq++
	ticket := s.seq
	s.mu.Unlock()

	fetched, err := s.r.lookup(ctx, rawURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket != s.seq {
		return video.Descriptor{}, ErrStaleResult
	}
	s.fetched, s.err = fetched, err
	s.state = video.Descriptor{}
	if err == nil {
		s.state = video.Merge(s.manual, fetched)
	}
	return s.state, err
}

// Current returns the last committed descriptor and its error.
func (s *Session) Current() (video.Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.err
}
