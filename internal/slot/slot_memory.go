package slot

import (
	"context"
	"sync"
)

// MemSlot keeps values in process memory. Values are copied on the way in and
// out so callers cannot alias stored bytes.
type MemSlot struct {
	mu sync.RWMutex
	m  map[string][]byte

	// SetErr, when non-nil, is returned by every Set. Used to simulate a
	// medium that refuses writes.
	SetErr error
}

func NewMemSlot() *MemSlot {
	return &MemSlot{m: map[string][]byte{}}
}

func (s *MemSlot) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.m[key]
	return clone(v), ok, nil
}

func (s *MemSlot) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SetErr != nil {
		return s.SetErr
	}
	s.m[key] = clone(value)
	return nil
}

// Put seeds a raw value, bypassing SetErr.
func (s *MemSlot) Put(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = clone(value)
}

func (s *MemSlot) Ping(context.Context) error { return nil }

func (s *MemSlot) Close() error { return nil }
