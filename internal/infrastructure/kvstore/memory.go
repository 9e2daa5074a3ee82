package kvstore

import (
	"context"
	"strings"
	"sync"
)

const memoryUpdateRetries = 100

// MemoryStore keeps everything in a map guarded by one lock. It backs tests
// and single-process development runs. Every write bumps a per-key version,
// which Update uses the way WATCH is used on Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string][]byte
	versions map[string]uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:     make(map[string][]byte),
		versions: make(map[string]uint64),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(v), nil
}

func (s *MemoryStore) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if v, ok := s.data[k]; ok {
			out[k] = clone(v)
		}
	}
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value any) error {
	b, err := encodeValue(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.applyLocked([]encodedMutation{{key: key, value: b}})
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	s.applyLocked([]encodedMutation{{key: key, delete: true}})
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for k, v := range s.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, Entry{Key: k, Value: clone(v)})
		}
	}
	return out, nil
}

func (s *MemoryStore) Apply(ctx context.Context, mutations ...Mutation) error {
	encoded, err := encodeMutations(mutations)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.applyLocked(encoded)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	for i := 0; i < memoryUpdateRetries; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.mu.RLock()
		current, found := s.data[key]
		current = clone(current)
		version := s.versions[key]
		s.mu.RUnlock()

		mutations, err := fn(current, found)
		if err != nil {
			return err
		}
		encoded, err := encodeMutations(mutations)
		if err != nil {
			return err
		}

		s.mu.Lock()
		if s.versions[key] != version {
			s.mu.Unlock()
			continue
		}
		s.applyLocked(encoded)
		s.mu.Unlock()
		return nil
	}
	return ErrConflict
}

func (s *MemoryStore) Close() error {
	return nil
}

// Len reports how many keys are stored, pointer records included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) applyLocked(mutations []encodedMutation) {
	for _, m := range mutations {
		s.versions[m.key]++
		if m.delete {
			delete(s.data, m.key)
			continue
		}
		s.data[m.key] = m.value
	}
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
