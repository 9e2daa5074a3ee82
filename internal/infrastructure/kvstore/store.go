// Package kvstore is the record store every repository persists through: a
// flat string-keyed namespace of JSON values with point reads, prefix scans,
// atomic multi-key batches and a guarded read-modify-write.
//
// Tables and secondary indexes are conventions over key names (see keys.go).
// A pointer record such as listings:by-seller:{sellerID}:{listingID} holds
// only the listing id; callers resolve it with ScanPrefix followed by GetMany.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get when the key is absent.
	ErrNotFound = errors.New("kvstore: key not found")

	// ErrConflict is returned by Update when the guarded key kept changing
	// underneath the caller and the backend gave up retrying.
	ErrConflict = errors.New("kvstore: concurrent modification")
)

type Entry struct {
	Key   string
	Value []byte
}

// Mutation is one write or delete inside Apply or an Update.
// Value is stored as-is when it is a []byte, JSON-encoded otherwise.
type Mutation struct {
	Key    string
	Value  any
	Delete bool
}

// UpdateFunc receives the current value of the guarded key (found reports
// whether it exists) and returns the mutations to commit atomically with the
// guard. Backends may call it more than once, so it must not have side
// effects. It may read other keys through the store; only the guarded key is
// protected against concurrent writers.
type UpdateFunc func(current []byte, found bool) ([]Mutation, error)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMany omits absent keys from the result.
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value any) error
	// Delete is a no-op for an absent key.
	Delete(ctx context.Context, key string) error
	// ScanPrefix returns every entry whose key starts with prefix, in no
	// particular order.
	ScanPrefix(ctx context.Context, prefix string) ([]Entry, error)
	// Apply commits all mutations or none of them.
	Apply(ctx context.Context, mutations ...Mutation) error
	// Update commits fn's mutations only if key was not modified between
	// the read and the commit.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}

func Put(key string, value any) Mutation {
	return Mutation{Key: key, Value: value}
}

func Del(key string) Mutation {
	return Mutation{Key: key, Delete: true}
}

func encodeValue(v any) ([]byte, error) {
	switch val := v.(type) {
	case []byte:
		out := make([]byte, len(val))
		copy(out, val)
		return out, nil
	case json.RawMessage:
		out := make([]byte, len(val))
		copy(out, val)
		return out, nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("kvstore: encode value: %w", err)
		}
		return b, nil
	}
}

type encodedMutation struct {
	key    string
	value  []byte
	delete bool
}

func encodeMutations(mutations []Mutation) ([]encodedMutation, error) {
	out := make([]encodedMutation, 0, len(mutations))
	for _, m := range mutations {
		if m.Key == "" {
			return nil, errors.New("kvstore: mutation with empty key")
		}
		if m.Delete {
			out = append(out, encodedMutation{key: m.Key, delete: true})
			continue
		}
		b, err := encodeValue(m.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, encodedMutation{key: m.Key, value: b})
	}
	return out, nil
}
