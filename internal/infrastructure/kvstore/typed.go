package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
)

func GetJSON[T any](ctx context.Context, s Store, key string) (*T, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return Decode[T](key, raw)
}

func Decode[T any](key string, raw []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("kvstore: decode %q: %w", key, err)
	}
	return &v, nil
}

// GetManyJSON returns the decoded values keyed by store key. Absent keys are
// missing from the map.
func GetManyJSON[T any](ctx context.Context, s Store, keys []string) (map[string]*T, error) {
	if len(keys) == 0 {
		return map[string]*T{}, nil
	}
	raw, err := s.GetMany(ctx, dedupe(keys))
	if err != nil {
		return nil, err
	}
	out := make(map[string]*T, len(raw))
	for k, b := range raw {
		v, err := Decode[T](k, b)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// ScanPrimary decodes every primary record under prefix and skips the
// pointer records that share it.
func ScanPrimary[T any](ctx context.Context, s Store, prefix string) ([]*T, error) {
	entries, err := s.ScanPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(entries))
	for _, e := range entries {
		if !IsPrimaryKey(prefix, e.Key) {
			continue
		}
		v, err := Decode[T](e.Key, e.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ScanAll decodes every entry under prefix.
func ScanAll[T any](ctx context.Context, s Store, prefix string) ([]*T, error) {
	entries, err := s.ScanPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(entries))
	for _, e := range entries {
		v, err := Decode[T](e.Key, e.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ScanIndex returns the ids held by the pointer records under indexPrefix.
func ScanIndex(ctx context.Context, s Store, indexPrefix string) ([]string, error) {
	entries, err := s.ScanPrefix(ctx, indexPrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		var id string
		if err := json.Unmarshal(e.Value, &id); err != nil {
			return nil, fmt.Errorf("kvstore: decode pointer %q: %w", e.Key, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ResolveIndex scans a pointer index and loads the primary records it points
// at with a single GetMany. Pointers whose primary record is gone are
// skipped.
func ResolveIndex[T any](ctx context.Context, s Store, indexPrefix string, primaryKey func(id string) string) ([]*T, error) {
	ids, err := ScanIndex(ctx, s, indexPrefix)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = primaryKey(id)
	}
	found, err := GetManyJSON[T](ctx, s, keys)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(found))
	for _, k := range keys {
		if v, ok := found[k]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
