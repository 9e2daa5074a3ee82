package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	redisScanCount     = 500
	redisMGetChunk     = 500
	redisUpdateRetries = 50
)

// RedisStore maps every record onto a plain Redis string under an optional
// namespace. Batches run in MULTI/EXEC; Update uses WATCH.
type RedisStore struct {
	rdb       *redis.Client
	namespace string
}

func NewRedisStore(rdb *redis.Client, namespace string) *RedisStore {
	return &RedisStore{
		rdb:       rdb,
		namespace: namespace,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, s.namespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return b, nil
}

func (s *RedisStore) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	for start := 0; start < len(keys); start += redisMGetChunk {
		end := min(start+redisMGetChunk, len(keys))
		chunk := keys[start:end]

		full := make([]string, len(chunk))
		for i, k := range chunk {
			full[i] = s.namespace + k
		}
		vals, err := s.rdb.MGet(ctx, full...).Result()
		if err != nil {
			return nil, fmt.Errorf("redis mget: %w", err)
		}
		for i, v := range vals {
			if str, ok := v.(string); ok {
				out[chunk[i]] = []byte(str)
			}
		}
	}
	return out, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value any) error {
	b, err := encodeValue(value)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.namespace+key, b, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.namespace+key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) ScanPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	match := escapeGlob(s.namespace+prefix) + "*"

	var keys []string
	iter := s.rdb.Scan(ctx, 0, match, redisScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.namespace))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan %q: %w", prefix, err)
	}

	// SCAN may return a key more than once.
	values, err := s.GetMany(ctx, dedupe(keys))
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(values))
	for k, v := range values {
		out = append(out, Entry{Key: k, Value: v})
	}
	return out, nil
}

func (s *RedisStore) Apply(ctx context.Context, mutations ...Mutation) error {
	encoded, err := encodeMutations(mutations)
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		s.queue(ctx, pipe, encoded)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis apply: %w", err)
	}
	return nil
}

func (s *RedisStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	full := s.namespace + key

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, full).Bytes()
		found := true
		if errors.Is(err, redis.Nil) {
			found = false
			current = nil
		} else if err != nil {
			return err
		}

		mutations, err := fn(current, found)
		if err != nil {
			return err
		}
		encoded, err := encodeMutations(mutations)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			s.queue(ctx, pipe, encoded)
			return nil
		})
		return err
	}

	for i := 0; i < redisUpdateRetries; i++ {
		err := s.rdb.Watch(ctx, txf, full)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrConflict
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) queue(ctx context.Context, pipe redis.Pipeliner, mutations []encodedMutation) {
	for _, m := range mutations {
		if m.delete {
			pipe.Del(ctx, s.namespace+m.key)
			continue
		}
		pipe.Set(ctx, s.namespace+m.key, m.value, 0)
	}
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
