package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// runStoreContract exercises the behaviour every backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("GetMissingReturnsNotFound", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(context.Background(), "widgets:nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("SetOverwritesAndGetDecodes", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "widgets:1", widget{ID: "1", Quantity: 2}))
		require.NoError(t, s.Set(ctx, "widgets:1", widget{ID: "1", Quantity: 5}))

		w, err := GetJSON[widget](ctx, s, "widgets:1")
		require.NoError(t, err)
		assert.Equal(t, 5, w.Quantity)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "widgets:1", widget{ID: "1"}))
		require.NoError(t, s.Delete(ctx, "widgets:1"))
		require.NoError(t, s.Delete(ctx, "widgets:1"))

		_, err := s.Get(ctx, "widgets:1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("GetManyOmitsAbsentKeys", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "widgets:a", widget{ID: "a"}))
		require.NoError(t, s.Set(ctx, "widgets:b", widget{ID: "b"}))

		got, err := s.GetMany(ctx, []string{"widgets:a", "widgets:missing", "widgets:b"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Contains(t, got, "widgets:a")
		assert.Contains(t, got, "widgets:b")
	})

	t.Run("KeysAreCaseSensitive", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "users:AbC", widget{ID: "upper"}))
		require.NoError(t, s.Set(ctx, "users:abc", widget{ID: "lower"}))

		w, err := GetJSON[widget](ctx, s, "users:AbC")
		require.NoError(t, err)
		assert.Equal(t, "upper", w.ID)

		entries, err := s.ScanPrefix(ctx, "users:Ab")
		require.NoError(t, err)
		assert.Equal(t, []string{"users:AbC"}, entryKeys(entries))
	})

	t.Run("ScanPrefixMatchesOnlyPrefix", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "widgets:1", widget{ID: "1"}))
		require.NoError(t, s.Set(ctx, "widgets:by-owner:o1:1", "1"))
		require.NoError(t, s.Set(ctx, "widgets-extra:1", widget{ID: "x"}))
		require.NoError(t, s.Set(ctx, "gadgets:1", widget{ID: "g"}))

		entries, err := s.ScanPrefix(ctx, "widgets:")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"widgets:1", "widgets:by-owner:o1:1"}, entryKeys(entries))

		primaries, err := ScanPrimary[widget](ctx, s, "widgets:")
		require.NoError(t, err)
		require.Len(t, primaries, 1)
		assert.Equal(t, "1", primaries[0].ID)
	})

	t.Run("ScanPrefixTreatsGlobCharactersLiterally", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "odd:a*b:1", "x"))
		require.NoError(t, s.Set(ctx, "odd:aXb:1", "y"))
		require.NoError(t, s.Set(ctx, "odd:a_b:1", "z"))

		entries, err := s.ScanPrefix(ctx, "odd:a*b:")
		require.NoError(t, err)
		assert.Equal(t, []string{"odd:a*b:1"}, entryKeys(entries))
	})

	t.Run("ApplyWritesAndDeletesTogether", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "widgets:old", widget{ID: "old"}))
		require.NoError(t, s.Apply(ctx,
			Put("widgets:new", widget{ID: "new"}),
			Put("widgets:by-owner:o1:new", "new"),
			Del("widgets:old"),
		))

		_, err := s.Get(ctx, "widgets:old")
		assert.ErrorIs(t, err, ErrNotFound)

		resolved, err := ResolveIndex[widget](ctx, s, "widgets:by-owner:o1:", func(id string) string { return "widgets:" + id })
		require.NoError(t, err)
		require.Len(t, resolved, 1)
		assert.Equal(t, "new", resolved[0].ID)
	})

	t.Run("ResolveIndexSkipsDanglingPointers", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Apply(ctx,
			Put("widgets:1", widget{ID: "1"}),
			Put("widgets:by-owner:o1:1", "1"),
			Put("widgets:by-owner:o1:2", "2"),
		))

		resolved, err := ResolveIndex[widget](ctx, s, "widgets:by-owner:o1:", func(id string) string { return "widgets:" + id })
		require.NoError(t, err)
		require.Len(t, resolved, 1)
		assert.Equal(t, "1", resolved[0].ID)
	})

	t.Run("UpdateSeesMissingKey", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		err := s.Update(ctx, "widgets:fresh", func(current []byte, found bool) ([]Mutation, error) {
			assert.False(t, found)
			return []Mutation{Put("widgets:fresh", widget{ID: "fresh", Quantity: 1})}, nil
		})
		require.NoError(t, err)

		w, err := GetJSON[widget](ctx, s, "widgets:fresh")
		require.NoError(t, err)
		assert.Equal(t, 1, w.Quantity)
	})

	t.Run("UpdateErrorCommitsNothing", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		boom := errors.New("insufficient")

		require.NoError(t, s.Set(ctx, "widgets:1", widget{ID: "1", Quantity: 1}))
		err := s.Update(ctx, "widgets:1", func(current []byte, found bool) ([]Mutation, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)

		w, err := GetJSON[widget](ctx, s, "widgets:1")
		require.NoError(t, err)
		assert.Equal(t, 1, w.Quantity)
	})

	t.Run("UpdateMayReadOtherKeys", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Apply(ctx,
			Put("widgets:a", widget{ID: "a", Quantity: 2}),
			Put("widgets:b", widget{ID: "b", Quantity: 3}),
		))

		err := s.Update(ctx, "widgets:total", func(current []byte, found bool) ([]Mutation, error) {
			parts, err := ScanPrimary[widget](ctx, s, "widgets:")
			if err != nil {
				return nil, err
			}
			sum := 0
			for _, p := range parts {
				if p.ID != "total" {
					sum += p.Quantity
				}
			}
			return []Mutation{Put("widgets:total", widget{ID: "total", Quantity: sum})}, nil
		})
		require.NoError(t, err)

		w, err := GetJSON[widget](ctx, s, "widgets:total")
		require.NoError(t, err)
		assert.Equal(t, 5, w.Quantity)
	})

	t.Run("ConcurrentUpdatesDoNotLoseWrites", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		const workers = 8
		errSoldOut := errors.New("sold out")

		require.NoError(t, s.Set(ctx, "widgets:stock", widget{ID: "stock", Quantity: 5}))

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			success int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := s.Update(ctx, "widgets:stock", func(current []byte, found bool) ([]Mutation, error) {
					var w widget
					if err := json.Unmarshal(current, &w); err != nil {
						return nil, err
					}
					if w.Quantity == 0 {
						return nil, errSoldOut
					}
					w.Quantity--
					return []Mutation{Put("widgets:stock", w)}, nil
				})
				if err == nil {
					mu.Lock()
					success++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		w, err := GetJSON[widget](ctx, s, "widgets:stock")
		require.NoError(t, err)
		assert.Equal(t, 5-success, w.Quantity)
		assert.LessOrEqual(t, success, 5)
		assert.GreaterOrEqual(t, w.Quantity, 0)
	})
}

func entryKeys(entries []Entry) []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	sort.Strings(keys)
	return keys
}
