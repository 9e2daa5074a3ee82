package repository

import (
	"context"
	stderrors "errors"

	"localmarket/internal/infrastructure/kvstore"
	"localmarket/pkg/errors"
)

// storeError turns a record store failure into an AppError. AppErrors raised
// by mutators pass through untouched.
func storeError(err error, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.As(err); ok {
		return err
	}
	if stderrors.Is(err, kvstore.ErrConflict) {
		return errors.Conflict("The record was modified concurrently, please retry")
	}
	return errors.Internal(message, err)
}

func getRecord[T any](ctx context.Context, store kvstore.Store, key, resource string) (*T, error) {
	v, err := kvstore.GetJSON[T](ctx, store, key)
	if stderrors.Is(err, kvstore.ErrNotFound) {
		return nil, errors.NotFound(resource, err)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get "+resource, err)
	}
	return v, nil
}

// updateRecord runs fn on the stored value of key under the store's guard
// and writes the result back. A missing key fails with NotFound.
func updateRecord[T any](ctx context.Context, store kvstore.Store, key, resource string, fn func(*T) error) (*T, error) {
	var updated *T
	err := store.Update(ctx, key, func(current []byte, found bool) ([]kvstore.Mutation, error) {
		if !found {
			return nil, errors.NotFound(resource, nil)
		}
		v, err := kvstore.Decode[T](key, current)
		if err != nil {
			return nil, err
		}
		if err := fn(v); err != nil {
			return nil, err
		}
		updated = v
		return []kvstore.Mutation{kvstore.Put(key, v)}, nil
	})
	if err != nil {
		return nil, storeError(err, "Failed to update "+resource)
	}
	return updated, nil
}

// byID re-keys a GetMany result from store keys to entity ids.
func byID[T any](found map[string]*T, prefix string) map[string]*T {
	out := make(map[string]*T, len(found))
	for k, v := range found {
		out[k[len(prefix):]] = v
	}
	return out
}

func keysFor(ids []string, key func(string) string) []string {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			keys = append(keys, key(id))
		}
	}
	return keys
}
