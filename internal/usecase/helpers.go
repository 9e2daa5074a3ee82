package usecase

import (
	"sort"
	"time"

	"localmarket/pkg/errors"
)

func isNotFound(err error) bool {
	return errors.Is(err, errors.CodeNotFound)
}

func sortByNewest[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}
