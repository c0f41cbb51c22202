package cache

import (
	"context"
	"errors"
)

// Flusher empties a cache.
type Flusher interface {
	FlushAll(ctx context.Context) error
}

// Group flushes several caches together.
type Group []Flusher

// FlushAll flushes every cache in the group and joins their errors.
func (g Group) FlushAll(ctx context.Context) error {
	var errs []error
	for _, f := range g {
		if f == nil {
			continue
		}
		if err := f.FlushAll(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
