package cache

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Invalidator drops cache entries superseded by a document-store write. It is
// called synchronously after the write is acknowledged and before the handler
// responds. A failed delete leaves the entry to expire at its TTL; the
// committed mutation stands either way, so failures are warnings, not errors.
type Invalidator struct {
	store Store
}

// NewInvalidator creates an Invalidator over the given store.
func NewInvalidator(store Store) *Invalidator {
	return &Invalidator{store: store}
}

// Invalidate deletes the given keys, best effort.
func (i *Invalidator) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := i.store.Del(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed, entries expire at TTL")
	}
}
