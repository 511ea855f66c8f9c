package repocache

import (
	"context"
	"time"

	"go.edulab.hu/coachdesk/cache"
	"go.edulab.hu/coachdesk/domain"
)

// Interface assertion to ensure BatchRepository implements domain.BatchRepository.
var _ domain.BatchRepository = (*BatchRepository)(nil)

// BatchRepository decorates a base batch repository with caching.
type BatchRepository struct {
	base        domain.BatchRepository
	store       cache.Store
	invalidator *cache.Invalidator
	ttl         time.Duration
}

// NewBatchRepository wraps base with the cache-aside read path and
// write-time invalidation.
func NewBatchRepository(base domain.BatchRepository, store cache.Store, ttl time.Duration) *BatchRepository {
	return &BatchRepository{
		base:        base,
		store:       store,
		invalidator: cache.NewInvalidator(store),
		ttl:         ttl,
	}
}

// ListByOwner serves the owner-scoped batch list through the cache.
func (r *BatchRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Batch, error) {
	return cache.Fetch(ctx, r.store, cache.BatchListKey(ownerID), r.ttl, func(ctx context.Context) ([]*domain.Batch, error) {
		return r.base.ListByOwner(ctx, ownerID)
	})
}

// GetByID serves a single batch through the cache.
func (r *BatchRepository) GetByID(ctx context.Context, id string) (*domain.Batch, error) {
	return cache.Fetch(ctx, r.store, cache.BatchKey(id), r.ttl, func(ctx context.Context) (*domain.Batch, error) {
		return r.base.GetByID(ctx, id)
	})
}

// Create inserts through the base repository, then drops the owner's list key
// so the next list read reloads fresh.
func (r *BatchRepository) Create(ctx context.Context, ownerID string, fields map[string]any) (*domain.Batch, error) {
	batch, err := r.base.Create(ctx, ownerID, fields)
	if err != nil {
		return nil, err
	}
	r.invalidator.Invalidate(ctx, cache.BatchListKey(ownerID))
	return batch, nil
}

// Update patches through the base repository, then drops both the detail key
// and the owner's list key.
func (r *BatchRepository) Update(ctx context.Context, id, ownerID string, patch map[string]any) error {
	if err := r.base.Update(ctx, id, ownerID, patch); err != nil {
		return err
	}
	r.invalidator.Invalidate(ctx, cache.BatchKey(id), cache.BatchListKey(ownerID))
	return nil
}

// Delete removes through the base repository, then drops both keys.
func (r *BatchRepository) Delete(ctx context.Context, id, ownerID string) error {
	if err := r.base.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	r.invalidator.Invalidate(ctx, cache.BatchKey(id), cache.BatchListKey(ownerID))
	return nil
}
