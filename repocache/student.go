package repocache

import (
	"context"
	"time"

	"go.edulab.hu/coachdesk/cache"
	"go.edulab.hu/coachdesk/domain"
)

// Interface assertion to ensure StudentRepository implements domain.StudentRepository.
var _ domain.StudentRepository = (*StudentRepository)(nil)

// StudentRepository decorates a base student repository with caching.
type StudentRepository struct {
	base        domain.StudentRepository
	store       cache.Store
	invalidator *cache.Invalidator
	ttl         time.Duration
}

// NewStudentRepository wraps base with the cache-aside read path and
// write-time invalidation.
func NewStudentRepository(base domain.StudentRepository, store cache.Store, ttl time.Duration) *StudentRepository {
	return &StudentRepository{
		base:        base,
		store:       store,
		invalidator: cache.NewInvalidator(store),
		ttl:         ttl,
	}
}

// ListByOwner serves the owner-scoped roster through the cache.
func (r *StudentRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Student, error) {
	return cache.Fetch(ctx, r.store, cache.StudentListKey(ownerID), r.ttl, func(ctx context.Context) ([]*domain.Student, error) {
		return r.base.ListByOwner(ctx, ownerID)
	})
}

// GetByID serves a single student through the cache. The key carries no owner
// scope; see the repository contract in domain.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	return cache.Fetch(ctx, r.store, cache.StudentKey(id), r.ttl, func(ctx context.Context) (*domain.Student, error) {
		return r.base.GetByID(ctx, id)
	})
}

// GetByPhoneNumber is a login-path lookup and is deliberately uncached:
// a stale passkey hash must never satisfy a guardian login.
func (r *StudentRepository) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Student, error) {
	return r.base.GetByPhoneNumber(ctx, phoneNumber)
}

// Create inserts through the base repository, then drops the owner's list key.
func (r *StudentRepository) Create(ctx context.Context, ownerID string, fields map[string]any) (*domain.Student, error) {
	student, err := r.base.Create(ctx, ownerID, fields)
	if err != nil {
		return nil, err
	}
	r.invalidator.Invalidate(ctx, cache.StudentListKey(ownerID))
	return student, nil
}

// Update patches through the base repository, then drops the detail key.
// The patch is id-only, so the owning account's list entry self-heals at TTL.
func (r *StudentRepository) Update(ctx context.Context, id string, patch map[string]any) error {
	if err := r.base.Update(ctx, id, patch); err != nil {
		return err
	}
	r.invalidator.Invalidate(ctx, cache.StudentKey(id))
	return nil
}

// Delete removes through the base repository, then drops both keys.
func (r *StudentRepository) Delete(ctx context.Context, id, ownerID string) error {
	if err := r.base.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	r.invalidator.Invalidate(ctx, cache.StudentKey(id), cache.StudentListKey(ownerID))
	return nil
}
