package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is reported by Store.Get when the key is absent. Any other error
// means the backend itself failed; callers treat both as a miss.
var ErrMiss = errors.New("cache: miss")

// Store is the key-value cache contract. Values are opaque bytes; expiry is
// handled by the backend. The cache is a performance layer, never a source
// of truth, so implementations must not be load-bearing for correctness.
//
//go:generate mockgen -source=$GOFILE -destination=../mocks/mock_$GOPACKAGE/mock_$GOFILE -package=mock_$GOPACKAGE
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
