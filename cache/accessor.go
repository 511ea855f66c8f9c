package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// LoaderFn loads the value from the source of truth on a cache miss.
type LoaderFn[T any] func(ctx context.Context) (T, error)

// Fetch implements the cache-aside read path. It tries the store first and
// returns the cached value on a hit without re-validating it (TTL is the sole
// staleness bound). On a miss — including any store failure, which is treated
// as a miss — it invokes the loader, writes the result back with the given
// TTL, and returns it. Loader errors propagate uncached, so "not found" is
// never negatively cached. A failed cache write is logged and swallowed: the
// read must succeed whenever the source of truth does.
func Fetch[T any](ctx context.Context, store Store, key string, ttl time.Duration, loader LoaderFn[T]) (T, error) {
	var zero T

	raw, err := store.Get(ctx, key)
	if err == nil {
		var cached T
		if unmarshalErr := json.Unmarshal(raw, &cached); unmarshalErr == nil {
			return cached, nil
		}
		// Undecodable entry: fall through and reload as if missed.
		log.Warn().Str("key", key).Msg("cache entry is not decodable, reloading")
	} else if !errors.Is(err, ErrMiss) {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed, treating as miss")
	}

	value, err := loader(ctx)
	if err != nil {
		return zero, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache value is not encodable, skipping set")
		return value, nil
	}
	if setErr := store.Set(ctx, key, encoded, ttl); setErr != nil {
		log.Warn().Err(setErr).Str("key", key).Msg("cache set failed")
	}

	return value, nil
}
