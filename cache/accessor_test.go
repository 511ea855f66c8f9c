package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store with injectable failures.
type fakeStore struct {
	mu   sync.Mutex
	data map[string][]byte

	getErr error
	setErr error
	delErr error

	gets int
	sets int
	dels int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.getErr != nil {
		return nil, s.getErr
	}
	raw, ok := s.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return raw, nil
}

func (s *fakeStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
}

func (s *fakeStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dels++
	if s.delErr != nil {
		return s.delErr
	}
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

type payload struct {
	Name string `json:"name"`
}

func TestFetch_MissLoadsAndPopulates(t *testing.T) {
	store := newFakeStore()
	loaderCalls := 0

	got, err := Fetch(context.Background(), store, "k", time.Hour, func(context.Context) (payload, error) {
		loaderCalls++
		return payload{Name: "Morning"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Morning", got.Name)
	assert.Equal(t, 1, loaderCalls)

	// The value is now cached; a second fetch must not hit the loader.
	got, err = Fetch(context.Background(), store, "k", time.Hour, func(context.Context) (payload, error) {
		loaderCalls++
		return payload{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Morning", got.Name)
	assert.Equal(t, 1, loaderCalls)
}

func TestFetch_HitSkipsLoader(t *testing.T) {
	store := newFakeStore()
	raw, err := json.Marshal(payload{Name: "Evening"})
	require.NoError(t, err)
	store.data["k"] = raw

	got, err := Fetch(context.Background(), store, "k", time.Hour, func(context.Context) (payload, error) {
		t.Fatal("loader must not run on a cache hit")
		return payload{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Evening", got.Name)
}

func TestFetch_BackendErrorIsAMiss(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("connection refused")

	got, err := Fetch(context.Background(), store, "k", time.Hour, func(context.Context) (payload, error) {
		return payload{Name: "fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Name)
}

func TestFetch_LoaderErrorPropagatesUncached(t *testing.T) {
	store := newFakeStore()
	sentinel := errors.New("not found")

	_, err := Fetch(context.Background(), store, "k", time.Hour, func(context.Context) (payload, error) {
		return payload{}, sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	// No negative result may be cached.
	assert.Equal(t, 0, store.sets)
	assert.Empty(t, store.data)
}

func TestFetch_SetFailureIsSwallowed(t *testing.T) {
	store := newFakeStore()
	store.setErr = errors.New("write timeout")

	got, err := Fetch(context.Background(), store, "k", time.Hour, func(context.Context) (payload, error) {
		return payload{Name: "still served"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "still served", got.Name)
}

func TestFetch_UndecodableEntryReloads(t *testing.T) {
	store := newFakeStore()
	store.data["k"] = []byte("{not json")

	got, err := Fetch(context.Background(), store, "k", time.Hour, func(context.Context) (payload, error) {
		return payload{Name: "reloaded"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "reloaded", got.Name)

	// The bad entry was replaced with a fresh one.
	var cached payload
	require.NoError(t, json.Unmarshal(store.data["k"], &cached))
	assert.Equal(t, "reloaded", cached.Name)
}

func TestFetch_EverythingFailingStillServesReads(t *testing.T) {
	// Fault injection: every cache call fails for the whole run. All reads
	// must still succeed off the source of truth.
	store := newFakeStore()
	store.getErr = errors.New("down")
	store.setErr = errors.New("down")
	store.delErr = errors.New("down")

	for i := 0; i < 20; i++ {
		got, err := Fetch(context.Background(), store, "k", time.Hour, func(context.Context) (payload, error) {
			return payload{Name: "degraded but correct"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "degraded but correct", got.Name)
	}
}

func TestInvalidator_DeletesKeys(t *testing.T) {
	store := newFakeStore()
	store.data["a"] = []byte(`1`)
	store.data["b"] = []byte(`2`)
	store.data["c"] = []byte(`3`)

	NewInvalidator(store).Invalidate(context.Background(), "a", "b")

	assert.NotContains(t, store.data, "a")
	assert.NotContains(t, store.data, "b")
	assert.Contains(t, store.data, "c")
}

func TestInvalidator_FailureIsWarningOnly(t *testing.T) {
	store := newFakeStore()
	store.delErr = errors.New("down")

	// Must not panic or propagate; the mutation already committed.
	NewInvalidator(store).Invalidate(context.Background(), "a")
	assert.Equal(t, 1, store.dels)
}

func TestInvalidator_NoKeysIsANoOp(t *testing.T) {
	store := newFakeStore()
	NewInvalidator(store).Invalidate(context.Background())
	assert.Equal(t, 0, store.dels)
}
