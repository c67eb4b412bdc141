package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/pipelinedeck/internal/domain"
	"github.com/waabox/pipelinedeck/internal/store"
)

// failingKV errors on every call.
type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}
func (failingKV) Set(context.Context, string, string) error { return errors.New("disk gone") }
func (failingKV) Delete(context.Context, string) error { return errors.New("disk gone") }
func (failingKV) Close() error { return nil }

func TestCounterStore_LoadEmptyIsZero(t *testing.T) {
	s := store.NewCounterStore(store.NewMemoryKV(), nil)

	got := s.Load(context.Background())

	assert.Equal(t, domain.Counters{}, got)
}

func TestCounterStore_LoadReadsStorageKeys(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "buildCount", "12"))
	require.NoError(t, kv.Set(ctx, "scanCount", "7"))
	require.NoError(t, kv.Set(ctx, "deployCount", "3"))

	got := store.NewCounterStore(kv, nil).Load(ctx)

	assert.Equal(t, domain.Counters{Builds: 12, Scans: 7, Deployments: 3}, got)
}

func TestCounterStore_LoadTreatsMalformedAsAbsent(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "buildCount", "not-a-number"))
	require.NoError(t, kv.Set(ctx, "scanCount", "-4"))
	require.NoError(t, kv.Set(ctx, "deployCount", " 9 "))

	got := store.NewCounterStore(kv, nil).Load(ctx)

	assert.Equal(t, domain.Counters{Builds: 0, Scans: 0, Deployments: 9}, got)
}

func TestCounterStore_LoadNeverFails(t *testing.T) {
	got := store.NewCounterStore(failingKV{}, nil).Load(context.Background())
	assert.Equal(t, domain.Counters{}, got)
}

func TestCounterStore_SaveWritesDecimalStrings(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	s := store.NewCounterStore(kv, nil)

	require.NoError(t, s.Save(ctx, domain.Counters{Builds: 5, Scans: 10, Deployments: 150}))

	for key, want := range map[string]string{"buildCount": "5", "scanCount": "10", "deployCount": "150"} {
		v, ok, err := kv.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok, "expected %s to be persisted", key)
		assert.Equal(t, want, v)
	}
	assert.Equal(t, domain.Counters{Builds: 5, Scans: 10, Deployments: 150}, s.Snapshot())
}

func TestCounterStore_IncrementNTimesAddsN(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	s := store.NewCounterStore(kv, nil)
	require.NoError(t, s.Save(ctx, domain.Counters{Builds: 40}))

	for i := 0; i < 25; i++ {
		_, err := s.Increment(ctx, domain.CounterBuilds)
		require.NoError(t, err)
	}

	assert.Equal(t, 65, s.Snapshot().Builds)
	assert.Equal(t, 65, store.NewCounterStore(kv, nil).Load(ctx).Builds)
}

func TestCounterStore_IncrementIsIndependentPerCounter(t *testing.T) {
	ctx := context.Background()
	s := store.NewCounterStore(store.NewMemoryKV(), nil)

	v, err := s.Increment(ctx, domain.CounterDeployments)
	require.NoError(t, err)

	assert.Equal(t, 1, v)
	assert.Equal(t, domain.Counters{Deployments: 1}, s.Snapshot())
}

func TestCounterStore_IncrementUnknownCounter(t *testing.T) {
	s := store.NewCounterStore(store.NewMemoryKV(), nil)

	_, err := s.Increment(context.Background(), domain.CounterName("widgets"))

	assert.ErrorIs(t, err, domain.ErrUnknownCounter)
}

func TestCounterStore_IncrementAdvancesModelWhenWriteFails(t *testing.T) {
	s := store.NewCounterStore(failingKV{}, nil)

	v, err := s.Increment(context.Background(), domain.CounterScans)

	assert.Error(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, s.Snapshot().Scans)
}

func TestCounterStore_ResetClearsStorage(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	s := store.NewCounterStore(kv, nil)
	require.NoError(t, s.Save(ctx, domain.Counters{Builds: 1, Scans: 2, Deployments: 3}))

	require.NoError(t, s.Reset(ctx))

	_, ok, err := kv.Get(ctx, "buildCount")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, domain.Counters{}, s.Snapshot())
}
