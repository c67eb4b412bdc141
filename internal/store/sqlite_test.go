package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/pipelinedeck/internal/domain"
	"github.com/waabox/pipelinedeck/internal/store"
)

func TestSQLiteKV_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, err := store.OpenSQLite(filepath.Join(t.TempDir(), "nested", "counters.db"))
	require.NoError(t, err)
	defer kv.Close()

	_, ok, err := kv.Get(ctx, "buildCount")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "buildCount", "1"))
	require.NoError(t, kv.Set(ctx, "buildCount", "2"))

	v, ok, err := kv.Get(ctx, "buildCount")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	require.NoError(t, kv.Delete(ctx, "buildCount"))
	_, ok, err = kv.Get(ctx, "buildCount")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteKV_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "counters.db")

	first, err := store.OpenSQLite(path)
	require.NoError(t, err)
	counters := store.NewCounterStore(first, nil)
	require.NoError(t, counters.Save(ctx, domain.Counters{Builds: 5, Scans: 5, Deployments: 5}))
	_, err = counters.Increment(ctx, domain.CounterScans)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := store.OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	got := store.NewCounterStore(second, nil).Load(ctx)
	assert.Equal(t, domain.Counters{Builds: 5, Scans: 6, Deployments: 5}, got)
}
