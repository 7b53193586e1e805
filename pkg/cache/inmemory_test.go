package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/models"
	"catalog/pkg/cache"
)

func TestInMemorySnapshotCache_FetchEmpty(t *testing.T) {
	c := cache.NewInMemorySnapshotCache(time.Hour)

	lookup := c.Fetch(context.Background())

	assert.Equal(t, cache.StateMiss, lookup.State)
}

func TestInMemorySnapshotCache_StoreAndFetch(t *testing.T) {
	c := cache.NewInMemorySnapshotCache(time.Hour)
	snapshot := []models.Product{
		{ID: "1", Name: "Laptop", Price: 1200.00},
		{ID: "2", Name: "Mouse", Price: 25.00},
	}

	require.NoError(t, c.Store(context.Background(), snapshot))

	lookup := c.Fetch(context.Background())
	require.Equal(t, cache.StateHit, lookup.State)
	assert.Equal(t, snapshot, lookup.Products)
}

func TestInMemorySnapshotCache_HitReturnsCopy(t *testing.T) {
	c := cache.NewInMemorySnapshotCache(time.Hour)
	require.NoError(t, c.Store(context.Background(), []models.Product{{ID: "1", Name: "Laptop", Price: 1200.00}}))

	first := c.Fetch(context.Background())
	require.Equal(t, cache.StateHit, first.State)
	first.Products[0].Name = "mutated"

	second := c.Fetch(context.Background())
	require.Equal(t, cache.StateHit, second.State)
	assert.Equal(t, "Laptop", second.Products[0].Name, "callers must not be able to corrupt the stored snapshot")
}

func TestInMemorySnapshotCache_Expiry(t *testing.T) {
	c := cache.NewInMemorySnapshotCache(10 * time.Millisecond)
	require.NoError(t, c.Store(context.Background(), []models.Product{{ID: "1", Name: "Laptop"}}))

	require.Equal(t, cache.StateHit, c.Fetch(context.Background()).State)

	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, cache.StateMiss, c.Fetch(context.Background()).State)
}

func TestInMemorySnapshotCache_Delete(t *testing.T) {
	c := cache.NewInMemorySnapshotCache(time.Hour)
	require.NoError(t, c.Store(context.Background(), []models.Product{{ID: "1", Name: "Laptop"}}))
	require.NoError(t, c.Delete(context.Background()))

	assert.Equal(t, cache.StateMiss, c.Fetch(context.Background()).State)
}

func TestInMemorySnapshotCache_OverwriteReplacesSnapshot(t *testing.T) {
	c := cache.NewInMemorySnapshotCache(time.Hour)
	require.NoError(t, c.Store(context.Background(), []models.Product{{ID: "1", Name: "Laptop"}}))
	require.NoError(t, c.Store(context.Background(), []models.Product{
		{ID: "1", Name: "Laptop"},
		{ID: "2", Name: "Widget"},
	}))

	lookup := c.Fetch(context.Background())
	require.Equal(t, cache.StateHit, lookup.State)
	assert.Len(t, lookup.Products, 2)
}
