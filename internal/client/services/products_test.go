package services

import (
	"context"
	"testing"
	"time"

	"github.com/k4jlpg/inventory/internal/client/client"
	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cachedSet = []models.Product{
	{ID: "p1", Name: "Cylinder", Category: "Gas", Quantity: 50, Price: 1200, LowStockThreshold: 20},
	{ID: "p2", Name: "Burner", Category: "Stove", Quantity: 5, Price: 300, LowStockThreshold: 20},
}

func TestGetProducts_OnlineReplacesCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.ReplaceProductCache(ctx, cachedSet))

	fresh := []models.Product{{ID: "r1", Name: "LPG Hose", Category: "Accessories", Quantity: 50, Price: 150, LowStockThreshold: 20}}
	f.checker.online.Store(true)
	f.remote.ProductsRet = fresh

	res := f.coord.GetProducts(ctx)
	require.True(t, res.Success)
	assert.Empty(t, res.Message)
	assert.False(t, res.Stale())
	assert.Equal(t, fresh, res.Data)

	cached, err := f.store.CachedProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, cached)

	sync := f.coord.LastProductSync(ctx)
	require.True(t, sync.Success)
	assert.False(t, sync.Data.IsZero())
}

func TestGetProducts_RemoteFailureFallsBackToCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.ReplaceProductCache(ctx, cachedSet))
	want, err := f.store.CachedProducts(ctx)
	require.NoError(t, err)

	f.checker.online.Store(true)
	f.remote.ProductsErr = &client.APIError{StatusCode: 500, Message: "boom"}

	res := f.coord.GetProducts(ctx)
	require.True(t, res.Success)
	assert.Equal(t, want, res.Data)
	assert.Equal(t, "Using cached data (error: boom)", res.Message)
	assert.True(t, res.Stale())
}

func TestGetProducts_OfflineReadsCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.ReplaceProductCache(ctx, cachedSet))

	res := f.coord.GetProducts(ctx)
	require.True(t, res.Success)
	assert.Len(t, res.Data, 2)
	assert.Equal(t, "Using cached data (offline)", res.Message)
	assert.Empty(t, f.remote.calls)
}

func TestGetProducts_CacheFailureFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Close())

	f.checker.online.Store(true)
	f.remote.ProductsErr = client.ErrUnavailable

	res := f.coord.GetProducts(ctx)
	assert.False(t, res.Success)
	assert.Nil(t, res.Data)
	assert.Contains(t, res.Message, "Failed to load products:")
	assert.Contains(t, res.Message, "server unavailable")
}

func TestProductWritesAreLocalOnly(t *testing.T) {
	f := newFixture(t)
	f.checker.online.Store(true)
	ctx := context.Background()

	add := f.coord.AddProduct(ctx, models.ProductInput{Name: "Cylinder", Category: "Gas", Quantity: 50, Price: 1200})
	require.True(t, add.Success, add.Message)
	id := add.Data.ID

	q := 3
	upd := f.coord.UpdateProduct(ctx, id, models.ProductPatch{Quantity: &q})
	require.True(t, upd.Success, upd.Message)
	assert.Equal(t, models.Product{ID: id, Name: "Cylinder", Category: "Gas", Quantity: 3, Price: 1200, LowStockThreshold: 20}, *upd.Data)
	assert.True(t, upd.Data.IsLowStock())

	del := f.coord.DeleteProduct(ctx, id)
	require.True(t, del.Success)

	assert.Empty(t, f.remote.calls)
	assert.Zero(t, f.checker.calls.Load())
}

func TestProductWrites_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := f.coord.AddProduct(ctx, models.ProductInput{Name: "", Quantity: 1})
	assert.False(t, res.Success)
	assert.Equal(t, "Failed to add product: product name is required", res.Message)

	q := 1
	upd := f.coord.UpdateProduct(ctx, "missing", models.ProductPatch{Quantity: &q})
	assert.False(t, upd.Success)
	assert.Equal(t, "Product not found", upd.Message)

	del := f.coord.DeleteProduct(ctx, "missing")
	assert.False(t, del.Success)
	assert.Equal(t, "Product not found", del.Message)
}

func TestInitializeRemote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.remote.InitMsg = "Database initialized successfully with default users and products"
	res := f.coord.InitializeRemote(ctx)
	require.True(t, res.Success)
	assert.Equal(t, f.remote.InitMsg, res.Data)

	f.remote.InitErr = client.ErrUnavailable
	res = f.coord.InitializeRemote(ctx)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Failed to initialize database:")
}

func TestLastProductSync_Never(t *testing.T) {
	f := newFixture(t)

	res := f.coord.LastProductSync(context.Background())
	require.True(t, res.Success)
	assert.Equal(t, time.Time{}, res.Data)
}
