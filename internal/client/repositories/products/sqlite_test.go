package products

import (
	"context"
	"database/sql"
	"testing"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price REAL NOT NULL,
  last_updated INTEGER,
  low_stock_threshold INTEGER NOT NULL DEFAULT 20
);`)
	require.NoError(t, err)
	return db
}

func TestInsertAndGetByID(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	p := &models.Product{ID: "p1", Name: "Cylinder", Category: "Gas", Quantity: 50, Price: 1200, LowStockThreshold: 20}
	require.NoError(t, r.Insert(ctx, p))

	got, err := r.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, *p, *got)
}

func TestGetByID_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetAll_OrderedByName(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	for _, p := range []models.Product{
		{ID: "3", Name: "O-ring", Category: "Acc", Quantity: 1, Price: 1, LowStockThreshold: 20},
		{ID: "1", Name: "Gas Clamp", Category: "Acc", Quantity: 1, Price: 1, LowStockThreshold: 20},
		{ID: "2", Name: "LPG Hose", Category: "Acc", Quantity: 1, Price: 1, LowStockThreshold: 20},
	} {
		p := p
		require.NoError(t, r.Insert(ctx, &p))
	}

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Gas Clamp", "LPG Hose", "O-ring"}, names)
}

func TestGetAll_EmptyIsNonNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	got, err := r.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestUpdate_SuccessAndNotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	p := &models.Product{ID: "p1", Name: "A", Category: "B", Quantity: 1, Price: 2, LowStockThreshold: 3}
	require.NoError(t, r.Insert(ctx, p))

	p.Quantity = 9
	p.LowStockThreshold = 5
	require.NoError(t, r.Update(ctx, p))

	got, err := r.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 9, got.Quantity)
	assert.Equal(t, 5, got.LowStockThreshold)

	err = r.Update(ctx, &models.Product{ID: "ghost", Name: "x", LowStockThreshold: 1})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteByID_SuccessAndNotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, &models.Product{ID: "x", Name: "x", Category: "c", LowStockThreshold: 1}))
	require.NoError(t, r.DeleteByID(ctx, "x"))

	err := r.DeleteByID(ctx, "x")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteAll(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, &models.Product{ID: "a", Name: "a", Category: "c", LowStockThreshold: 1}))
	require.NoError(t, r.Insert(ctx, &models.Product{ID: "b", Name: "b", Category: "c", LowStockThreshold: 1}))
	require.NoError(t, r.DeleteAll(ctx))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestErrorsWrappedAsStorage(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.GetAll(ctx)
	require.ErrorIs(t, err, common.ErrStorage)
	require.Contains(t, err.Error(), "failed to select products")

	_, err = r.GetByID(ctx, "p")
	require.ErrorIs(t, err, common.ErrStorage)

	err = r.Insert(ctx, &models.Product{ID: "p"})
	require.ErrorIs(t, err, common.ErrStorage)

	err = r.DeleteAll(ctx)
	require.ErrorIs(t, err, common.ErrStorage)
}
