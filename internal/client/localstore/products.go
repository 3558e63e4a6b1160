package localstore

import (
	"context"
	"fmt"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/client/repositories/products"
	"github.com/k4jlpg/inventory/internal/client/repositories/syncmeta"
	"github.com/k4jlpg/inventory/internal/common"
	"github.com/k4jlpg/inventory/internal/dbx"
)

// ReplaceProductCache deletes every cached product, inserts items and updates
// the "products" sync timestamp, all in one transaction.
func (s *Store) ReplaceProductCache(ctx context.Context, items []models.Product) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := products.NewSQLiteRepository(tx)
		if err := repo.DeleteAll(ctx); err != nil {
			return err
		}
		for i := range items {
			p := items[i]
			if p.LowStockThreshold <= 0 {
				p.LowStockThreshold = models.DefaultLowStockThreshold
			}
			if err := repo.Insert(ctx, &p); err != nil {
				return err
			}
		}
		return syncmeta.NewSQLiteRepository(tx).Touch(ctx, ProductsSyncKey, s.now())
	})
	if err != nil {
		return fmt.Errorf("replace product cache: %w", withStorage(err))
	}
	s.log.Info(ctx, "products cached", "count", len(items))
	return nil
}

// CachedProducts returns every cached product ordered by name.
func (s *Store) CachedProducts(ctx context.Context) ([]models.Product, error) {
	return s.productRepo().GetAll(ctx)
}

func (s *Store) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.productRepo().GetByID(ctx, id)
}

// AddProduct stores a new product under a freshly generated id.
func (s *Store) AddProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	p := in.ToProduct(s.newID())
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.productRepo().Insert(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct applies patch to the stored product. Fields absent from the
// patch keep their current values.
func (s *Store) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrValidation)
	}

	var updated models.Product
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := products.NewSQLiteRepository(tx)
		cur, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		updated, err = patch.Apply(*cur)
		if err != nil {
			return err
		}
		return repo.Update(ctx, &updated)
	})
	if err != nil {
		return nil, withStorage(err)
	}
	return &updated, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.productRepo().DeleteByID(ctx, id)
}
