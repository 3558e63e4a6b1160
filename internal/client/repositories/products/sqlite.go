package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/common"
	"github.com/k4jlpg/inventory/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectColumns = `id, name, category, quantity, price, low_stock_threshold`

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM products ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select products: %w", common.ErrStorage, err)
	}
	defer rows.Close()

	result := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Quantity, &p.Price, &p.LowStockThreshold); err != nil {
			return nil, fmt.Errorf("%w: failed to scan product row: %w", common.ErrStorage, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate product rows: %w", common.ErrStorage, err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM products WHERE id = ?`, id)

	p := &models.Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Quantity, &p.Price, &p.LowStockThreshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get product %s: %w", common.ErrStorage, id, err)
	}
	return p, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, p *models.Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, category, quantity, price, low_stock_threshold, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, strftime('%s','now'))`,
		p.ID, p.Name, p.Category, p.Quantity, p.Price, p.LowStockThreshold)
	if err != nil {
		return fmt.Errorf("%w: failed to insert product %s: %w", common.ErrStorage, p.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, p *models.Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, category = ?, quantity = ?, price = ?, low_stock_threshold = ?,
		    last_updated = strftime('%s','now')
		WHERE id = ?`,
		p.Name, p.Category, p.Quantity, p.Price, p.LowStockThreshold, p.ID)
	if err != nil {
		return fmt.Errorf("%w: failed to update product %s: %w", common.ErrStorage, p.ID, err)
	}
	return expectOneRow(res, "product", p.ID)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete product %s: %w", common.ErrStorage, id, err)
	}
	return expectOneRow(res, "product", id)
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("%w: failed to clear products: %w", common.ErrStorage, err)
	}
	return nil
}

func expectOneRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get rows affected: %w", common.ErrStorage, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, common.ErrNotFound)
	}
	return nil
}
