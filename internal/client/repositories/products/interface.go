package products

import (
	"context"

	"github.com/k4jlpg/inventory/internal/client/models"
)

// Repository describes persistence operations for cached products.
type Repository interface {
	// GetAll returns every product ordered by name ascending.
	GetAll(ctx context.Context) ([]models.Product, error)

	// GetByID returns a product or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Product, error)

	// Insert adds a new product row.
	Insert(ctx context.Context, p *models.Product) error

	// Update overwrites every column of an existing product.
	Update(ctx context.Context, p *models.Product) error

	// DeleteByID removes a product or returns common.ErrNotFound.
	DeleteByID(ctx context.Context, id string) error

	// DeleteAll removes every cached product.
	DeleteAll(ctx context.Context) error
}
