// Package users persists local user accounts, including their stored
// credential secret, in the local cache file.
package users

import (
	"context"

	"github.com/k4jlpg/inventory/internal/client/models"
)

// Account is a user together with its stored credential secret.
type Account struct {
	models.User
	Secret string
}

// Repository describes persistence operations for local users.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, a *Account) error
	UpsertByUsername(ctx context.Context, a *Account) error
	UpdateSecret(ctx context.Context, id, secret string) error
	UpdateRole(ctx context.Context, id string, role models.Role) error
	DeleteByID(ctx context.Context, id string) error
}
