package client

import (
	"context"

	"github.com/k4jlpg/inventory/internal/client/models"
)

// AuthResult is what a successful sign-in returns.
type AuthResult struct {
	AccessToken string
	User        models.User
}

type Client interface {
	SignIn(ctx context.Context, username, password string) (*AuthResult, error)
	SignUp(ctx context.Context, username, password string, role models.Role) (*models.User, error)
	CheckSession(ctx context.Context, token string) (*models.User, error)
	GetProducts(ctx context.Context) ([]models.Product, error)
	AddProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GetUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	InitializeDefaults(ctx context.Context) (string, error)
}

// TokenSource yields the current session token, or "" without a session.
type TokenSource interface {
	AccessToken() string
}
