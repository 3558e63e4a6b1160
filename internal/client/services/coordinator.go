// Package services contains the Sync Coordinator of the inventory client: the
// policy layer that decides, per operation, whether to use the remote service
// or the local store and that turns every outcome into a Result envelope.
//
// Reads prefer freshness: products are fetched remotely when the service is
// reachable and the cache is replaced wholesale, with the cache as fallback.
// Writes are local-first: product and user mutations go to the local store
// only, and the remote service is contacted for sign-in, sign-up, session
// checks and remote initialization.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/k4jlpg/inventory/internal/client/client"
	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/client/netcheck"
	"github.com/k4jlpg/inventory/internal/common"
	"github.com/k4jlpg/inventory/internal/logging"
)

// LocalStore is the subset of localstore.Store the Coordinator uses.
type LocalStore interface {
	Initialize(ctx context.Context) error
	ReplaceProductCache(ctx context.Context, items []models.Product) error
	CachedProducts(ctx context.Context) ([]models.Product, error)
	ProductByID(ctx context.Context, id string) (*models.Product, error)
	AddProduct(ctx context.Context, in models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AuthenticateUser(ctx context.Context, username, secret string) (*models.User, error)
	AddUser(ctx context.Context, username, secret string, role models.Role) (*models.User, error)
	MirrorUser(ctx context.Context, u models.User, secret string) error
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	UserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	LastSync(ctx context.Context, key string) (time.Time, error)
}

// Sessions is the subset of session.Manager the Coordinator uses.
type Sessions interface {
	Save(ctx context.Context, token string, user models.User) error
	Clear(ctx context.Context) error
	AccessToken() string
	CurrentUser() *models.User
}

// Coordinator implements the offline-first policy. It is safe for concurrent
// use; every operation may be called from its own goroutine.
type Coordinator struct {
	store    LocalStore
	remote   client.Client
	checker  netcheck.Checker
	sessions Sessions
	log      logging.Logger
}

// New returns a Coordinator wired to its collaborators.
func New(store LocalStore, remote client.Client, checker netcheck.Checker, sessions Sessions, log logging.Logger) *Coordinator {
	if log == nil {
		log = logging.Nop()
	}
	return &Coordinator{
		store:    store,
		remote:   remote,
		checker:  checker,
		sessions: sessions,
		log:      log,
	}
}

// Initialize prepares the local store (schema and seed users).
func (c *Coordinator) Initialize(ctx context.Context) Result[struct{}] {
	if err := c.store.Initialize(ctx); err != nil {
		c.log.Error(ctx, "local store initialization failed", "error", err)
		return Fail[struct{}]("Failed to initialize local database: " + describe(err))
	}
	return Ok(struct{}{})
}

// describe turns an error into text fit for display.
func describe(err error) string {
	msg := client.Message(err)
	for _, prefix := range []error{common.ErrValidation, common.ErrStorage} {
		msg = strings.TrimPrefix(msg, prefix.Error()+": ")
	}
	return msg
}

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}
