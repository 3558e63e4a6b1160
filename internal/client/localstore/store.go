// Package localstore is the durable, file-backed cache of the inventory
// client. It owns the SQLite cache file: schema migration, seeding, the
// wholesale product cache replace, and local CRUD over products and users.
package localstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/k4jlpg/inventory/internal/client/migrations"
	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/client/repositories/products"
	"github.com/k4jlpg/inventory/internal/client/repositories/syncmeta"
	"github.com/k4jlpg/inventory/internal/client/repositories/users"
	"github.com/k4jlpg/inventory/internal/common"
	"github.com/k4jlpg/inventory/internal/dbx"
	"github.com/k4jlpg/inventory/internal/logging"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// ProductsSyncKey is the sync_metadata key updated by ReplaceProductCache.
const ProductsSyncKey = "products"

type seedUser struct {
	id, username, secret string
	role                 models.Role
}

var seedUsers = []seedUser{
	{id: "admin", username: "admin", secret: "admin123", role: models.RoleAdmin},
	{id: "staff1", username: "staff", secret: "staff123", role: models.RoleStaff},
}

// Store is the Local Store. It is safe for concurrent use; all access goes
// through a single *sql.DB pool.
type Store struct {
	db              *sql.DB
	log             logging.Logger
	hashCredentials bool
	now             func() time.Time
	newID           func() string
}

type Option func(*Store)

// WithLogger sets the logger used for store events.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithHashedCredentials makes newly written user secrets argon2id hashed.
func WithHashedCredentials(on bool) Option {
	return func(s *Store) { s.hashCredentials = on }
}

// WithClock overrides the time source used for sync bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New wraps an already opened database handle.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:    db,
		log:   logging.Nop(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open opens (creating if needed) the cache file at path.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	db, err := dbx.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	return New(db, opts...), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Initialize migrates the schema and seeds the default users when the user
// table is empty. It is safe to call on every startup.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.migrate(ctx); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := users.NewSQLiteRepository(tx)
		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		for _, su := range seedUsers {
			secret, err := s.storedSecret(su.secret)
			if err != nil {
				return err
			}
			a := &users.Account{
				User:   models.User{ID: su.id, Username: su.username, Role: su.role},
				Secret: secret,
			}
			if err := repo.Insert(ctx, a); err != nil {
				return err
			}
		}
		s.log.Info(ctx, "seeded default users", "count", len(seedUsers))
		return nil
	})
}

func (s *Store) migrate(ctx context.Context) error {
	provider, err := goose.NewProvider(database.DialectSQLite3, s.db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("%w: failed to prepare migrations: %w", common.ErrStorage, err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to migrate cache schema: %w", common.ErrStorage, err)
	}
	for _, r := range results {
		s.log.Debug(ctx, "applied migration", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

// LastSync returns the time the given entity cache was last replaced, or the
// zero time if it never was.
func (s *Store) LastSync(ctx context.Context, key string) (time.Time, error) {
	m, err := syncmeta.NewSQLiteRepository(s.db).Get(ctx, key)
	if err != nil {
		return time.Time{}, err
	}
	if m == nil {
		return time.Time{}, nil
	}
	return m.LastSync, nil
}

func (s *Store) productRepo() products.Repository {
	return products.NewSQLiteRepository(s.db)
}

func (s *Store) userRepo() users.Repository {
	return users.NewSQLiteRepository(s.db)
}
