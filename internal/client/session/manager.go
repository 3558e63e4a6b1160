// Package session owns the live authentication state of the client: the
// access token and the signed-in user. The state is persisted to a small
// settings database so that a session survives restarts.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/client/repositories/settings"
	"github.com/k4jlpg/inventory/internal/common"
	"github.com/k4jlpg/inventory/internal/dbx"
	"github.com/k4jlpg/inventory/internal/logging"
)

// Persisted settings keys.
const (
	KeyAccessToken = "access_token"
	KeyUserID      = "user_id"
	KeyUsername    = "username"
	KeyUserRole    = "user_role"
)

var allKeys = []string{KeyAccessToken, KeyUserID, KeyUsername, KeyUserRole}

// Manager holds the current session as an immutable snapshot that is swapped
// atomically, so readers never observe a half-written session.
type Manager struct {
	db    *sql.DB
	log   logging.Logger
	state atomic.Pointer[models.Session]
}

// Open opens the settings database at path and loads any persisted session.
func Open(ctx context.Context, path string, log logging.Logger) (*Manager, error) {
	db, err := dbx.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}
	m, err := NewManager(ctx, db, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

// NewManager prepares the settings table on db and loads the persisted
// session, if any.
func NewManager(ctx context.Context, db *sql.DB, log logging.Logger) (*Manager, error) {
	if log == nil {
		log = logging.Nop()
	}
	m := &Manager{db: db, log: log}
	m.state.Store(&models.Session{})

	if err := settings.CreateSchema(ctx, db); err != nil {
		return nil, err
	}
	if err := m.load(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) load(ctx context.Context) error {
	values, err := settings.NewSQLiteRepository(m.db).List(ctx)
	if err != nil {
		return err
	}
	s := &models.Session{
		AccessToken: values[KeyAccessToken],
		User: models.User{
			ID:       values[KeyUserID],
			Username: values[KeyUsername],
			Role:     models.Role(values[KeyUserRole]),
		},
	}
	m.state.Store(s)
	if s.Valid() {
		m.log.Debug(ctx, "restored session", "username", s.User.Username)
	}
	return nil
}

// Save persists token and user in one transaction and then replaces the
// in-memory session.
func (m *Manager) Save(ctx context.Context, token string, user models.User) error {
	values := map[string]string{
		KeyAccessToken: token,
		KeyUserID:      user.ID,
		KeyUsername:    user.Username,
		KeyUserRole:    string(user.Role),
	}
	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := settings.NewSQLiteRepository(tx)
		for _, k := range allKeys {
			if err := repo.Set(ctx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	m.state.Store(&models.Session{AccessToken: token, User: user})
	m.log.Info(ctx, "session saved", "username", user.Username, "role", string(user.Role))
	return nil
}

// Clear removes every persisted session key and resets the in-memory state.
// The in-memory state is reset even if the settings store fails.
func (m *Manager) Clear(ctx context.Context) error {
	m.state.Store(&models.Session{})

	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := settings.NewSQLiteRepository(tx)
		for _, k := range allKeys {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.log.Info(ctx, "session cleared")
	return nil
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() models.Session {
	return *m.state.Load()
}

func (m *Manager) HasValidSession() bool {
	return m.state.Load().Valid()
}

// CurrentUser returns the signed-in user, or nil without a valid session.
func (m *Manager) CurrentUser() *models.User {
	s := m.state.Load()
	if !s.Valid() {
		return nil
	}
	u := s.User
	return &u
}

// AccessToken returns the current token, or "" when there is none.
func (m *Manager) AccessToken() string {
	return m.state.Load().AccessToken
}

func (m *Manager) Close() error {
	return m.db.Close()
}
