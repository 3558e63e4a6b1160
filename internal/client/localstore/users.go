package localstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/client/repositories/users"
	"github.com/k4jlpg/inventory/internal/common"
	"github.com/k4jlpg/inventory/internal/cryptox"
	"github.com/k4jlpg/inventory/internal/dbx"
)

// AuthenticateUser looks the user up by username and verifies the secret.
// A wrong secret and an unknown username both return common.ErrNotFound.
func (s *Store) AuthenticateUser(ctx context.Context, username, secret string) (*models.User, error) {
	a, err := s.userRepo().GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !cryptox.VerifyCredential(a.Secret, secret) {
		return nil, fmt.Errorf("user %q: %w", username, common.ErrNotFound)
	}
	u := a.User
	return &u, nil
}

// AddUser creates a local user with a generated id.
func (s *Store) AddUser(ctx context.Context, username, secret string, role models.Role) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || secret == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}
	role, err := models.ParseRole(string(role))
	if err != nil {
		return nil, err
	}
	stored, err := s.storedSecret(secret)
	if err != nil {
		return nil, err
	}
	a := &users.Account{
		User:   models.User{ID: s.newID(), Username: username, Role: role},
		Secret: stored,
	}
	if err := s.userRepo().Insert(ctx, a); err != nil {
		return nil, err
	}
	u := a.User
	return &u, nil
}

// MirrorUser stores a remotely authenticated user locally so that later
// sign-ins succeed offline. An existing row with the same username has its
// secret and role replaced.
func (s *Store) MirrorUser(ctx context.Context, u models.User, secret string) error {
	stored, err := s.storedSecret(secret)
	if err != nil {
		return err
	}
	id := u.ID
	if id == "" {
		id = s.newID()
	}
	a := &users.Account{
		User:   models.User{ID: id, Username: u.Username, Role: u.Role},
		Secret: stored,
	}
	return s.userRepo().UpsertByUsername(ctx, a)
}

// UpdateUser applies patch to a local user in one transaction, so a failed
// role change leaves the password untouched.
func (s *Store) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrValidation)
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	var (
		stored string
		role   models.Role
		err    error
	)
	if patch.Secret != nil {
		if stored, err = s.storedSecret(*patch.Secret); err != nil {
			return nil, err
		}
	}
	if patch.Role != nil {
		if role, err = models.ParseRole(string(*patch.Role)); err != nil {
			return nil, err
		}
	}

	var updated *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := users.NewSQLiteRepository(tx)
		if patch.Secret != nil {
			if err := repo.UpdateSecret(ctx, id, stored); err != nil {
				return err
			}
		}
		if patch.Role != nil {
			if err := repo.UpdateRole(ctx, id, role); err != nil {
				return err
			}
		}
		u, err := repo.GetByID(ctx, id)
		updated = u
		return err
	})
	if err != nil {
		return nil, withStorage(err)
	}
	return updated, nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.userRepo().DeleteByID(ctx, id)
}

func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo().GetByID(ctx, id)
}

// ListUsers returns every local user ordered by username.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo().List(ctx)
}

// IsUsernameTaken reports whether err came from inserting a duplicate username.
func IsUsernameTaken(err error) bool {
	return errors.Is(err, users.ErrUsernameTaken)
}

func (s *Store) storedSecret(secret string) (string, error) {
	if !s.hashCredentials {
		return secret, nil
	}
	h, err := cryptox.HashCredential(secret)
	if err != nil {
		return "", fmt.Errorf("hash credential: %w", err)
	}
	return h, nil
}
