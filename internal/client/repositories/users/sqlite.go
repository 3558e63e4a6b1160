package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/common"
	"github.com/k4jlpg/inventory/internal/dbx"
)

// ErrUsernameTaken is returned when inserting a username that already exists.
var ErrUsernameTaken = fmt.Errorf("%w: username already exists", common.ErrValidation)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*Account, error) {
	a := &Account{}
	var role string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password, role FROM users WHERE username = ?`, username).
		Scan(&a.ID, &a.Username, &a.Secret, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", username, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user %q: %w", common.ErrStorage, username, err)
	}
	a.Role = models.Role(role)
	return a, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	u := &models.User{}
	var role string
	err := r.db.QueryRowContext(ctx, `SELECT id, username, role FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get user %s: %w", common.ErrStorage, id, err)
	}
	u.Role = models.Role(role)
	return u, nil
}

// List returns all users ordered by username.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, username, role FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select users: %w", common.ErrStorage, err)
	}
	defer rows.Close()

	result := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		var role string
		if err := rows.Scan(&u.ID, &u.Username, &role); err != nil {
			return nil, fmt.Errorf("%w: failed to scan user row: %w", common.ErrStorage, err)
		}
		u.Role = models.Role(role)
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate user rows: %w", common.ErrStorage, err)
	}
	return result, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: failed to count users: %w", common.ErrStorage, err)
	}
	return n, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, a *Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password, role) VALUES (?, ?, ?, ?)`,
		a.ID, a.Username, a.Secret, string(a.Role))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("%w: failed to insert user %q: %w", common.ErrStorage, a.Username, err)
	}
	return nil
}

// UpsertByUsername inserts the account or, when the username exists, replaces
// its secret and role.
func (r *SQLiteRepository) UpsertByUsername(ctx context.Context, a *Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password, role) VALUES (?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET password = excluded.password, role = excluded.role`,
		a.ID, a.Username, a.Secret, string(a.Role))
	if err != nil {
		return fmt.Errorf("%w: failed to upsert user %q: %w", common.ErrStorage, a.Username, err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateSecret(ctx context.Context, id, secret string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password = ? WHERE id = ?`, secret, id)
	if err != nil {
		return fmt.Errorf("%w: failed to update password of user %s: %w", common.ErrStorage, id, err)
	}
	return expectOneRow(res, id)
}

func (r *SQLiteRepository) UpdateRole(ctx context.Context, id string, role models.Role) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET role = ? WHERE id = ?`, string(role), id)
	if err != nil {
		return fmt.Errorf("%w: failed to update role of user %s: %w", common.ErrStorage, id, err)
	}
	return expectOneRow(res, id)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete user %s: %w", common.ErrStorage, id, err)
	}
	return expectOneRow(res, id)
}

func expectOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to get rows affected: %w", common.ErrStorage, err)
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", id, common.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
