package syncmeta

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/common"
	"github.com/k4jlpg/inventory/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (*models.SyncMetadata, error) {
	var lastSync int64
	err := r.db.QueryRowContext(ctx, `SELECT last_sync FROM sync_metadata WHERE key = ?`, key).Scan(&lastSync)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get sync_metadata[%s]: %w", common.ErrStorage, key, err)
	}
	return &models.SyncMetadata{Key: key, LastSync: time.Unix(lastSync, 0).UTC()}, nil
}

func (r *SQLiteRepository) Touch(ctx context.Context, key string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sync_metadata (key, value, last_sync) VALUES (?, ?, ?)`,
		key, at.UTC().Format(time.RFC3339), at.Unix())
	if err != nil {
		return fmt.Errorf("%w: failed to touch sync_metadata[%s]: %w", common.ErrStorage, key, err)
	}
	return nil
}
