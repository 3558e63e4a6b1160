// Package syncmeta records when each cached collection was last refreshed
// from the remote service.
package syncmeta

import (
	"context"
	"time"

	"github.com/k4jlpg/inventory/internal/client/models"
)

type Repository interface {
	// Get returns (nil, nil) when the key was never synced.
	Get(ctx context.Context, key string) (*models.SyncMetadata, error)
	Touch(ctx context.Context, key string, at time.Time) error
}
