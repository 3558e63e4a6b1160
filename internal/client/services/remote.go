package services

import (
	"context"
	"time"

	"github.com/k4jlpg/inventory/internal/client/localstore"
)

// InitializeRemote asks the remote service to seed its default users and
// products. The data is the server message.
func (c *Coordinator) InitializeRemote(ctx context.Context) Result[string] {
	msg, err := c.remote.InitializeDefaults(ctx)
	if err != nil {
		c.log.Error(ctx, "initialize database error", "error", err)
		return Fail[string]("Failed to initialize database: " + describe(err))
	}
	c.log.Info(ctx, "remote database initialized")
	return Ok(msg)
}

// LastProductSync returns when the product cache was last replaced from the
// remote service, or the zero time if it never was.
func (c *Coordinator) LastProductSync(ctx context.Context) Result[time.Time] {
	t, err := c.store.LastSync(ctx, localstore.ProductsSyncKey)
	if err != nil {
		return Fail[time.Time]("Failed to read sync metadata: " + describe(err))
	}
	return Ok(t)
}
