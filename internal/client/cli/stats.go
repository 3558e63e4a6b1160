package cli

import (
	"context"
	"time"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/client/services"
)

// Stats loads products and, for admins, users concurrently and prints the
// dashboard once both have been applied.
func (a *App) Stats(ctx context.Context, _ []string) error {
	applied := make(chan struct{}, 2)
	pending := 1

	submit(a, func() services.Result[[]models.Product] { return a.coord.GetProducts(ctx) },
		func(r services.Result[[]models.Product]) {
			if r.Success {
				a.dash.SetProducts(r.Data)
			}
			applied <- struct{}{}
		})
	if a.isAdmin() {
		pending++
		submit(a, func() services.Result[[]models.User] { return a.coord.GetUsers(ctx) },
			func(r services.Result[[]models.User]) {
				if r.Success {
					a.dash.SetUsers(r.Data)
				}
				applied <- struct{}{}
			})
	}

	for range pending {
		select {
		case <-applied:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return call(a, func() time.Time {
		if r := a.coord.LastProductSync(ctx); r.Success {
			return r.Data
		}
		return time.Time{}
	}, func(last time.Time) {
		renderStats(a.out, a.dash.Stats(), a.isAdmin(), last)
	})
}
