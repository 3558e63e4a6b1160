package services

import (
	"context"

	"github.com/k4jlpg/inventory/internal/client/models"
)

// GetProducts prefers fresh remote data and falls back to the local cache.
//
//   - reachable and the fetch succeeds: the cache is replaced and fresh data is
//     returned without advisory
//   - reachable but the fetch fails: cached data with an error advisory
//   - unreachable: cached data with an offline advisory
//   - the cache cannot be read: failure
func (c *Coordinator) GetProducts(ctx context.Context) Result[[]models.Product] {
	if !c.checker.IsOnline(ctx) {
		c.log.Warn(ctx, "using cached products (offline mode)")
		return c.cachedProducts(ctx, "Using cached data (offline)", nil)
	}

	items, err := c.remote.GetProducts(ctx)
	if err != nil {
		c.log.Error(ctx, "failed to fetch products, using cache", "error", err)
		return c.cachedProducts(ctx, "Using cached data (error: "+describe(err)+")", err)
	}

	if err := c.store.ReplaceProductCache(ctx, items); err != nil {
		c.log.Error(ctx, "failed to cache products", "error", err)
	}
	return Ok(items)
}

func (c *Coordinator) cachedProducts(ctx context.Context, advisory string, cause error) Result[[]models.Product] {
	items, err := c.store.CachedProducts(ctx)
	if err != nil {
		c.log.Error(ctx, "failed to load cached products", "error", err)
		msg := "Failed to load products: " + describe(err)
		if cause != nil {
			msg = "Failed to load products: " + describe(cause) + " (cache: " + describe(err) + ")"
		}
		return Fail[[]models.Product](msg)
	}
	return OkWithAdvisory(items, advisory)
}

// AddProduct stores a product locally.
func (c *Coordinator) AddProduct(ctx context.Context, in models.ProductInput) Result[*models.Product] {
	p, err := c.store.AddProduct(ctx, in)
	if err != nil {
		c.log.Error(ctx, "add product error", "error", err)
		return Fail[*models.Product]("Failed to add product: " + describe(err))
	}
	c.log.Info(ctx, "product added", "name", p.Name)
	return Ok(p)
}

// UpdateProduct applies a partial update locally.
func (c *Coordinator) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) Result[*models.Product] {
	p, err := c.store.UpdateProduct(ctx, id, patch)
	if err != nil {
		if isNotFound(err) {
			return Fail[*models.Product]("Product not found")
		}
		c.log.Error(ctx, "update product error", "error", err)
		return Fail[*models.Product]("Failed to update product: " + describe(err))
	}
	c.log.Info(ctx, "product updated", "name", p.Name)
	return Ok(p)
}

// DeleteProduct removes a product locally.
func (c *Coordinator) DeleteProduct(ctx context.Context, id string) Result[struct{}] {
	if err := c.store.DeleteProduct(ctx, id); err != nil {
		if isNotFound(err) {
			return Fail[struct{}]("Product not found")
		}
		c.log.Error(ctx, "delete product error", "error", err)
		return Fail[struct{}]("Failed to delete product: " + describe(err))
	}
	c.log.Info(ctx, "product deleted", "id", id)
	return Ok(struct{}{})
}
