// Package dashboard aggregates the headline numbers shown above the product
// and user tables.
package dashboard

import (
	"sync"

	"github.com/k4jlpg/inventory/internal/client/models"
)

// Stats are recomputed from the current collections, never accumulated.
type Stats struct {
	TotalProducts int
	LowStock      int
	TotalUsers    int
	StockValue    float64
}

// Dashboard holds the latest product and user collections. Loads may finish
// in any order; each one replaces its collection and the stats are derived
// from whatever is current, so applying the same load twice changes nothing.
type Dashboard struct {
	mu       sync.RWMutex
	products []models.Product
	users    []models.User
	stats    Stats
}

func New() *Dashboard {
	return &Dashboard{}
}

// SetProducts replaces the product collection and returns the new stats.
func (d *Dashboard) SetProducts(items []models.Product) Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.products = append([]models.Product(nil), items...)
	d.stats = compute(d.products, d.users)
	return d.stats
}

// SetUsers replaces the user collection and returns the new stats.
func (d *Dashboard) SetUsers(list []models.User) Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = append([]models.User(nil), list...)
	d.stats = compute(d.products, d.users)
	return d.stats
}

func (d *Dashboard) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats
}

// Products returns a copy of the current product collection.
func (d *Dashboard) Products() []models.Product {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]models.Product(nil), d.products...)
}

// LowStockProducts returns the products at or below their threshold.
func (d *Dashboard) LowStockProducts() []models.Product {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []models.Product
	for _, p := range d.products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	return out
}

func compute(products []models.Product, users []models.User) Stats {
	s := Stats{TotalProducts: len(products), TotalUsers: len(users)}
	for _, p := range products {
		if p.IsLowStock() {
			s.LowStock++
		}
		s.StockValue += float64(p.Quantity) * p.Price
	}
	return s
}
