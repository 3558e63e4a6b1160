package dashboard

import (
	"testing"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/stretchr/testify/assert"
)

var sample = []models.Product{
	{ID: "1", Name: "Megakalan", Quantity: 8, Price: 2500, LowStockThreshold: 20},
	{ID: "2", Name: "O-ring", Quantity: 100, Price: 25, LowStockThreshold: 20},
	{ID: "3", Name: "Gas Stove Burner", Quantity: 20, Price: 320, LowStockThreshold: 20},
}

var staff = []models.User{
	{ID: "admin", Username: "admin", Role: models.RoleAdmin},
	{ID: "staff1", Username: "staff", Role: models.RoleStaff},
}

func TestStats_OrderIndependent(t *testing.T) {
	a := New()
	a.SetProducts(sample)
	a.SetUsers(staff)

	b := New()
	b.SetUsers(staff)
	b.SetProducts(sample)

	assert.Equal(t, a.Stats(), b.Stats())
	assert.Equal(t, Stats{TotalProducts: 3, LowStock: 2, TotalUsers: 2, StockValue: 8*2500 + 100*25 + 20*320}, a.Stats())
}

func TestStats_Idempotent(t *testing.T) {
	d := New()
	first := d.SetProducts(sample)
	second := d.SetProducts(sample)
	assert.Equal(t, first, second)
	assert.Equal(t, 3, second.TotalProducts)
}

func TestStats_ReplaceNotAccumulate(t *testing.T) {
	d := New()
	d.SetProducts(sample)
	s := d.SetProducts(sample[:1])
	assert.Equal(t, 1, s.TotalProducts)
	assert.Equal(t, 1, s.LowStock)
}

func TestLowStockProducts_BoundaryIncluded(t *testing.T) {
	d := New()
	d.SetProducts(sample)

	low := d.LowStockProducts()
	assert.Len(t, low, 2)
	assert.Equal(t, "Megakalan", low[0].Name)
	assert.Equal(t, "Gas Stove Burner", low[1].Name)
}

func TestProducts_ReturnsCopy(t *testing.T) {
	d := New()
	d.SetProducts(sample)

	got := d.Products()
	got[0].Name = "changed"
	assert.Equal(t, "Megakalan", d.Products()[0].Name)
}
