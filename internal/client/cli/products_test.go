package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k4jlpg/inventory/internal/client/dashboard"
	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/client/services"
)

var stock = []models.Product{
	{ID: "p-1", Name: "LPG Tank 11kg", Category: "Tanks", Quantity: 50, Price: 950, LowStockThreshold: 20},
	{ID: "p-2", Name: "Regulator", Category: "Accessories", Quantity: 5, Price: 350, LowStockThreshold: 10},
	{ID: "p-3", Name: "LPG Hose", Category: "Accessories", Quantity: 40, Price: 150, LowStockThreshold: 20},
}

func TestProducts_RendersTableAndAdvisory(t *testing.T) {
	coord := &fakeCoordinator{user: staffUser, products: services.OkWithAdvisory(stock, "Using cached data (offline)")}
	a, out := startApp(t, coord, "")

	require.NoError(t, a.Products(context.Background(), nil))

	s := out.String()
	assert.Contains(t, s, "Warning: Using cached data (offline)")
	assert.Contains(t, s, "LPG Tank 11kg")
	assert.Contains(t, s, "₱950.00")
	assert.Contains(t, s, lowStockMark)
	assert.Contains(t, s, "1 product(s) low on stock")
	assert.Equal(t, 3, a.dash.Stats().TotalProducts)
}

func TestProducts_Filter(t *testing.T) {
	coord := &fakeCoordinator{user: staffUser, products: services.Ok(stock)}
	a, out := startApp(t, coord, "")

	require.NoError(t, a.Products(context.Background(), []string{"ACCESS"}))

	s := out.String()
	assert.Contains(t, s, "Regulator")
	assert.Contains(t, s, "LPG Hose")
	assert.NotContains(t, s, "LPG Tank 11kg")
	assert.Equal(t, 3, a.dash.Stats().TotalProducts)
}

func TestProducts_Failure(t *testing.T) {
	coord := &fakeCoordinator{user: staffUser, products: services.Fail[[]models.Product]("Failed to load products")}
	a, out := startApp(t, coord, "")

	require.Error(t, a.Products(context.Background(), nil))
	assert.Equal(t, "Error: Failed to load products\n", out.String())
}

func TestAdd(t *testing.T) {
	coord := &fakeCoordinator{user: adminUser, product: services.Ok(&models.Product{ID: "p-9"})}
	a, out := startApp(t, coord, "O-ring\nAccessories\n100\n25.50\n\n")

	require.NoError(t, a.Add(context.Background(), nil))

	require.Len(t, coord.added, 1)
	assert.Equal(t, models.ProductInput{Name: "O-ring", Category: "Accessories", Quantity: 100, Price: 25.5}, coord.added[0])
	assert.Contains(t, out.String(), "Product added successfully")
}

func TestAdd_InvalidInput(t *testing.T) {
	coord := &fakeCoordinator{user: adminUser}
	a, out := startApp(t, coord, "O-ring\nAccessories\nlots\n25\n\n")

	require.Error(t, a.Add(context.Background(), nil))
	assert.Empty(t, coord.added)
	assert.Contains(t, out.String(), `Invalid input: invalid quantity "lots"`)
}

func TestAdd_AdvisoryIsShown(t *testing.T) {
	coord := &fakeCoordinator{user: adminUser,
		product: services.OkWithAdvisory(&models.Product{ID: "p-9"}, "Saved locally; changes will not be synced")}
	a, out := startApp(t, coord, "Valve\nParts\n1\n2\n3\n")

	require.NoError(t, a.Add(context.Background(), nil))
	assert.Contains(t, out.String(), "Warning: Saved locally; changes will not be synced\nProduct added successfully\n")
}

func TestUpdate_Admin(t *testing.T) {
	coord := &fakeCoordinator{user: adminUser, product: services.Ok(&models.Product{ID: "p-1"})}
	a, out := startApp(t, coord, "\n\n45\n999.99\n\n")

	require.NoError(t, a.Update(context.Background(), []string{"p-1"}))

	require.Len(t, coord.patches, 1)
	require.NotNil(t, coord.patches[0].Quantity)
	require.NotNil(t, coord.patches[0].Price)
	assert.Equal(t, 45, *coord.patches[0].Quantity)
	assert.Equal(t, 999.99, *coord.patches[0].Price)
	assert.Nil(t, coord.patches[0].Name)
	assert.Contains(t, coord.calls, "UpdateProduct:p-1")
	assert.Contains(t, out.String(), "Product updated successfully")
}

func TestUpdate_StaffQuantityOnly(t *testing.T) {
	coord := &fakeCoordinator{user: staffUser, product: services.Ok(&models.Product{ID: "p-2"})}
	a, out := startApp(t, coord, "12\n")

	require.NoError(t, a.Update(context.Background(), []string{"p-2"}))

	require.Len(t, coord.patches, 1)
	assert.Equal(t, models.ProductPatch{Quantity: coord.patches[0].Quantity}, coord.patches[0])
	assert.Equal(t, 12, *coord.patches[0].Quantity)
	assert.Contains(t, out.String(), "Quantity updated successfully")
}

func TestUpdate_NothingOrBadInput(t *testing.T) {
	coord := &fakeCoordinator{user: staffUser}
	a, out := startApp(t, coord, "\nten\n")

	require.NoError(t, a.Update(context.Background(), []string{"p-2"}))
	require.Error(t, a.Update(context.Background(), []string{"p-2"}))
	require.ErrorIs(t, a.Update(context.Background(), nil), errUsage)

	assert.Empty(t, coord.patches)
	s := out.String()
	assert.Contains(t, s, "Nothing to update")
	assert.Contains(t, s, "Invalid input: quantity must be a whole number")
	assert.Contains(t, s, "Usage: update <product-id>")
}

func TestUpdate_ServiceError(t *testing.T) {
	coord := &fakeCoordinator{user: staffUser, product: services.Fail[*models.Product]("Product not found")}
	a, out := startApp(t, coord, "3\n")

	require.Error(t, a.Update(context.Background(), []string{"p-404"}))
	assert.Contains(t, out.String(), "Error: Product not found")
}

func TestDelete_Confirmation(t *testing.T) {
	coord := &fakeCoordinator{user: adminUser, empty: services.Ok(struct{}{})}
	a, out := startApp(t, coord, "n\ny\n")

	require.NoError(t, a.Delete(context.Background(), []string{"p-1"}))
	assert.NotContains(t, coord.calls, "DeleteProduct:p-1")
	assert.Contains(t, out.String(), "Cancelled")

	require.NoError(t, a.Delete(context.Background(), []string{"p-1"}))
	assert.Contains(t, coord.calls, "DeleteProduct:p-1")
	assert.Contains(t, out.String(), "Product deleted successfully")
}

func TestStats(t *testing.T) {
	synced := time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)
	coord := &fakeCoordinator{
		user:     adminUser,
		products: services.Ok(stock),
		users:    services.Ok([]models.User{*adminUser, *staffUser}),
		lastSync: services.Ok(synced),
	}
	a, out := startApp(t, coord, "")

	require.NoError(t, a.Stats(context.Background(), nil))

	assert.Equal(t, dashboard.Stats{TotalProducts: 3, LowStock: 1, TotalUsers: 2, StockValue: 50*950 + 5*350 + 40*150}, a.dash.Stats())
	s := out.String()
	assert.Contains(t, s, "Users")
	assert.Contains(t, s, synced.Local().Format(time.DateTime))
}

func TestStats_StaffSkipsUsers(t *testing.T) {
	coord := &fakeCoordinator{user: staffUser, products: services.Ok(stock), lastSync: services.Fail[time.Time]("x")}
	a, out := startApp(t, coord, "")

	require.NoError(t, a.Stats(context.Background(), nil))

	assert.NotContains(t, coord.calls, "GetUsers")
	assert.NotContains(t, out.String(), "Users")
	assert.Contains(t, out.String(), "never")
}

func TestRenderEmptyCollections(t *testing.T) {
	var out bytes.Buffer
	renderProducts(&out, nil)
	renderUsers(&out, nil, nil)
	assert.Equal(t, "No products\nNo users\n", out.String())
}
