package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/k4jlpg/inventory/internal/client/dashboard"
	"github.com/k4jlpg/inventory/internal/client/models"
)

const lowStockMark = "LOW"

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderProducts(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Category", "Qty", "Price", "Threshold", ""})
	for _, p := range products {
		mark := ""
		if p.IsLowStock() {
			mark = lowStockMark
		}
		t.AppendRow(table.Row{p.ID, p.Name, p.Category, p.Quantity, formatPrice(p.Price), p.LowStockThreshold, mark})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d products", len(products))})
	t.Render()
}

func renderUsers(w io.Writer, users []models.User, current *models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Username", "Role", ""})
	for _, u := range users {
		you := ""
		if current != nil && current.ID == u.ID {
			you = "you"
		}
		t.AppendRow(table.Row{u.ID, u.Username, string(u.Role), you})
	}
	t.Render()
}

func renderStats(w io.Writer, s dashboard.Stats, admin bool, lastSync time.Time) {
	t := newTable(w)
	t.AppendRow(table.Row{"Total products", s.TotalProducts})
	t.AppendRow(table.Row{"Low stock", s.LowStock})
	t.AppendRow(table.Row{"Stock value", formatPrice(s.StockValue)})
	if admin {
		t.AppendRow(table.Row{"Users", s.TotalUsers})
	}
	synced := "never"
	if !lastSync.IsZero() {
		synced = lastSync.Local().Format(time.DateTime)
	}
	t.AppendRow(table.Row{"Last sync", synced})
	t.Render()
}

func formatPrice(v float64) string {
	return fmt.Sprintf("₱%.2f", v)
}
