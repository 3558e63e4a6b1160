package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/k4jlpg/inventory/internal/client/models"
	"github.com/k4jlpg/inventory/internal/client/services"
	"github.com/k4jlpg/inventory/internal/common"
)

var errUsage = errors.New("usage")

// Products lists the inventory. An optional argument filters by name or
// category, case-insensitively.
func (a *App) Products(ctx context.Context, args []string) error {
	filter := strings.ToLower(strings.Join(args, " "))

	var rerr error
	cerr := call(a, func() services.Result[[]models.Product] { return a.coord.GetProducts(ctx) },
		func(r services.Result[[]models.Product]) {
			if !r.Success {
				a.printf("Error: %s\n", r.Message)
				rerr = errors.New(r.Message)
				return
			}
			a.dash.SetProducts(r.Data)
			if r.Message != "" {
				a.printf("Warning: %s\n", r.Message)
			}
			renderProducts(a.out, filterProducts(r.Data, filter))
			if n := len(a.dash.LowStockProducts()); n > 0 {
				a.printf("%d product(s) low on stock\n", n)
			}
		})
	return errors.Join(cerr, rerr)
}

func filterProducts(items []models.Product, filter string) []models.Product {
	if filter == "" {
		return items
	}
	var out []models.Product
	for _, p := range items {
		if strings.Contains(strings.ToLower(p.Name), filter) ||
			strings.Contains(strings.ToLower(p.Category), filter) {
			out = append(out, p)
		}
	}
	return out
}

// Add prompts for a new product.
func (a *App) Add(ctx context.Context, _ []string) error {
	var fields [5]string
	prompts := [5]string{"Name", "Category", "Quantity", "Price", "Low stock threshold (empty for default)"}
	for i, p := range prompts {
		v, err := getSimpleText(a.reader, p, a.out)
		if err != nil {
			return err
		}
		fields[i] = v
	}

	in, err := models.ParseProductInput(fields[0], fields[1], fields[2], fields[3], fields[4])
	if err != nil {
		a.printf("Invalid input: %s\n", validationText(err))
		return err
	}

	var rerr error
	cerr := call(a, func() services.Result[*models.Product] { return a.coord.AddProduct(ctx, in) },
		func(r services.Result[*models.Product]) {
			rerr = report(a, r, "Product added successfully")
		})
	return errors.Join(cerr, rerr)
}

// Update edits a product. Admins may change any field; staff only the
// quantity.
func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.printf("Usage: update <product-id>\n")
		return errUsage
	}
	id := args[0]

	var (
		patch   models.ProductPatch
		success string
		err     error
	)
	if a.isAdmin() {
		patch, err = a.promptProductPatch()
		success = "Product updated successfully"
	} else {
		patch, err = a.promptQuantity()
		success = "Quantity updated successfully"
	}
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		a.printf("Nothing to update\n")
		return nil
	}

	var rerr error
	cerr := call(a, func() services.Result[*models.Product] { return a.coord.UpdateProduct(ctx, id, patch) },
		func(r services.Result[*models.Product]) {
			rerr = report(a, r, success)
		})
	return errors.Join(cerr, rerr)
}

func (a *App) promptProductPatch() (models.ProductPatch, error) {
	var fields [5]string
	prompts := [5]string{"Name", "Category", "Quantity", "Price", "Low stock threshold"}
	for i, p := range prompts {
		v, err := getSimpleText(a.reader, p+" (empty to keep)", a.out)
		if err != nil {
			return models.ProductPatch{}, err
		}
		fields[i] = v
	}
	patch, err := models.ParseProductPatch(fields[0], fields[1], fields[2], fields[3], fields[4])
	if err != nil {
		a.printf("Invalid input: %s\n", validationText(err))
	}
	return patch, err
}

func (a *App) promptQuantity() (models.ProductPatch, error) {
	v, err := getSimpleText(a.reader, "New quantity", a.out)
	if err != nil {
		return models.ProductPatch{}, err
	}
	if strings.TrimSpace(v) == "" {
		return models.ProductPatch{}, nil
	}
	q, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		a.printf("Invalid input: quantity must be a whole number\n")
		return models.ProductPatch{}, err
	}
	return models.ProductPatch{Quantity: &q}, nil
}

// Delete removes a product after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.printf("Usage: delete <product-id>\n")
		return errUsage
	}
	id := args[0]

	ok, err := a.confirm("Delete product " + id + "?")
	if err != nil || !ok {
		return err
	}

	var rerr error
	cerr := call(a, func() services.Result[struct{}] { return a.coord.DeleteProduct(ctx, id) },
		func(r services.Result[struct{}]) {
			rerr = report(a, r, "Product deleted successfully")
		})
	return errors.Join(cerr, rerr)
}

func (a *App) confirm(question string) (bool, error) {
	v, err := getSimpleText(a.reader, question+" (y/N)", a.out)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(v) {
	case "y", "yes":
		return true, nil
	}
	a.printf("Cancelled\n")
	return false, nil
}

func validationText(err error) string {
	return strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": ")
}
