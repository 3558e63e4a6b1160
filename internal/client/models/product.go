package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/k4jlpg/inventory/internal/common"
)

// DefaultLowStockThreshold applies when a product does not carry its own threshold.
const DefaultLowStockThreshold = 20

// Product is a stock item. A product is low on stock iff Quantity <= LowStockThreshold.
type Product struct {
	ID                string
	Name              string
	Category          string
	Quantity          int
	Price             float64
	LowStockThreshold int
}

// IsLowStock reports whether the quantity is at or below the threshold.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}

// Validate checks the field invariants of a stored product.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", common.ErrValidation)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", common.ErrValidation)
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		return fmt.Errorf("%w: price must be a finite number", common.ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", common.ErrValidation)
	}
	if p.LowStockThreshold <= 0 {
		return fmt.Errorf("%w: low stock threshold must be positive", common.ErrValidation)
	}
	return nil
}

// ProductInput carries the fields of a product to be created. The id is
// assigned by whichever side stores it.
type ProductInput struct {
	Name              string
	Category          string
	Quantity          int
	Price             float64
	LowStockThreshold int // 0 means DefaultLowStockThreshold
}

// ToProduct builds a Product with the given id, applying the default threshold.
func (in ProductInput) ToProduct(id string) Product {
	threshold := in.LowStockThreshold
	if threshold == 0 {
		threshold = DefaultLowStockThreshold
	}
	return Product{
		ID:                id,
		Name:              strings.TrimSpace(in.Name),
		Category:          strings.TrimSpace(in.Category),
		Quantity:          in.Quantity,
		Price:             in.Price,
		LowStockThreshold: threshold,
	}
}

// ParseProductInput converts raw form text into a ProductInput. An empty
// threshold selects the default.
func ParseProductInput(name, category, quantity, price, threshold string) (ProductInput, error) {
	q, err := parseInt("quantity", quantity)
	if err != nil {
		return ProductInput{}, err
	}
	pr, err := ParsePrice(price)
	if err != nil {
		return ProductInput{}, err
	}
	th := 0
	if strings.TrimSpace(threshold) != "" {
		if th, err = parseInt("low stock threshold", threshold); err != nil {
			return ProductInput{}, err
		}
	}
	in := ProductInput{Name: name, Category: category, Quantity: q, Price: pr, LowStockThreshold: th}
	if err := in.ToProduct("").Validate(); err != nil {
		return ProductInput{}, err
	}
	return in, nil
}

// ParseProductPatch converts raw form text into a ProductPatch. Blank fields
// are left out of the patch.
func ParseProductPatch(name, category, quantity, price, threshold string) (ProductPatch, error) {
	var p ProductPatch
	if v := strings.TrimSpace(name); v != "" {
		p.Name = &v
	}
	if v := strings.TrimSpace(category); v != "" {
		p.Category = &v
	}
	if strings.TrimSpace(quantity) != "" {
		q, err := parseInt("quantity", quantity)
		if err != nil {
			return ProductPatch{}, err
		}
		p.Quantity = &q
	}
	if strings.TrimSpace(price) != "" {
		pr, err := ParsePrice(price)
		if err != nil {
			return ProductPatch{}, err
		}
		p.Price = &pr
	}
	if strings.TrimSpace(threshold) != "" {
		th, err := parseInt("low stock threshold", threshold)
		if err != nil {
			return ProductPatch{}, err
		}
		p.LowStockThreshold = &th
	}
	return p, nil
}

// ParsePrice parses a non-negative decimal price.
func ParsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid price %q", common.ErrValidation, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: invalid price %q", common.ErrValidation, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: price must not be negative", common.ErrValidation)
	}
	return v, nil
}

func parseInt(field, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", common.ErrValidation, field, s)
	}
	return v, nil
}

// ProductPatch is a partial product update: nil fields keep their current value.
type ProductPatch struct {
	Name              *string
	Category          *string
	Quantity          *int
	Price             *float64
	LowStockThreshold *int
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Quantity == nil && p.Price == nil && p.LowStockThreshold == nil
}

// Apply returns a copy of cur with the present fields replaced and validates the result.
func (p ProductPatch) Apply(cur Product) (Product, error) {
	if p.Name != nil {
		cur.Name = strings.TrimSpace(*p.Name)
	}
	if p.Category != nil {
		cur.Category = strings.TrimSpace(*p.Category)
	}
	if p.Quantity != nil {
		cur.Quantity = *p.Quantity
	}
	if p.Price != nil {
		cur.Price = *p.Price
	}
	if p.LowStockThreshold != nil {
		cur.LowStockThreshold = *p.LowStockThreshold
	}
	if err := cur.Validate(); err != nil {
		return Product{}, err
	}
	return cur, nil
}
