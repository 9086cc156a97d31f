package domain

import (
	"fmt"
	"math"
	"strings"
)

// Product represents the product entity
type Product struct {
	ID     int64
	Title  string
	Price  float64
	Active bool
}

// NewProduct creates an unsaved product. The repository assigns the ID.
func NewProduct(title string, price float64) *Product {
	return &Product{
		Title: title,
		Price: price,
	}
}

// Validate performs business validation on the product
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrProductTitleRequired
	}
	return ValidatePrice(p.Price)
}

// ValidatePrice rejects negative and non-finite prices.
func ValidatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return ErrProductPriceInvalid
	}
	if price < 0 {
		return ErrProductPriceNegative
	}
	return nil
}

// String formats the product for logs and debugging output.
func (p Product) String() string {
	active := "no"
	if p.Active {
		active = "yes"
	}
	return fmt.Sprintf("Product: id - %d, title - %s, price - %.2f, active - %s", p.ID, p.Title, p.Price, active)
}
