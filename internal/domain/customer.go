package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Customer represents the customer entity. Cart holds product IDs in insertion
// order; an ID may appear more than once.
type Customer struct {
	ID     int64
	Name   string
	Active bool
	Cart   []int64
}

// NewCustomer creates an unsaved customer with an empty cart.
func NewCustomer(name string) *Customer {
	return &Customer{
		Name: name,
		Cart: []int64{},
	}
}

// Validate performs business validation on the customer
func (c *Customer) Validate() error {
	return ValidateName(c.Name)
}

// ValidateName rejects empty and whitespace-only names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrCustomerNameRequired
	}
	return nil
}

// Clone returns a deep copy, so callers never share the cart slice with the store.
func (c *Customer) Clone() *Customer {
	cp := *c
	cp.Cart = slices.Clone(c.Cart)
	if cp.Cart == nil {
		cp.Cart = []int64{}
	}
	return &cp
}

// RemoveFromCart drops the first cart entry equal to productID and reports
// whether one was removed.
func (c *Customer) RemoveFromCart(productID int64) bool {
	i := slices.Index(c.Cart, productID)
	if i < 0 {
		return false
	}
	c.Cart = slices.Delete(c.Cart, i, i+1)
	return true
}

func (c Customer) String() string {
	active := "no"
	if c.Active {
		active = "yes"
	}
	return fmt.Sprintf("Customer: id - %d, name - %s, active - %s, cart - %v", c.ID, c.Name, active, c.Cart)
}
