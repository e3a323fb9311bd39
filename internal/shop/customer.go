package shop

import (
	"fmt"
	"slices"
	"time"
)

// MaxPurchases is the maximum number of items a customer may hold at once.
const MaxPurchases = 3

// Customer owns a cart and the list of items bought so far.
// A Customer is not safe for concurrent use.
type Customer struct {
	id        string
	name      string
	purchases []Product
	cart      *Cart
}

// CustomerRef identifies the buyer on a Sale.
type CustomerRef struct {
	ID   string
	Name string
}

// NewCustomer creates a customer with an empty cart.
func NewCustomer(id, name string) *Customer {
	c := &Customer{id: id, name: name}
	c.cart = &Cart{owner: c}
	return c
}

func (c *Customer) ID() string {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

// Ref returns the identity recorded on sales.
func (c *Customer) Ref() CustomerRef {
	return CustomerRef{ID: c.id, Name: c.name}
}

// Cart returns the cart owned by the customer.
func (c *Customer) Cart() *Cart {
	return c.cart
}

// Purchases returns a copy of the purchase history.
func (c *Customer) Purchases() []Product {
	return slices.Clone(c.purchases)
}

// Remaining returns how many more items the customer may purchase.
func (c *Customer) Remaining() int {
	return MaxPurchases - len(c.purchases)
}

// PurchaseItem appends p to the purchase history.
func (c *Customer) PurchaseItem(p Product) error {
	if len(c.purchases) >= MaxPurchases {
		return fmt.Errorf("customer %s: %w", c.id, ErrPurchaseLimitExceeded)
	}
	c.purchases = append(c.purchases, p)
	return nil
}

// ReturnItem removes the first purchase matching p. It reports whether an item was returned.
func (c *Customer) ReturnItem(p Product) bool {
	i := slices.IndexFunc(c.purchases, func(item Product) bool { return sameItem(item, p) })
	if i < 0 {
		return false
	}
	c.purchases = slices.Delete(c.purchases, i, i+1)
	return true
}

// Checkout checks out the customer's own cart.
func (c *Customer) Checkout(saleID string, at time.Time) (Sale, error) {
	return c.cart.Checkout(c, saleID, at)
}
