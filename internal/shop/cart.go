package shop

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MaxItems is the maximum number of items a cart can hold.
	MaxItems = 10
	// MaxPerItem is the maximum quantity of a single catalog item in one cart.
	MaxPerItem = 2
)

// Cart is the staging list of products a customer intends to buy.
// A Cart is created together with its Customer and is not safe for concurrent use.
type Cart struct {
	owner *Customer
	items []Product
}

// AddItem appends p to the cart. The same product may be added more than once.
func (c *Cart) AddItem(p Product) error {
	if len(c.items) >= MaxItems {
		return fmt.Errorf("cannot add more than %d items to cart: %w", MaxItems, ErrCapacityExceeded)
	}
	c.items = append(c.items, p)
	return nil
}

// AddItems adds qty copies of p, enforcing the per-item cap.
// Either all copies are added or the cart is left unchanged.
func (c *Cart) AddItems(p Product, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("quantity %d: %w", qty, ErrInvalidQuantity)
	}
	if held := c.Count(p); qty > MaxPerItem-held {
		return fmt.Errorf("%q already in cart %d time(s), at most %d allowed: %w", p.Name, held, MaxPerItem, ErrQuantityExceeded)
	}
	if qty > MaxItems-len(c.items) {
		return fmt.Errorf("cannot add more than %d items to cart: %w", MaxItems, ErrCapacityExceeded)
	}
	for range qty {
		c.items = append(c.items, p)
	}
	return nil
}

// RemoveItem removes the first occurrence of p. It reports whether an item was removed.
func (c *Cart) RemoveItem(p Product) bool {
	i := slices.IndexFunc(c.items, func(item Product) bool { return sameItem(item, p) })
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []Product {
	return slices.Clone(c.items)
}

// Len returns the number of items in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}

// Count returns how many copies of p the cart holds.
func (c *Cart) Count(p Product) int {
	n := 0
	for _, item := range c.items {
		if sameItem(item, p) {
			n++
		}
	}
	return n
}

// Total returns the sum of the item prices.
func (c *Cart) Total() decimal.Decimal {
	return sum(c.items)
}

// Summary renders the cart status line shown next to the cart listing.
func (c *Cart) Summary() string {
	return fmt.Sprintf("Total: $%s (%d items)", c.Total().StringFixed(2), len(c.items))
}

// Checkout moves the cart contents into the purchase history of customer and
// records a single Sale for them.
//
// Checkout is atomic: if the whole cart does not fit into the remaining purchase
// allowance nothing is transferred and the cart keeps its items. The returned
// error then names the item that would have exceeded the limit.
func (c *Cart) Checkout(customer *Customer, saleID string, at time.Time) (Sale, error) {
	if customer == nil || c.owner != customer {
		return Sale{}, ErrForeignCart
	}
	if len(c.items) == 0 {
		return Sale{}, ErrEmptyCart
	}
	if remaining := customer.Remaining(); len(c.items) > remaining {
		return Sale{}, fmt.Errorf("item %d of %d: %w", remaining+1, len(c.items), ErrPurchaseLimitExceeded)
	}

	for _, p := range c.items {
		if err := customer.PurchaseItem(p); err != nil {
			return Sale{}, err
		}
	}
	sale := NewSale(saleID, customer.Ref(), c.items, c.Total(), at)
	c.Clear()
	return sale, nil
}
