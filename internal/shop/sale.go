package shop

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the receipt of a completed checkout. A Sale never changes after it is created.
type Sale struct {
	id        string
	customer  CustomerRef
	items     []Product
	total     decimal.Decimal
	timestamp time.Time
}

// NewSale records a purchase that has already passed the cart and customer checks.
func NewSale(id string, customer CustomerRef, items []Product, total decimal.Decimal, at time.Time) Sale {
	return Sale{
		id:        id,
		customer:  customer,
		items:     slices.Clone(items),
		total:     total,
		timestamp: at,
	}
}

func (s Sale) ID() string {
	return s.id
}

func (s Sale) Customer() CustomerRef {
	return s.customer
}

// Items returns a copy of the sold items.
func (s Sale) Items() []Product {
	return slices.Clone(s.items)
}

func (s Sale) Len() int {
	return len(s.items)
}

func (s Sale) Total() decimal.Decimal {
	return s.total
}

func (s Sale) Timestamp() time.Time {
	return s.timestamp
}
