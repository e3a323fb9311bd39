// Package store provides the sale ledger used by the shop service.
package store

import (
	"context"

	"github.com/abgdnv/musicshop/internal/shop"
	"github.com/google/uuid"
)

// SaleStore is an interface for sale storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type SaleStore interface {
	// Save records a completed sale together with its items.
	Save(ctx context.Context, sale shop.Sale) error

	// FindByID retrieves a single sale by its unique identifier.
	// Returns ErrSaleNotFound if no sale exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (shop.Sale, error)

	// FindByCustomer returns the sales of a customer, oldest first.
	// Returns an empty slice if the customer has no sales.
	FindByCustomer(ctx context.Context, customerID uuid.UUID, offset, limit int32) ([]shop.Sale, error)
}
