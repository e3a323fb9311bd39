package store

import (
	"context"
	"fmt"
	"sync"

	shoperrors "github.com/abgdnv/musicshop/internal/errors"
	"github.com/abgdnv/musicshop/internal/shop"
	"github.com/google/uuid"
)

// MemoryStore implements SaleStore using an in-memory map.
type MemoryStore struct {
	mu         sync.RWMutex
	sales      map[uuid.UUID]shop.Sale
	byCustomer map[uuid.UUID][]uuid.UUID
}

// NewMemoryStore creates an empty in-memory sale ledger.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sales:      make(map[uuid.UUID]shop.Sale),
		byCustomer: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *MemoryStore) Save(_ context.Context, sale shop.Sale) error {
	id, customerID, err := saleKeys(sale)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sales[id]; exists {
		return fmt.Errorf("sale %s already recorded: %w", id, shoperrors.ErrSaveSale)
	}
	s.sales[id] = sale
	s.byCustomer[customerID] = append(s.byCustomer[customerID], id)
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (shop.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sale, ok := s.sales[id]
	if !ok {
		return shop.Sale{}, shoperrors.ErrSaleNotFound
	}
	return sale, nil
}

func (s *MemoryStore) FindByCustomer(_ context.Context, customerID uuid.UUID, offset, limit int32) ([]shop.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byCustomer[customerID]
	start := min(int(max(offset, 0)), len(ids))
	end := len(ids)
	if limit > 0 {
		end = min(start+int(limit), len(ids))
	}

	list := make([]shop.Sale, 0, end-start)
	for _, id := range ids[start:end] {
		list = append(list, s.sales[id])
	}
	return list, nil
}

// saleKeys parses the sale and customer identifiers, which the ledger stores as UUIDs.
func saleKeys(sale shop.Sale) (uuid.UUID, uuid.UUID, error) {
	id, err := uuid.Parse(sale.ID())
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("sale id %q: %w", sale.ID(), shoperrors.ErrSaveSale)
	}
	customerID, err := uuid.Parse(sale.Customer().ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("customer id %q: %w", sale.Customer().ID, shoperrors.ErrSaveSale)
	}
	return id, customerID, nil
}
