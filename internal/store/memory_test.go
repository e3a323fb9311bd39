package store

import (
	"context"
	"testing"
	"time"

	shoperrors "github.com/abgdnv/musicshop/internal/errors"
	"github.com/abgdnv/musicshop/internal/shop"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSale(t *testing.T, customerID uuid.UUID, at time.Time, prices ...string) shop.Sale {
	t.Helper()
	items := make([]shop.Product, 0, len(prices))
	total := decimal.Zero
	for _, price := range prices {
		p, err := shop.NewAlbum(uuid.NewString(), "Album", "Artist", shop.GenreJazz, decimal.RequireFromString(price), "")
		require.NoError(t, err)
		items = append(items, p)
		total = total.Add(p.Price)
	}
	return shop.NewSale(uuid.NewString(), shop.CustomerRef{ID: customerID.String(), Name: "Nina"}, items, total, at)
}

func TestMemoryStore_SaveAndFindByID(t *testing.T) {
	// given
	ctx := context.Background()
	s := NewMemoryStore()
	sale := testSale(t, uuid.New(), time.Now(), "12.99", "8.50")

	// when
	err := s.Save(ctx, sale)

	// then
	require.NoError(t, err)
	found, err := s.FindByID(ctx, uuid.MustParse(sale.ID()))
	require.NoError(t, err)
	assert.Equal(t, sale.ID(), found.ID())
	assert.Equal(t, 2, found.Len())
	assert.True(t, decimal.RequireFromString("21.49").Equal(found.Total()))
}

func TestMemoryStore_Save_Errors(t *testing.T) {
	testCases := []struct {
		name string
		sale func(t *testing.T, existing shop.Sale) shop.Sale
	}{
		{
			name: "duplicate id",
			sale: func(_ *testing.T, existing shop.Sale) shop.Sale { return existing },
		},
		{
			name: "malformed sale id",
			sale: func(_ *testing.T, existing shop.Sale) shop.Sale {
				return shop.NewSale("not-a-uuid", existing.Customer(), existing.Items(), existing.Total(), existing.Timestamp())
			},
		},
		{
			name: "malformed customer id",
			sale: func(_ *testing.T, existing shop.Sale) shop.Sale {
				return shop.NewSale(uuid.NewString(), shop.CustomerRef{ID: "guest"}, existing.Items(), existing.Total(), existing.Timestamp())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			ctx := context.Background()
			s := NewMemoryStore()
			existing := testSale(t, uuid.New(), time.Now(), "5.00")
			require.NoError(t, s.Save(ctx, existing))

			// when
			err := s.Save(ctx, tc.sale(t, existing))

			// then
			require.ErrorIs(t, err, shoperrors.ErrSaveSale)
		})
	}
}

func TestMemoryStore_FindByID_NotFound(t *testing.T) {
	// given
	s := NewMemoryStore()

	// when
	_, err := s.FindByID(context.Background(), uuid.New())

	// then
	require.ErrorIs(t, err, shoperrors.ErrSaleNotFound)
}

func TestMemoryStore_FindByCustomer(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	s := NewMemoryStore()
	now := time.Now()
	first := testSale(t, customerID, now, "1.00")
	second := testSale(t, customerID, now.Add(time.Minute), "2.00")
	third := testSale(t, customerID, now.Add(2*time.Minute), "3.00")
	for _, sale := range []shop.Sale{first, second, third, testSale(t, uuid.New(), now, "4.00")} {
		require.NoError(t, s.Save(ctx, sale))
	}

	testCases := []struct {
		name       string
		customerID uuid.UUID
		offset     int32
		limit      int32
		expected   []string
	}{
		{name: "all", customerID: customerID, limit: 10, expected: []string{first.ID(), second.ID(), third.ID()}},
		{name: "no limit", customerID: customerID, expected: []string{first.ID(), second.ID(), third.ID()}},
		{name: "page", customerID: customerID, offset: 1, limit: 1, expected: []string{second.ID()}},
		{name: "offset past end", customerID: customerID, offset: 5, limit: 10, expected: []string{}},
		{name: "unknown customer", customerID: uuid.New(), limit: 10, expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			list, err := s.FindByCustomer(ctx, tc.customerID, tc.offset, tc.limit)

			// then
			require.NoError(t, err)
			ids := make([]string, 0, len(list))
			for _, sale := range list {
				ids = append(ids, sale.ID())
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}
