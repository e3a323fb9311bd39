package shop

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Customer_PurchaseItem_Limit(t *testing.T) {
	// given
	customer := NewCustomer("c1", "Patti")
	for i := range MaxPurchases {
		require.NoError(t, customer.PurchaseItem(album(t, fmt.Sprintf("a%d", i), "10.00")))
	}
	before := customer.Purchases()

	// when
	err := customer.PurchaseItem(album(t, "fourth", "10.00"))

	// then
	assert.ErrorIs(t, err, ErrPurchaseLimitExceeded)
	assert.Equal(t, before, customer.Purchases())
	assert.Zero(t, customer.Remaining())
}

func Test_Customer_ReturnItem(t *testing.T) {
	customer := NewCustomer("c1", "Patti")
	a, b := album(t, "a", "1.00"), album(t, "b", "2.00")
	require.NoError(t, customer.PurchaseItem(a))
	require.NoError(t, customer.PurchaseItem(b))
	require.NoError(t, customer.PurchaseItem(a))

	assert.True(t, customer.ReturnItem(a))
	assert.Equal(t, []Product{b, a}, customer.Purchases())
	assert.False(t, customer.ReturnItem(album(t, "missing", "1.00")))
	assert.Len(t, customer.Purchases(), 2)

	// a returned slot can be purchased again
	assert.NoError(t, customer.PurchaseItem(b))
}

func Test_Checkout(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	testCases := []struct {
		name          string
		prior         int
		cart          []string
		expectErr     error
		expectMessage string
		expectBought  int
	}{
		{name: "Success - fits exactly", prior: 1, cart: []string{"29.99", "24.99"}, expectBought: 3},
		{name: "Success - single item", cart: []string{"15.00"}, expectBought: 1},
		{name: "Error - empty cart", prior: 1, expectErr: ErrEmptyCart, expectBought: 1},
		{
			name:          "Error - second transfer exceeds limit",
			prior:         2,
			cart:          []string{"29.99", "24.99"},
			expectErr:     ErrPurchaseLimitExceeded,
			expectMessage: "item 2 of 2",
			expectBought:  2,
		},
		{
			name:          "Error - limit already reached",
			prior:         3,
			cart:          []string{"5.00"},
			expectErr:     ErrPurchaseLimitExceeded,
			expectMessage: "item 1 of 1",
			expectBought:  3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			customer := NewCustomer("c1", "Debbie")
			for i := range tc.prior {
				require.NoError(t, customer.PurchaseItem(album(t, fmt.Sprintf("prior%d", i), "1.00")))
			}
			for i, price := range tc.cart {
				require.NoError(t, customer.Cart().AddItem(album(t, fmt.Sprintf("cart%d", i), price)))
			}
			cartBefore := customer.Cart().Items()

			// when
			sale, err := customer.Checkout("sale-1", at)

			// then
			assert.Len(t, customer.Purchases(), tc.expectBought)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				if tc.expectMessage != "" {
					assert.Contains(t, err.Error(), tc.expectMessage)
				}
				assert.Equal(t, cartBefore, customer.Cart().Items(), "cart must be left intact")
				assert.Empty(t, sale.ID())
				return
			}
			require.NoError(t, err)
			assert.Zero(t, customer.Cart().Len())
			assert.Equal(t, "sale-1", sale.ID())
			assert.Equal(t, CustomerRef{ID: "c1", Name: "Debbie"}, sale.Customer())
			assert.Equal(t, cartBefore, sale.Items())
			assert.Equal(t, at, sale.Timestamp())
		})
	}
}

func Test_Checkout_Total(t *testing.T) {
	customer := NewCustomer("c1", "Debbie")
	require.NoError(t, customer.Cart().AddItem(album(t, "queen", "29.99")))
	require.NoError(t, customer.Cart().AddItem(album(t, "thriller", "24.99")))

	sale, err := customer.Checkout("sale-1", time.Now())

	require.NoError(t, err)
	assert.Equal(t, "54.98", sale.Total().StringFixed(2))
	assert.Equal(t, 2, sale.Len())
}

func Test_Checkout_ForeignCart(t *testing.T) {
	owner := NewCustomer("c1", "Debbie")
	other := NewCustomer("c2", "Trent")
	require.NoError(t, owner.Cart().AddItem(album(t, "a", "1.00")))

	_, err := owner.Cart().Checkout(other, "sale-1", time.Now())

	assert.ErrorIs(t, err, ErrForeignCart)
	assert.Equal(t, 1, owner.Cart().Len())
	assert.Empty(t, other.Purchases())
}
