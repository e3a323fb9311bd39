package shop

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Cart_AddItem_Capacity(t *testing.T) {
	// given
	cart := NewCustomer("c1", "Kim").Cart()
	for i := range MaxItems {
		require.NoError(t, cart.AddItem(album(t, fmt.Sprintf("a%d", i), "10.00")))
	}
	before := cart.Items()

	// when
	err := cart.AddItem(album(t, "one-too-many", "1.00"))

	// then
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, MaxItems, cart.Len())
	assert.Equal(t, before, cart.Items())
}

func Test_Cart_AddItem_AllowsDuplicates(t *testing.T) {
	cart := NewCustomer("c1", "Kim").Cart()
	p := album(t, "a1", "15.00")

	require.NoError(t, cart.AddItem(p))
	require.NoError(t, cart.AddItem(p))
	require.NoError(t, cart.AddItem(p))

	assert.Equal(t, 3, cart.Count(p))
}

func Test_Cart_AddItems(t *testing.T) {
	testCases := []struct {
		name      string
		prefill   int
		held      int
		qty       int
		expectErr error
		expectLen int
	}{
		{name: "Success - two copies", qty: 2, expectLen: 2},
		{name: "Success - one more copy", held: 1, qty: 1, expectLen: 2},
		{name: "Error - zero quantity", qty: 0, expectErr: ErrInvalidQuantity},
		{name: "Error - negative quantity", qty: -3, expectErr: ErrInvalidQuantity},
		{name: "Error - per item cap", held: 1, qty: 2, expectErr: ErrQuantityExceeded, expectLen: 1},
		{name: "Error - cart full", prefill: 9, qty: 2, expectErr: ErrCapacityExceeded, expectLen: 9},
		{name: "Error - huge quantity", held: 1, qty: math.MaxInt, expectErr: ErrQuantityExceeded, expectLen: 1},
		{name: "Error - huge quantity on empty cart", qty: math.MaxInt, expectErr: ErrQuantityExceeded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			cart := NewCustomer("c1", "Kim").Cart()
			p := album(t, "target", "20.00")
			for i := range tc.prefill {
				require.NoError(t, cart.AddItem(album(t, fmt.Sprintf("f%d", i), "1.00")))
			}
			for range tc.held {
				require.NoError(t, cart.AddItem(p))
			}

			// when
			err := cart.AddItems(p, tc.qty)

			// then
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectLen, cart.Len())
		})
	}
}

func Test_ErrQuantityExceeded_IsCapacityError(t *testing.T) {
	assert.ErrorIs(t, ErrQuantityExceeded, ErrCapacityExceeded)
}

func Test_Cart_RemoveItem(t *testing.T) {
	t.Run("removes first match only", func(t *testing.T) {
		cart := NewCustomer("c1", "Kim").Cart()
		a, b := album(t, "a", "1.00"), album(t, "b", "2.00")
		require.NoError(t, cart.AddItem(a))
		require.NoError(t, cart.AddItem(b))
		require.NoError(t, cart.AddItem(a))

		removed := cart.RemoveItem(a)

		assert.True(t, removed)
		assert.Equal(t, []Product{b, a}, cart.Items())
	})

	t.Run("empty cart is a no-op", func(t *testing.T) {
		cart := NewCustomer("c1", "Kim").Cart()

		removed := cart.RemoveItem(album(t, "a", "1.00"))

		assert.False(t, removed)
		assert.Zero(t, cart.Len())
	})

	t.Run("absent product is a no-op", func(t *testing.T) {
		cart := NewCustomer("c1", "Kim").Cart()
		b := album(t, "b", "2.00")
		require.NoError(t, cart.AddItem(b))

		removed := cart.RemoveItem(album(t, "a", "1.00"))

		assert.False(t, removed)
		assert.Equal(t, []Product{b}, cart.Items())
	})
}

func Test_Cart_Total(t *testing.T) {
	cart := NewCustomer("c1", "Kim").Cart()
	assert.Equal(t, "0.00", cart.Total().StringFixed(2))
	assert.Equal(t, "Total: $0.00 (0 items)", cart.Summary())

	require.NoError(t, cart.AddItem(album(t, "queen", "29.99")))
	require.NoError(t, cart.AddItem(album(t, "thriller", "24.99")))

	assert.Equal(t, "54.98", cart.Total().StringFixed(2))
	assert.Equal(t, "Total: $54.98 (2 items)", cart.Summary())
}

func Test_Cart_Clear(t *testing.T) {
	cart := NewCustomer("c1", "Kim").Cart()
	require.NoError(t, cart.AddItem(album(t, "a", "1.00")))

	cart.Clear()

	assert.Zero(t, cart.Len())
	assert.True(t, cart.Total().IsZero())
}

func Test_Cart_Items_ReturnsCopy(t *testing.T) {
	cart := NewCustomer("c1", "Kim").Cart()
	require.NoError(t, cart.AddItem(album(t, "a", "1.00")))

	items := cart.Items()
	items[0] = album(t, "b", "2.00")

	assert.Equal(t, "a", cart.Items()[0].ID)
}
