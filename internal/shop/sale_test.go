package shop

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func Test_NewSale_SnapshotsItems(t *testing.T) {
	// given
	items := []Product{album(t, "a", "1.00"), album(t, "b", "2.00")}
	sale := NewSale("s1", CustomerRef{ID: "c1", Name: "Bjork"}, items, decimal.RequireFromString("3.00"), time.Now())

	// when
	items[0] = album(t, "changed", "9.00")
	got := sale.Items()
	got[1] = album(t, "changed", "9.00")

	// then
	assert.Equal(t, "a", sale.Items()[0].ID)
	assert.Equal(t, "b", sale.Items()[1].ID)
	assert.Equal(t, "3", sale.Total().String())
}
