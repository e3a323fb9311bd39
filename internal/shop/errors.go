package shop

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when an item does not fit into the cart.
	ErrCapacityExceeded = errors.New("cart capacity exceeded")
	// ErrQuantityExceeded is returned when the per-item quantity cap of the cart is reached.
	ErrQuantityExceeded = fmt.Errorf("%w: per-item quantity limit reached", ErrCapacityExceeded)
	// ErrPurchaseLimitExceeded is returned when a customer already holds the maximum number of purchases.
	ErrPurchaseLimitExceeded = errors.New("purchase limit reached, return an item before purchasing another")
	ErrInvalidQuantity       = errors.New("quantity must be a positive number")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrForeignCart           = errors.New("cart does not belong to customer")
	ErrInvalidProduct        = errors.New("invalid product")
)
