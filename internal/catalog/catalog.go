// Package catalog holds the read-only set of products offered by the shop.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/abgdnv/musicshop/internal/shop"
)

var ErrDuplicateID = errors.New("duplicate product id")

// Catalog is an ordered, read-only collection of products.
// It is safe for concurrent use once built.
type Catalog struct {
	products []shop.Product
	byID     map[string]int
}

// Query narrows a catalog listing. Zero fields match everything.
type Query struct {
	Kind   shop.Kind
	Genre  shop.Genre
	Artist string
}

// New builds a catalog from products, keeping their order.
func New(products ...shop.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]shop.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// All returns every product in catalog order.
func (c *Catalog) All() []shop.Product {
	return slices.Clone(c.products)
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// ByID looks a product up by its catalog ID.
func (c *Catalog) ByID(id string) (shop.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return shop.Product{}, false
	}
	return c.products[i], true
}

// Filter returns the products matching q in catalog order.
func (c *Catalog) Filter(q Query) []shop.Product {
	list := make([]shop.Product, 0, len(c.products))
	for _, p := range c.products {
		if q.Kind != "" && p.Kind != q.Kind {
			continue
		}
		if q.Genre != "" && p.Genre != q.Genre {
			continue
		}
		if q.Artist != "" && !strings.EqualFold(p.Artist, q.Artist) {
			continue
		}
		list = append(list, p)
	}
	return list
}

// Genres returns the distinct genres present in the catalog, in first-seen order.
func (c *Catalog) Genres() []shop.Genre {
	var genres []shop.Genre
	for _, p := range c.products {
		if !slices.Contains(genres, p.Genre) {
			genres = append(genres, p.Genre)
		}
	}
	return genres
}
