// Package shop contains the music shop domain: catalog items, carts, customers and sales.
package shop

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Kind tells which variant a Product is.
type Kind string

const (
	KindAlbum Kind = "album"
	KindCD    Kind = "cd"
)

// ParseKind converts a variant name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindAlbum, KindCD:
		return k, nil
	default:
		return "", fmt.Errorf("unknown product kind %q", s)
	}
}

var durationPattern = regexp.MustCompile(`^\d{1,3}:[0-5]\d$`)

// Product is a catalog item. Albums and CDs share one shape; TrackCount and
// Duration are only set for CDs.
type Product struct {
	ID         string
	Kind       Kind
	Name       string
	Artist     string
	Genre      Genre
	Price      decimal.Decimal
	ImageRef   string
	TrackCount int
	Duration   string
}

// NewAlbum creates an album product.
func NewAlbum(id, name, artist string, genre Genre, price decimal.Decimal, imageRef string) (Product, error) {
	p := Product{
		ID:       id,
		Kind:     KindAlbum,
		Name:     name,
		Artist:   artist,
		Genre:    genre,
		Price:    price,
		ImageRef: imageRef,
	}
	if err := p.validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// NewCD creates a CD product. duration is formatted as mm:ss.
func NewCD(id, name, artist string, genre Genre, price decimal.Decimal, imageRef string, trackCount int, duration string) (Product, error) {
	p := Product{
		ID:         id,
		Kind:       KindCD,
		Name:       name,
		Artist:     artist,
		Genre:      genre,
		Price:      price,
		ImageRef:   imageRef,
		TrackCount: trackCount,
		Duration:   duration,
	}
	if err := p.validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (p Product) validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: name is required for %s", ErrInvalidProduct, p.ID)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: negative price %s for %s", ErrInvalidProduct, p.Price, p.ID)
	}
	if !p.Genre.Valid() {
		return fmt.Errorf("%w: unknown genre %q for %s", ErrInvalidProduct, p.Genre, p.ID)
	}
	if p.Kind == KindCD {
		if p.TrackCount <= 0 {
			return fmt.Errorf("%w: track count must be positive for %s", ErrInvalidProduct, p.ID)
		}
		if !durationPattern.MatchString(p.Duration) {
			return fmt.Errorf("%w: duration %q is not mm:ss for %s", ErrInvalidProduct, p.Duration, p.ID)
		}
	}
	return nil
}

// IsCD reports whether the product is a CD.
func (p Product) IsCD() bool {
	return p.Kind == KindCD
}

// Label is the display label used in cart and receipt listings.
func (p Product) Label() string {
	if p.IsCD() {
		return fmt.Sprintf("%s - %s (CD)", p.Name, p.Artist)
	}
	return fmt.Sprintf("%s - %s", p.Name, p.Artist)
}

// sameItem matches products by catalog ID.
func sameItem(a, b Product) bool {
	return a.ID == b.ID
}

// sum returns the total price of items.
func sum(items []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range items {
		total = total.Add(p.Price)
	}
	return total
}
