package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/abgdnv/musicshop/internal/shop"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// file is the on-disk layout of a catalog data file.
type file struct {
	Albums []entry `yaml:"albums" validate:"dive"`
	CDs    []entry `yaml:"cds" validate:"dive"`
}

// entry is one catalog item. Tracks and Duration are only read for CDs.
type entry struct {
	ID       string `yaml:"id" validate:"required"`
	Name     string `yaml:"name" validate:"required"`
	Artist   string `yaml:"artist" validate:"required"`
	Genre    string `yaml:"genre" validate:"required"`
	Price    string `yaml:"price" validate:"required,numeric"`
	Image    string `yaml:"image"`
	Tracks   int    `yaml:"tracks" validate:"gte=0"`
	Duration string `yaml:"duration"`
}

// Load reads a catalog data file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML data. Albums come first, then CDs, each in file order.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if err := validator.New().Struct(f); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fieldErr := validationErrors[0]
			return nil, fmt.Errorf("invalid catalog entry %s: failed on rule: %s", fieldErr.Namespace(), fieldErr.Tag())
		}
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	products := make([]shop.Product, 0, len(f.Albums)+len(f.CDs))
	for _, e := range f.Albums {
		genre, price, err := e.common()
		if err != nil {
			return nil, err
		}
		p, err := shop.NewAlbum(e.ID, e.Name, e.Artist, genre, price, e.Image)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	for _, e := range f.CDs {
		genre, price, err := e.common()
		if err != nil {
			return nil, err
		}
		p, err := shop.NewCD(e.ID, e.Name, e.Artist, genre, price, e.Image, e.Tracks, e.Duration)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return New(products...)
}

// common parses the fields shared by albums and CDs.
func (e entry) common() (shop.Genre, decimal.Decimal, error) {
	genre, err := shop.ParseGenre(e.Genre)
	if err != nil {
		return "", decimal.Decimal{}, fmt.Errorf("catalog entry %s: %w", e.ID, err)
	}
	price, err := decimal.NewFromString(e.Price)
	if err != nil {
		return "", decimal.Decimal{}, fmt.Errorf("catalog entry %s: invalid price %q: %w", e.ID, e.Price, err)
	}
	return genre, price, nil
}
