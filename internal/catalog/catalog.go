package catalog

import (
	"fmt"
	"os"
	"sort"

	"github.com/fastbillx/checkout/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultPrice is charged for any product the catalog does not know.
const DefaultPrice = 1.00

// Catalog maps normalized product names to unit prices. Lookups never fail:
// unknown names fall back to DefaultPrice.
type Catalog struct {
	prices map[string]float64
}

// New returns a catalog seeded with the built-in demo price table.
func New() *Catalog {
	prices := make(map[string]float64, len(defaultPrices))
	for name, price := range defaultPrices {
		prices[name] = price
	}
	return &Catalog{prices: prices}
}

// empty returns a catalog with no entries; every lookup yields DefaultPrice.
func empty() *Catalog {
	return &Catalog{prices: make(map[string]float64)}
}

// PriceOf looks up the unit price for a product name, case-insensitively.
// Absent names are not an error: the default price is returned.
func (c *Catalog) PriceOf(name string) float64 {
	if price, ok := c.prices[domain.NormalizeName(name)]; ok {
		return price
	}
	return DefaultPrice
}

// SetPrice inserts or overwrites an entry. Negative prices are clamped to 0
// so that the catalog, like PriceOf, stays a total function.
func (c *Catalog) SetPrice(name string, price float64) {
	if price < 0 {
		price = 0
	}
	c.prices[domain.NormalizeName(name)] = price
}

// Has reports whether the catalog holds an explicit entry for name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.prices[domain.NormalizeName(name)]
	return ok
}

// Names returns all explicitly priced product names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.prices))
	for name := range c.prices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of explicit entries.
func (c *Catalog) Len() int {
	return len(c.prices)
}

type priceFile struct {
	Prices map[string]float64 `yaml:"prices"`
}

// LoadFile merges a YAML price file over the current entries. The file holds
// a single "prices" mapping from product name to unit price.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading price file: %w", err)
	}
	var pf priceFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parsing price file %s: %w", path, err)
	}
	for name, price := range pf.Prices {
		c.SetPrice(name, price)
	}
	return nil
}
