package models

import (
	"sort"
	"strings"
)

// Sort modes for the collection view.
const (
	SortRelevant = "relevant"
	SortLowHigh  = "low-high"
	SortHighLow  = "high-low"
)

// ListingPageSize is the number of products revealed per "load more"
// step on the collection view.
const ListingPageSize = 10

// FilterProducts applies the collection filters: a case-insensitive
// substring match on the product name, then category and sub-category
// membership. Filters OR within a dimension and AND across dimensions;
// an empty filter set imposes no constraint on that dimension. The
// catalog order is preserved.
func FilterProducts(products []Product, search string, categories, subCategories []string) []Product {
	filtered := make([]Product, 0, len(products))
	search = strings.ToLower(search)
	for _, product := range products {
		if search != "" && !strings.Contains(strings.ToLower(product.Name), search) {
			continue
		}
		if len(categories) > 0 && !containsString(categories, product.Category) {
			continue
		}
		if len(subCategories) > 0 && !containsString(subCategories, product.SubCategory) {
			continue
		}
		filtered = append(filtered, product)
	}
	return filtered
}

// SortProducts orders a filtered slice by the given mode. "relevant"
// keeps the incoming order; price sorts are stable so ties keep their
// relative positions. The input slice is not modified.
func SortProducts(products []Product, mode string) []Product {
	sorted := make([]Product, len(products))
	copy(sorted, products)
	switch mode {
	case SortLowHigh:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	case SortHighLow:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price > sorted[j].Price })
	}
	return sorted
}

// Pager reveals a filtered and sorted product sequence in fixed-size
// pages. Each LoadMore appends the next page to the visible prefix;
// loading past the end is a no-op.
type Pager struct {
	items   []Product
	visible int
}

func NewPager(items []Product) *Pager {
	p := &Pager{items: items}
	p.LoadMore()
	return p
}

// LoadMore reveals up to ListingPageSize further products and reports
// whether anything new became visible.
func (p *Pager) LoadMore() bool {
	if p.visible >= len(p.items) {
		return false
	}
	p.visible += ListingPageSize
	if p.visible > len(p.items) {
		p.visible = len(p.items)
	}
	return true
}

// Visible returns the currently revealed prefix.
func (p *Pager) Visible() []Product {
	return p.items[:p.visible]
}

// Remaining reports how many products are not yet revealed.
func (p *Pager) Remaining() int {
	return len(p.items) - p.visible
}

// Reset restarts the pager over a new filtered sequence.
func (p *Pager) Reset(items []Product) {
	p.items = items
	p.visible = 0
	p.LoadMore()
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
