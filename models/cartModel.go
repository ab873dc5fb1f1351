package models

import "errors"

var (
	ErrSizeRequired    = errors.New("product size is required")
	ErrCartLineMissing = errors.New("cart has no entry for this product and size")
)

// Cart maps product id -> size -> quantity. It is a plain serializable
// value passed explicitly through the checkout call chain; the server
// never stores one.
type Cart map[uint]map[string]int

func NewCart() Cart {
	return Cart{}
}

// AddItem increments the quantity for (productID, size) by one,
// creating the entry if absent. The size must be non-empty.
func (c Cart) AddItem(productID uint, size string) error {
	if size == "" {
		return ErrSizeRequired
	}
	if c[productID] == nil {
		c[productID] = map[string]int{}
	}
	c[productID][size]++
	return nil
}

// SetQuantity overwrites the quantity for an existing (productID, size)
// pair. Setting a pair that was never added is an error rather than a
// silent partial insert.
func (c Cart) SetQuantity(productID uint, size string, quantity int) error {
	sizes, ok := c[productID]
	if !ok {
		return ErrCartLineMissing
	}
	if _, ok := sizes[size]; !ok {
		return ErrCartLineMissing
	}
	sizes[size] = quantity
	return nil
}

// Count returns the sum of all strictly positive quantities. Entries
// with quantity <= 0 are skipped, not removed.
func (c Cart) Count() int {
	total := 0
	for _, sizes := range c {
		for _, qty := range sizes {
			if qty > 0 {
				total += qty
			}
		}
	}
	return total
}

// TotalAmount prices the cart against the supplied catalog. Products no
// longer present in the catalog contribute zero: a removed product must
// not corrupt the total for the remaining valid lines.
func (c Cart) TotalAmount(catalog []Product) float64 {
	total := 0.0
	for productID, sizes := range c {
		product, ok := findProduct(catalog, productID)
		if !ok {
			continue
		}
		for _, qty := range sizes {
			if qty > 0 {
				total += product.Price * float64(qty)
			}
		}
	}
	return total
}

// Lines flattens the cart into order lines with name and price
// snapshots taken from the catalog. Non-positive quantities and
// products missing from the catalog are skipped.
func (c Cart) Lines(catalog []Product) []OrderItem {
	var lines []OrderItem
	for productID, sizes := range c {
		product, ok := findProduct(catalog, productID)
		if !ok {
			continue
		}
		for size, qty := range sizes {
			if qty > 0 {
				lines = append(lines, OrderItem{
					ProductID: product.ID,
					Name:      product.Name,
					Size:      size,
					Quantity:  qty,
					Price:     product.Price,
				})
			}
		}
	}
	return lines
}

func findProduct(catalog []Product, id uint) (Product, bool) {
	for _, product := range catalog {
		if product.ID == id {
			return product, true
		}
	}
	return Product{}, false
}
