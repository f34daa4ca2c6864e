// Package cart models the shopping cart as an explicit state container: a
// fixed transition set (Add, Remove, SetQuantity, Clear) where every
// transition returns a new immutable snapshot. Persistence is a separate
// serialize/deserialize boundary, never a side effect of a mutation.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInsufficientStock rejects additions that would push a line past the
// product's available stock.
var ErrInsufficientStock = errors.New("quantity exceeds available stock")

// Item is one cart line. Lines are keyed by product, size and color: the
// same product in a different size or color is a separate line.
type Item struct {
	ProductID     uint     `json:"product_id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discount_price"`
	ImageURL      string   `json:"image_url"`
	Brand         string   `json:"brand"`
	Category      string   `json:"category"`
	Size          string   `json:"size,omitempty"`
	Color         string   `json:"color,omitempty"`
	Stock         int      `json:"stock"`
	Quantity      int      `json:"quantity"`
}

func (i Item) key() string {
	return fmt.Sprintf("%d|%s|%s", i.ProductID, i.Size, i.Color)
}

func (i Item) unitPrice() float64 {
	if i.DiscountPrice != nil {
		return *i.DiscountPrice
	}
	return i.Price
}

// Cart is an immutable snapshot of cart state. The zero value is an empty
// cart; transitions never modify the receiver.
type Cart struct {
	Items []Item `json:"items"`
}

// New returns an empty cart.
func New() Cart { return Cart{} }

func (c Cart) clone() Cart {
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

func (c Cart) find(key string) int {
	for idx, it := range c.Items {
		if it.key() == key {
			return idx
		}
	}
	return -1
}

// Add merges qty units of the item into the cart. The resulting line
// quantity must not exceed the item's stock.
func (c Cart) Add(item Item, qty int) (Cart, error) {
	if qty <= 0 {
		qty = 1
	}

	next := c.clone()
	if idx := next.find(item.key()); idx >= 0 {
		merged := next.Items[idx].Quantity + qty
		if merged > item.Stock {
			return c, ErrInsufficientStock
		}
		next.Items[idx].Quantity = merged
		// Refresh the snapshot of product data the line carries.
		next.Items[idx].Stock = item.Stock
		next.Items[idx].Price = item.Price
		next.Items[idx].DiscountPrice = item.DiscountPrice
		return next, nil
	}

	if qty > item.Stock {
		return c, ErrInsufficientStock
	}
	item.Quantity = qty
	next.Items = append(next.Items, item)
	return next, nil
}

// Remove drops the line matching product, size and color. Removing an
// absent line is a no-op.
func (c Cart) Remove(productID uint, size, color string) Cart {
	key := Item{ProductID: productID, Size: size, Color: color}.key()
	next := Cart{Items: make([]Item, 0, len(c.Items))}
	for _, it := range c.Items {
		if it.key() != key {
			next.Items = append(next.Items, it)
		}
	}
	return next
}

// SetQuantity replaces a line's quantity. Zero or negative removes the
// line; values above stock are clamped to stock.
func (c Cart) SetQuantity(productID uint, size, color string, qty int) Cart {
	if qty <= 0 {
		return c.Remove(productID, size, color)
	}

	next := c.clone()
	key := Item{ProductID: productID, Size: size, Color: color}.key()
	if idx := next.find(key); idx >= 0 {
		if qty > next.Items[idx].Stock {
			qty = next.Items[idx].Stock
		}
		next.Items[idx].Quantity = qty
	}
	return next
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart { return Cart{} }

// TotalItems is the number of units across all lines.
func (c Cart) TotalItems() int {
	total := 0
	for _, it := range c.Items {
		total += it.Quantity
	}
	return total
}

// TotalPrice sums line totals, honoring discount prices.
func (c Cart) TotalPrice() float64 {
	total := 0.0
	for _, it := range c.Items {
		total += it.unitPrice() * float64(it.Quantity)
	}
	return total
}

// Encode serializes the snapshot for persistence.
func (c Cart) Encode() ([]byte, error) {
	return json.Marshal(c)
}

// Decode rebuilds a snapshot from its serialized form.
func Decode(data []byte) (Cart, error) {
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return Cart{}, fmt.Errorf("failed to decode cart: %w", err)
	}
	return c, nil
}
