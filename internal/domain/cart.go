package domain

import (
	"maps"
	"slices"
)

// Cart maps a product id to a positive quantity. An absent product has quantity 0.
// Cart knows nothing about stock; ceilings are enforced by the caller.
type Cart struct {
	OwnerID string
	items   map[int64]int
}

type CartItem struct {
	ProductID int64
	Quantity  int
}

func NewCart(ownerID string, items ...CartItem) Cart {
	c := Cart{OwnerID: ownerID, items: make(map[int64]int, len(items))}
	for _, item := range items {
		if item.Quantity > 0 {
			c.items[item.ProductID] += item.Quantity
		}
	}
	return c
}

func (c *Cart) ensure() {
	if c.items == nil {
		c.items = make(map[int64]int)
	}
}

func (c *Cart) Increase(productID int64) {
	c.ensure()
	c.items[productID]++
}

// Decrease removes the entry once the quantity drops below 1.
func (c *Cart) Decrease(productID int64) {
	q, ok := c.items[productID]
	if !ok {
		return
	}
	if q-1 < 1 {
		delete(c.items, productID)
		return
	}
	c.items[productID] = q - 1
}

func (c *Cart) SetQuantity(productID int64, n int) error {
	if n < 1 {
		return ErrInvalidQuantity
	}
	c.ensure()
	c.items[productID] = n
	return nil
}

func (c *Cart) Remove(productID int64) {
	delete(c.items, productID)
}

func (c *Cart) Clear() {
	clear(c.items)
}

func (c Cart) QuantityOf(productID int64) int {
	return c.items[productID]
}

func (c Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items returns the cart lines ordered by product id.
func (c Cart) Items() []CartItem {
	ids := slices.Sorted(maps.Keys(c.items))

	items := make([]CartItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, CartItem{ProductID: id, Quantity: c.items[id]})
	}
	return items
}

func (c Cart) Clone() Cart {
	return Cart{OwnerID: c.OwnerID, items: maps.Clone(c.items)}
}
