// Package cart implements the cart pricing engine: the line item state
// machine, upsell discount application and total aggregation. Every function
// here is a pure, synchronous mutation of a models.Cart; persistence and
// catalog lookups happen around this package, never inside it.
package cart

import (
	"time"

	"github.com/nutrikart/cart-engine/internal/models"
)

// AddItem merges the given item into the cart. An existing item with the
// same product id gets its quantity incremented and keeps its current price;
// a new item is inserted at the end with no discount fields set.
func AddItem(c *models.Cart, item models.LineItem, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	if existing := findItem(c, item.ProductID); existing != nil {
		existing.Quantity += quantity
		touch(c)
		return
	}

	item.Quantity = quantity
	item.Upsell = nil
	c.Items = append(c.Items, item)
	touch(c)
}

// RemoveItem deletes the line item and, atomically with the removal, clears
// the upsell discount of any item that depended on it.
func RemoveItem(c *models.Cart, productID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept

	clearDependents(c, productID)
	touch(c)
}

// UpdateQuantity sets the quantity in place, price untouched. A quantity of
// zero or below behaves exactly as RemoveItem, including the cascade.
func UpdateQuantity(c *models.Cart, productID string, quantity int) {
	if quantity <= 0 {
		RemoveItem(c, productID)
		return
	}

	if item := findItem(c, productID); item != nil {
		item.Quantity = quantity
	}
	touch(c)
}

// Clear empties the cart unconditionally.
func Clear(c *models.Cart) {
	c.Items = []models.LineItem{}
	touch(c)
}

// Repair validates the upsell invariants of a restored snapshot and fixes
// what it can: discounts whose related item is gone are dropped (price
// restored), surviving discounts have their price re-derived from the
// recorded base, and items with non-positive quantity are removed.
func Repair(c *models.Cart) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.Quantity >= 1 {
			kept = append(kept, item)
		}
	}
	c.Items = kept

	for i := range c.Items {
		item := &c.Items[i]
		if item.Upsell == nil {
			continue
		}
		u := item.Upsell
		related := findItem(c, u.RelatedItemID)
		if related == nil || u.RelatedItemID == item.ProductID ||
			u.DiscountPercent < 0 || u.DiscountPercent > 100 {
			item.Price = u.OriginalPrice
			item.Upsell = nil
			continue
		}
		item.Price = discountedPrice(u.OriginalPrice, u.DiscountPercent)
	}

	Recalculate(c)
}

// clearDependents restores the original price of every item whose discount
// was conditioned on the removed product.
func clearDependents(c *models.Cart, removedID string) {
	for i := range c.Items {
		item := &c.Items[i]
		if item.Upsell != nil && item.Upsell.RelatedItemID == removedID {
			item.Price = item.Upsell.OriginalPrice
			item.Upsell = nil
		}
	}
}

func findItem(c *models.Cart, productID string) *models.LineItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func touch(c *models.Cart) {
	c.UpdatedAt = time.Now()
	Recalculate(c)
}
