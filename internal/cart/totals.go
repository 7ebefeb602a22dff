package cart

import "github.com/nutrikart/cart-engine/internal/models"

// Recalculate recomputes Total and ItemCount from the line items. Totals are
// never stored independently of items; this runs after every mutation before
// the state is persisted.
func Recalculate(c *models.Cart) {
	var total float64
	var count int
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
		count += item.Quantity
	}
	c.Total = total
	c.ItemCount = count
}

// Subtotal returns the coupon base: line item price × quantity summed over
// the cart, upsell discounts already baked in.
func Subtotal(c *models.Cart) float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
