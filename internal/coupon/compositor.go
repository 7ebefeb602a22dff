package coupon

// FinalTotal layers an accepted coupon discount on top of the line item
// subtotal. Upsell discounts are already baked into the subtotal, so the
// coupon always computes against the post-upsell base; the ordering is a
// fixed policy. A rejected or absent coupon leaves the subtotal untouched,
// and the result never goes below zero.
func FinalTotal(lineItemSubtotal float64, result Result) float64 {
	if !result.Accepted {
		return lineItemSubtotal
	}

	total := lineItemSubtotal - result.DiscountAmount
	if total < 0 {
		total = 0
	}
	return total
}
