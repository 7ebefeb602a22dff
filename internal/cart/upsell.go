package cart

import (
	"math"

	"github.com/nutrikart/cart-engine/internal/models"
)

// ApplyUpsellDiscount rewrites the target item's effective price and records
// its dependency on the related item. The call is a no-op when either item is
// absent or the percent is out of range: offer events race with cart edits,
// so a missed precondition is expected, not an error.
//
// Reapplying a discount to an already-discounted item replaces the prior
// relationship and recomputes off the same original base, never compounding.
func ApplyUpsellDiscount(c *models.Cart, targetID string, discountPercent float64, relatedID string) {
	if discountPercent < 0 || discountPercent > 100 {
		return
	}
	if targetID == relatedID {
		return
	}

	target := findItem(c, targetID)
	related := findItem(c, relatedID)
	if target == nil || related == nil {
		return
	}

	original := target.Price
	if target.Upsell != nil {
		original = target.Upsell.OriginalPrice
	}

	target.Price = discountedPrice(original, discountPercent)
	target.Upsell = &models.Upsell{
		OriginalPrice:   original,
		DiscountPercent: discountPercent,
		RelatedItemID:   relatedID,
	}
	touch(c)
}

// RemoveUpsellDiscount clears the discount only when the recorded related id
// matches the given one, so a discount re-targeted to a different related
// item in the interim is left alone.
func RemoveUpsellDiscount(c *models.Cart, targetID, relatedID string) {
	target := findItem(c, targetID)
	if target == nil || target.Upsell == nil {
		return
	}
	if target.Upsell.RelatedItemID != relatedID {
		return
	}

	target.Price = target.Upsell.OriginalPrice
	target.Upsell = nil
	touch(c)
}

// BestOffer picks the upsell offer to execute for a trigger product already
// in the cart: active offers whose target is not yet a line item, highest
// discount percentage first, ties broken by first-seen order. Returns nil
// when no offer qualifies.
func BestOffer(c *models.Cart, offers []models.UpsellOffer) *models.UpsellOffer {
	var best *models.UpsellOffer
	for i := range offers {
		offer := &offers[i]
		if !offer.Active {
			continue
		}
		if findItem(c, offer.TargetProductID) != nil {
			continue
		}
		if best == nil || offer.DiscountPercentage > best.DiscountPercentage {
			best = offer
		}
	}
	return best
}

// discountedPrice rounds to the nearest whole currency unit, half up.
func discountedPrice(original, percent float64) float64 {
	return math.Round(original * (1 - percent/100))
}
