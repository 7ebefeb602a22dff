// Package coupon implements checkout-time coupon validation and the final
// discount composition. Coupons are read-only here; usage accounting happens
// in the order pipeline, not during validation.
package coupon

import (
	"math"
	"time"

	"github.com/nutrikart/cart-engine/internal/models"
)

// RejectionReason is a typed validation failure, surfaced to the shopper as
// a specific message rather than a generic error.
type RejectionReason string

const (
	ReasonNotFound      RejectionReason = "not_found"
	ReasonInactive      RejectionReason = "inactive"
	ReasonNotStarted    RejectionReason = "not_started"
	ReasonExpired       RejectionReason = "expired"
	ReasonBelowMinimum  RejectionReason = "below_minimum_order_value"
	ReasonUsageExceeded RejectionReason = "usage_limit_exceeded"
)

func (r RejectionReason) Message() string {
	switch r {
	case ReasonNotFound:
		return "Coupon code not found"
	case ReasonInactive:
		return "This coupon is no longer active"
	case ReasonNotStarted:
		return "This coupon is not valid yet"
	case ReasonExpired:
		return "This coupon has expired"
	case ReasonBelowMinimum:
		return "Cart total is below the minimum order value for this coupon"
	case ReasonUsageExceeded:
		return "This coupon has reached its usage limit"
	default:
		return "Coupon cannot be applied"
	}
}

// Result is the outcome of validating a coupon against a cart subtotal.
// Rejected carries the first failing check; accepted results carry the
// computed discount amount and the free-shipping flag.
type Result struct {
	Accepted       bool
	Reason         RejectionReason
	DiscountAmount float64
	FreeShipping   bool
}

func Rejected(reason RejectionReason) Result {
	return Result{Reason: reason}
}

// Validate runs the eligibility checks in a fixed order so rejection
// messages are deterministic: active flag, time window, minimum order value,
// usage limit. Existence is the repository's check, before this is called.
func Validate(c *models.Coupon, cartSubtotal float64, now time.Time) Result {
	if !c.IsActive {
		return Rejected(ReasonInactive)
	}
	if now.Before(c.StartsAt) {
		return Rejected(ReasonNotStarted)
	}
	if now.After(c.ExpiresAt) {
		return Rejected(ReasonExpired)
	}
	if cartSubtotal < c.MinimumOrderValue {
		return Rejected(ReasonBelowMinimum)
	}
	if c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit {
		return Rejected(ReasonUsageExceeded)
	}

	result := Result{Accepted: true}

	switch c.DiscountType {
	case models.DiscountPercentage:
		amount := math.Round(cartSubtotal * c.DiscountValue / 100)
		if c.MaxDiscountAmount != nil {
			amount = math.Min(amount, *c.MaxDiscountAmount)
		}
		result.DiscountAmount = amount
	case models.DiscountFixed:
		result.DiscountAmount = math.Min(c.DiscountValue, cartSubtotal)
	case models.DiscountFreeShipping:
		result.FreeShipping = true
	}

	if result.DiscountAmount < 0 {
		result.DiscountAmount = 0
	}

	return result
}
