package models

import "time"

type DiscountType string

const (
	DiscountPercentage   DiscountType = "percentage"
	DiscountFixed        DiscountType = "fixed"
	DiscountFreeShipping DiscountType = "free_shipping"
)

// Coupon is read-only to the engine; ownership of coupon storage lives with
// the coupon store.
type Coupon struct {
	ID                string       `json:"id"`
	Code              string       `json:"code"`
	DiscountType      DiscountType `json:"discount_type"`
	DiscountValue     float64      `json:"discount_value"`
	MinimumOrderValue float64      `json:"minimum_order_value"`
	MaxDiscountAmount *float64     `json:"max_discount_amount,omitempty"`
	UsageLimit        int          `json:"usage_limit"`
	UsageCount        int          `json:"usage_count"`
	StartsAt          time.Time    `json:"starts_at"`
	ExpiresAt         time.Time    `json:"expires_at"`
	IsActive          bool         `json:"is_active"`
}

type ValidateCouponRequest struct {
	Code string `json:"code" validate:"required"`
	// Seq orders the client's validation attempts; responses echo it so the
	// client can drop results superseded by a later attempt.
	Seq int64 `json:"seq" validate:"min=0"`
}

type CouponQuote struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discount_amount"`
	FreeShipping   bool    `json:"free_shipping"`
	Seq            int64   `json:"seq"`
}

type CheckoutQuoteRequest struct {
	CouponCode string `json:"coupon_code,omitempty"`
}

type CheckoutQuote struct {
	Items          []LineItem `json:"items"`
	Subtotal       float64    `json:"subtotal"`
	DiscountAmount float64    `json:"discount_amount"`
	FinalTotal     float64    `json:"final_total"`
	FreeShipping   bool       `json:"free_shipping"`
}
