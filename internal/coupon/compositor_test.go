package coupon_test

import (
	"testing"

	"github.com/nutrikart/cart-engine/internal/coupon"
	"github.com/stretchr/testify/assert"
)

func TestFinalTotal(t *testing.T) {
	t.Run("No Coupon Leaves Subtotal", func(t *testing.T) {
		assert.Equal(t, 2700.0, coupon.FinalTotal(2700, coupon.Result{}))
	})

	t.Run("Rejected Coupon Leaves Subtotal", func(t *testing.T) {
		result := coupon.Rejected(coupon.ReasonExpired)

		assert.Equal(t, 2700.0, coupon.FinalTotal(2700, result))
	})

	t.Run("Accepted Discount Subtracted", func(t *testing.T) {
		result := coupon.Result{Accepted: true, DiscountAmount: 500}

		assert.Equal(t, 2200.0, coupon.FinalTotal(2700, result))
	})

	t.Run("Floored At Zero", func(t *testing.T) {
		result := coupon.Result{Accepted: true, DiscountAmount: 5000}

		assert.Equal(t, 0.0, coupon.FinalTotal(2700, result))
	})

	t.Run("Free Shipping Does Not Change Total", func(t *testing.T) {
		result := coupon.Result{Accepted: true, FreeShipping: true}

		assert.Equal(t, 2700.0, coupon.FinalTotal(2700, result))
	})
}
