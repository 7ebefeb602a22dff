package service_test

import (
	"testing"
	"time"

	apperrors "github.com/nutrikart/cart-engine/internal/errors"
	"github.com/nutrikart/cart-engine/internal/models"
	service "github.com/nutrikart/cart-engine/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCheckoutService(t *testing.T) (*service.CheckoutService, *MockCouponRepository, *MockSnapshotRepository, *MockCheckoutPort) {
	t.Helper()

	snapshots := &MockSnapshotRepository{}
	products := &MockProductRepository{}
	coupons := &MockCouponRepository{}
	checkout := &MockCheckoutPort{}
	carts := service.NewCartService(snapshots, products)
	couponSvc := service.NewCouponService(coupons, carts)

	return service.NewCheckoutService(carts, couponSvc, checkout), coupons, snapshots, checkout
}

// discountedCart mirrors the storefront scenario: A at 1000, B upsell
// discounted from 2000 to 1700, subtotal 2700.
func discountedCart() *models.Cart {
	return &models.Cart{
		UserID: userID,
		Items: []models.LineItem{
			{ProductID: "a", Quantity: 1, Price: 1000},
			{ProductID: "b", Quantity: 1, Price: 1700,
				Upsell: &models.Upsell{OriginalPrice: 2000, DiscountPercent: 15, RelatedItemID: "a"}},
		},
		Total:     2700,
		ItemCount: 2,
	}
}

func TestQuote(t *testing.T) {
	ctx := t.Context()

	t.Run("No Coupon - Final Total Is Subtotal", func(t *testing.T) {
		// Arrange
		svc, _, snapshots, checkout := setupCheckoutService(t)
		snapshots.On("Load", ctx, userID).Return(discountedCart(), true, nil).Once()
		checkout.On("SubmitOrder", ctx, userID, mock.Anything, 2700.0, false).Return(nil).Once()

		// Act
		quote, err := svc.Quote(ctx, userID, &models.CheckoutQuoteRequest{})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2700.0, quote.Subtotal)
		assert.Equal(t, 2700.0, quote.FinalTotal)
		assert.Equal(t, 0.0, quote.DiscountAmount)
		checkout.AssertExpectations(t)
	})

	t.Run("Coupon Layered On Upsell-Discounted Subtotal", func(t *testing.T) {
		// Arrange: the 20% coupon computes against 2700, the post-upsell
		// subtotal, never the pre-discount 3000.
		svc, coupons, snapshots, checkout := setupCheckoutService(t)
		snapshots.On("Load", ctx, userID).Return(discountedCart(), true, nil).Once()
		coupons.On("FindByCode", ctx, "SAVE20").Return(activeCoupon(), nil).Once()
		checkout.On("SubmitOrder", ctx, userID, mock.Anything, 2160.0, false).Return(nil).Once()
		coupons.On("IncrementUsage", ctx, "cpn-1").Return(nil).Once()

		// Act
		quote, err := svc.Quote(ctx, userID, &models.CheckoutQuoteRequest{CouponCode: "SAVE20"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 540.0, quote.DiscountAmount) // 20% of 2700
		assert.Equal(t, 2160.0, quote.FinalTotal)
		checkout.AssertExpectations(t)
		coupons.AssertExpectations(t)
	})

	t.Run("Free Shipping Flag Passed Through", func(t *testing.T) {
		// Arrange
		svc, coupons, snapshots, checkout := setupCheckoutService(t)
		cpn := &models.Coupon{
			ID:           "cpn-2",
			Code:         "FREESHIP",
			DiscountType: models.DiscountFreeShipping,
			StartsAt:     time.Now().Add(-time.Hour),
			ExpiresAt:    time.Now().Add(time.Hour),
			IsActive:     true,
		}
		snapshots.On("Load", ctx, userID).Return(discountedCart(), true, nil).Once()
		coupons.On("FindByCode", ctx, "FREESHIP").Return(cpn, nil).Once()
		checkout.On("SubmitOrder", ctx, userID, mock.Anything, 2700.0, true).Return(nil).Once()
		coupons.On("IncrementUsage", ctx, "cpn-2").Return(nil).Once()

		// Act
		quote, err := svc.Quote(ctx, userID, &models.CheckoutQuoteRequest{CouponCode: "FREESHIP"})

		// Assert
		require.NoError(t, err)
		assert.True(t, quote.FreeShipping)
		assert.Equal(t, 2700.0, quote.FinalTotal)
		checkout.AssertExpectations(t)
	})

	t.Run("Rejected Coupon Blocks Quote", func(t *testing.T) {
		// Arrange
		svc, coupons, snapshots, checkout := setupCheckoutService(t)
		cpn := activeCoupon()
		cpn.IsActive = false
		snapshots.On("Load", ctx, userID).Return(discountedCart(), true, nil).Once()
		coupons.On("FindByCode", ctx, "SAVE20").Return(cpn, nil).Once()

		// Act
		quote, err := svc.Quote(ctx, userID, &models.CheckoutQuoteRequest{CouponCode: "SAVE20"})

		// Assert
		assert.Nil(t, quote)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeCouponRejected, appErr.Code)
		checkout.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Empty Cart Rejected", func(t *testing.T) {
		// Arrange
		svc, _, snapshots, checkout := setupCheckoutService(t)
		snapshots.On("Load", ctx, userID).Return(nil, false, nil).Once()

		// Act
		quote, err := svc.Quote(ctx, userID, &models.CheckoutQuoteRequest{})

		// Assert
		assert.Nil(t, quote)
		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
		checkout.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Oversized Fixed Coupon Floors At Zero", func(t *testing.T) {
		// Arrange
		svc, coupons, snapshots, checkout := setupCheckoutService(t)
		cpn := &models.Coupon{
			ID:            "cpn-3",
			Code:          "MEGA",
			DiscountType:  models.DiscountFixed,
			DiscountValue: 99999,
			StartsAt:      time.Now().Add(-time.Hour),
			ExpiresAt:     time.Now().Add(time.Hour),
			IsActive:      true,
		}
		snapshots.On("Load", ctx, userID).Return(discountedCart(), true, nil).Once()
		coupons.On("FindByCode", ctx, "MEGA").Return(cpn, nil).Once()
		checkout.On("SubmitOrder", ctx, userID, mock.Anything, 0.0, false).Return(nil).Once()
		coupons.On("IncrementUsage", ctx, "cpn-3").Return(nil).Once()

		// Act
		quote, err := svc.Quote(ctx, userID, &models.CheckoutQuoteRequest{CouponCode: "MEGA"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 0.0, quote.FinalTotal)
		// Fixed discounts cap at the subtotal; net never goes negative.
		assert.Equal(t, 2700.0, quote.DiscountAmount)
	})
}
