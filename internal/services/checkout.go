package service

import (
	"context"

	"github.com/nutrikart/cart-engine/internal/coupon"
	apperrors "github.com/nutrikart/cart-engine/internal/errors"
	"github.com/nutrikart/cart-engine/internal/models"
)

// CheckoutPort is the order-creation collaborator. It receives the priced
// cart and the composed final total; order persistence and payment live on
// the other side of this interface.
type CheckoutPort interface {
	SubmitOrder(ctx context.Context, userID string, items []models.LineItem, finalTotal float64, freeShipping bool) error
}

// CheckoutService composes the final payable total: the coupon discount is
// layered on the already-upsell-discounted subtotal, in that fixed order.
type CheckoutService struct {
	carts    *CartService
	coupons  *CouponService
	checkout CheckoutPort
}

func NewCheckoutService(carts *CartService, coupons *CouponService, checkout CheckoutPort) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		coupons:  coupons,
		checkout: checkout,
	}
}

func (s *CheckoutService) Quote(ctx context.Context, userID string, req *models.CheckoutQuoteRequest) (*models.CheckoutQuote, error) {
	c, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(c.Items) == 0 {
		return nil, apperrors.BadRequestError("Cart is empty")
	}

	result := coupon.Result{}

	var cpn *models.Coupon

	if req.CouponCode != "" {
		result, cpn, err = s.coupons.validateCode(ctx, req.CouponCode, c.Total)
		if err != nil {
			return nil, err
		}

		if !result.Accepted {
			return nil, apperrors.CouponRejectedError(result.Reason.Message())
		}
	}

	finalTotal := coupon.FinalTotal(c.Total, result)

	if err := s.checkout.SubmitOrder(ctx, userID, c.Items, finalTotal, result.FreeShipping); err != nil {
		return nil, apperrors.InternalError("Failed to hand off order").WithError(err)
	}

	// Usage is consumed only once the order is actually handed off.
	if cpn != nil {
		if err := s.coupons.coupons.IncrementUsage(ctx, cpn.ID); err != nil {
			return nil, apperrors.DatabaseError("Failed to record coupon usage").WithError(err)
		}
	}

	return &models.CheckoutQuote{
		Items:          c.Items,
		Subtotal:       c.Total,
		DiscountAmount: result.DiscountAmount,
		FinalTotal:     finalTotal,
		FreeShipping:   result.FreeShipping,
	}, nil
}
