package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/nutrikart/cart-engine/internal/coupon"
	apperrors "github.com/nutrikart/cart-engine/internal/errors"
	"github.com/nutrikart/cart-engine/internal/metrics"
	"github.com/nutrikart/cart-engine/internal/models"
	repository "github.com/nutrikart/cart-engine/internal/repositories"
)

// CouponService validates coupon codes against the current cart subtotal.
// Validation never mutates line item prices and never consumes usage; usage
// is incremented by the order pipeline once an order is actually placed.
type CouponService struct {
	coupons repository.CouponRepository
	carts   *CartService
	now     func() time.Time

	// Shoppers retype codes while earlier validations are still in flight;
	// only the result of the latest issued attempt may reach the client.
	mu        sync.Mutex
	latestSeq map[string]int64
}

func NewCouponService(coupons repository.CouponRepository, carts *CartService) *CouponService {
	return &CouponService{
		coupons:   coupons,
		carts:     carts,
		now:       time.Now,
		latestSeq: make(map[string]int64),
	}
}

// Validate checks the code against the user's current subtotal. Attempts are
// ordered by the client-issued seq: an attempt older than the latest one
// seen for this user is rejected as superseded regardless of its outcome.
func (s *CouponService) Validate(ctx context.Context, userID string, req *models.ValidateCouponRequest) (*models.CouponQuote, error) {
	if !s.claimSeq(userID, req.Seq) {
		return nil, apperrors.SupersededError("A newer coupon validation is in progress")
	}

	c, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, cpn, err := s.validateCode(ctx, req.Code, c.Total)
	if err != nil {
		return nil, err
	}

	if !result.Accepted {
		metrics.RecordCouponValidation(string(result.Reason))

		return nil, apperrors.CouponRejectedError(result.Reason.Message())
	}

	metrics.RecordCouponValidation("accepted")

	return &models.CouponQuote{
		Code:           cpn.Code,
		DiscountAmount: result.DiscountAmount,
		FreeShipping:   result.FreeShipping,
		Seq:            req.Seq,
	}, nil
}

// validateCode runs the full check sequence for a code against a subtotal:
// existence first, then the engine's ordered eligibility checks.
func (s *CouponService) validateCode(ctx context.Context, code string, subtotal float64) (coupon.Result, *models.Coupon, error) {
	cpn, err := s.coupons.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return coupon.Rejected(coupon.ReasonNotFound), nil, nil
		}

		return coupon.Result{}, nil, apperrors.DatabaseError("Failed to look up coupon").WithError(err)
	}

	return coupon.Validate(cpn, subtotal, s.now()), cpn, nil
}

func (s *CouponService) claimSeq(userID string, seq int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if latest, ok := s.latestSeq[userID]; ok && seq < latest {
		return false
	}

	s.latestSeq[userID] = seq

	return true
}
