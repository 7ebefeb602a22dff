package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nutrikart/cart-engine/internal/api/middleware"
	"github.com/nutrikart/cart-engine/internal/models"
	"github.com/nutrikart/cart-engine/internal/utils"
	"github.com/nutrikart/cart-engine/internal/utils/response"
)

type CouponService interface {
	Validate(ctx context.Context, userID string, req *models.ValidateCouponRequest) (*models.CouponQuote, error)
}

type CouponHandler struct {
	couponService CouponService
	validator     *validator.Validate
}

func NewCouponHandler(couponService CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService, validator: validator.New()}
}

// ValidateCoupon checks a coupon code against the caller's current cart
// and returns the discount it would grant. It does not consume the
// coupon; usage is only counted at checkout.
func (h *CouponHandler) ValidateCoupon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req models.ValidateCouponRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		quote, err := h.couponService.Validate(r.Context(), claims.UserID, &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Coupon validation failed",
				slog.String("userId", claims.UserID),
				slog.String("code", req.Code),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Coupon accepted",
			slog.String("userId", claims.UserID),
			slog.String("code", quote.Code),
			slog.Float64("discountAmount", quote.DiscountAmount))
		response.Success(w, http.StatusOK, quote)
	}
}
