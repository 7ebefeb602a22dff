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

type CheckoutService interface {
	Quote(ctx context.Context, userID string, req *models.CheckoutQuoteRequest) (*models.CheckoutQuote, error)
}

type CheckoutHandler struct {
	checkoutService CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

func (h *CheckoutHandler) Quote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req models.CheckoutQuoteRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		quote, err := h.checkoutService.Quote(r.Context(), claims.UserID, &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to produce checkout quote",
				slog.String("userId", claims.UserID),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Checkout quote produced",
			slog.String("userId", claims.UserID),
			slog.Float64("finalTotal", quote.FinalTotal))
		response.Success(w, http.StatusOK, quote)
	}
}
