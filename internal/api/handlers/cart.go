package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/nutrikart/cart-engine/internal/api/middleware"
	"github.com/nutrikart/cart-engine/internal/errors"
	"github.com/nutrikart/cart-engine/internal/models"
	"github.com/nutrikart/cart-engine/internal/utils"
	"github.com/nutrikart/cart-engine/internal/utils/response"
)

// CartService is the slice of the cart service the HTTP layer depends on.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID string, req *models.AddItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID string, req *models.UpdateQuantityRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error)
	ClearCart(ctx context.Context, userID string) error
	ApplyUpsell(ctx context.Context, userID string, req *models.ApplyUpsellRequest) (*models.Cart, error)
	RemoveUpsell(ctx context.Context, userID string, req *models.RemoveUpsellRequest) (*models.Cart, error)
}

type CartHandler struct {
	cartService CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireUser(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to load cart",
				slog.String("userId", claims.UserID),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.UserID, &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to add item to cart",
				slog.String("userId", claims.UserID),
				slog.String("productId", req.ProductID),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Item added to cart",
			slog.String("userId", claims.UserID),
			slog.String("productId", req.ProductID),
			slog.Int("quantity", req.Quantity))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), claims.UserID, &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to update item quantity",
				slog.String("userId", claims.UserID),
				slog.String("productId", req.ProductID),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireUser(w, r)
		if !ok {
			return
		}

		productID := r.PathValue("id")
		if productID == "" {
			response.Error(w, errors.BadRequestError("Product ID is required"))

			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), claims.UserID, productID)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to remove item from cart",
				slog.String("userId", claims.UserID),
				slog.String("productId", productID),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Item removed from cart",
			slog.String("userId", claims.UserID),
			slog.String("productId", productID))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireUser(w, r)
		if !ok {
			return
		}

		if err := h.cartService.ClearCart(r.Context(), claims.UserID); err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to clear cart",
				slog.String("userId", claims.UserID),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"cleared": true})
	}
}

func (h *CartHandler) ApplyUpsell() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req models.ApplyUpsellRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.ApplyUpsell(r.Context(), claims.UserID, &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to apply upsell offer",
				slog.String("userId", claims.UserID),
				slog.String("triggerProductId", req.TriggerProductID),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveUpsell() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req models.RemoveUpsellRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.RemoveUpsell(r.Context(), claims.UserID, &req)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to remove upsell discount",
				slog.String("userId", claims.UserID),
				slog.String("targetProductId", req.TargetProductID),
				slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// requireUser pulls the authenticated claims set by the auth middleware.
func requireUser(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {
	claims := middleware.UserFromContext(r.Context())
	if claims == nil {
		middleware.LoggerFromContext(r.Context()).Warn("Unauthenticated cart access attempt")
		response.Error(w, errors.UnauthorizedError("Authentication required"))

		return nil, false
	}

	return claims, true
}
