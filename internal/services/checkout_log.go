package service

import (
	"context"
	"log/slog"

	"github.com/nutrikart/cart-engine/internal/models"
)

type logCheckout struct{}

// NewLogCheckout returns a CheckoutPort that only records the hand-off.
// The real order pipeline runs as a separate deployment behind this port.
func NewLogCheckout() CheckoutPort {
	return logCheckout{}
}

func (logCheckout) SubmitOrder(_ context.Context, userID string, items []models.LineItem, finalTotal float64, freeShipping bool) error {
	slog.Info("Order handed off to order pipeline",
		slog.String("userId", userID),
		slog.Int("lineItems", len(items)),
		slog.Float64("finalTotal", finalTotal),
		slog.Bool("freeShipping", freeShipping))

	return nil
}
