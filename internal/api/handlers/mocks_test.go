package handlers_test

import (
	"context"

	"github.com/nutrikart/cart-engine/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, userID string, req *models.AddItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, userID string, req *models.UpdateQuantityRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	args := m.Called(ctx, userID, productID)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartService) ClearCart(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func (m *MockCartService) ApplyUpsell(ctx context.Context, userID string, req *models.ApplyUpsellRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartService) RemoveUpsell(ctx context.Context, userID string, req *models.RemoveUpsellRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) Validate(ctx context.Context, userID string, req *models.ValidateCouponRequest) (*models.CouponQuote, error) {
	args := m.Called(ctx, userID, req)
	if quote, ok := args.Get(0).(*models.CouponQuote); ok {
		return quote, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Quote(ctx context.Context, userID string, req *models.CheckoutQuoteRequest) (*models.CheckoutQuote, error) {
	args := m.Called(ctx, userID, req)
	if quote, ok := args.Get(0).(*models.CheckoutQuote); ok {
		return quote, args.Error(1)
	}

	return nil, args.Error(1)
}
