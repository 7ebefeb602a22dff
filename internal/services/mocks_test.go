package service_test

import (
	"context"

	"github.com/nutrikart/cart-engine/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Save(ctx context.Context, cart *models.Cart) error {
	args := m.Called(ctx, cart)

	return args.Error(0)
}

func (m *MockSnapshotRepository) Load(ctx context.Context, userID string) (*models.Cart, bool, error) {
	args := m.Called(ctx, userID)

	var cart *models.Cart
	if args.Get(0) != nil {
		cart = args.Get(0).(*models.Cart)
	}

	return cart, args.Bool(1), args.Error(2)
}

func (m *MockSnapshotRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)

	var product *models.Product
	if args.Get(0) != nil {
		product = args.Get(0).(*models.Product)
	}

	return product, args.Error(1)
}

type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	args := m.Called(ctx, code)

	var coupon *models.Coupon
	if args.Get(0) != nil {
		coupon = args.Get(0).(*models.Coupon)
	}

	return coupon, args.Error(1)
}

func (m *MockCouponRepository) IncrementUsage(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type MockCheckoutPort struct {
	mock.Mock
}

func (m *MockCheckoutPort) SubmitOrder(ctx context.Context, userID string, items []models.LineItem, finalTotal float64, freeShipping bool) error {
	args := m.Called(ctx, userID, items, finalTotal, freeShipping)

	return args.Error(0)
}
