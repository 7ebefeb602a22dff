package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/microcosm-cc/bluemonday"
	"github.com/nutrikart/cart-engine/internal/cart"
	apperrors "github.com/nutrikart/cart-engine/internal/errors"
	"github.com/nutrikart/cart-engine/internal/metrics"
	"github.com/nutrikart/cart-engine/internal/models"
	repository "github.com/nutrikart/cart-engine/internal/repositories"
)

// CartService orchestrates the cart engine: restore snapshot, run one
// synchronous engine action, recompute, persist. The engine itself never
// touches I/O; everything async happens here, around it.
type CartService struct {
	snapshots repository.SnapshotRepository
	products  repository.ProductRepository
	sanitizer *bluemonday.Policy
}

func NewCartService(snapshots repository.SnapshotRepository, products repository.ProductRepository) *CartService {
	return &CartService{
		snapshots: snapshots,
		products:  products,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// GetCart restores the user's cart from its snapshot. A stored snapshot is
// untrusted state: invariants are repaired before the cart is used.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	c, found, err := s.snapshots.Load(ctx, userID)
	if err != nil {
		return nil, apperrors.InternalError("Failed to restore cart").WithError(err)
	}

	if !found {
		return models.NewCart(userID), nil
	}

	c.UserID = userID
	cart.Repair(c)

	return c, nil
}

func (s *CartService) AddItem(ctx context.Context, userID string, req *models.AddItemRequest) (*models.Cart, error) {
	c, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to look up product").WithError(err)
	}

	cart.AddItem(c, s.lineItemFromProduct(product), req.Quantity)
	metrics.RecordCartAction("add")

	if err := s.snapshots.Save(ctx, c); err != nil {
		return nil, apperrors.InternalError("Failed to persist cart").WithError(err)
	}

	return c, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID string, req *models.UpdateQuantityRequest) (*models.Cart, error) {
	c, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.UpdateQuantity(c, req.ProductID, req.Quantity)
	metrics.RecordCartAction("update_quantity")

	if err := s.snapshots.Save(ctx, c); err != nil {
		return nil, apperrors.InternalError("Failed to persist cart").WithError(err)
	}

	return c, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	c, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(c, productID)
	metrics.RecordCartAction("remove")

	if err := s.snapshots.Save(ctx, c); err != nil {
		return nil, apperrors.InternalError("Failed to persist cart").WithError(err)
	}

	return c, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	metrics.RecordCartAction("clear")

	if err := s.snapshots.Delete(ctx, userID); err != nil {
		return apperrors.InternalError("Failed to clear cart").WithError(err)
	}

	return nil
}

// ApplyUpsell executes the best qualifying offer for a trigger product that
// is already in the cart: the target is added and discounted in one
// synchronous sequence, so the discount can never observe a half-updated
// cart. A missing precondition returns the cart unchanged, not an error.
func (s *CartService) ApplyUpsell(ctx context.Context, userID string, req *models.ApplyUpsellRequest) (*models.Cart, error) {
	c, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !contains(c, req.TriggerProductID) {
		return c, nil
	}

	trigger, err := s.products.GetByID(ctx, req.TriggerProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, nil
		}

		return nil, apperrors.DatabaseError("Failed to look up product").WithError(err)
	}

	offer := cart.BestOffer(c, trigger.UpsellOffers)
	if offer == nil {
		return c, nil
	}

	target, err := s.products.GetByID(ctx, offer.TargetProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, nil
		}

		return nil, apperrors.DatabaseError("Failed to look up product").WithError(err)
	}

	cart.AddItem(c, s.lineItemFromProduct(target), 1)
	cart.ApplyUpsellDiscount(c, target.ID, offer.DiscountPercentage, trigger.ID)
	metrics.RecordUpsell("apply")

	if err := s.snapshots.Save(ctx, c); err != nil {
		return nil, apperrors.InternalError("Failed to persist cart").WithError(err)
	}

	return c, nil
}

func (s *CartService) RemoveUpsell(ctx context.Context, userID string, req *models.RemoveUpsellRequest) (*models.Cart, error) {
	c, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveUpsellDiscount(c, req.TargetProductID, req.RelatedProductID)
	metrics.RecordUpsell("remove")

	if err := s.snapshots.Save(ctx, c); err != nil {
		return nil, apperrors.InternalError("Failed to persist cart").WithError(err)
	}

	return c, nil
}

// lineItemFromProduct sanitizes the display metadata before it enters cart
// state; snapshots are replayed into pages later.
func (s *CartService) lineItemFromProduct(p *models.Product) models.LineItem {
	return models.LineItem{
		ProductID: p.ID,
		Name:      s.sanitizer.Sanitize(p.Name),
		Image:     s.sanitizer.Sanitize(p.Image),
		Price:     p.Price,
	}
}

func contains(c *models.Cart, productID string) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return true
		}
	}

	return false
}
