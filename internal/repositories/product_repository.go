package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nutrikart/cart-engine/internal/models"
	"github.com/nutrikart/cart-engine/internal/utils"
)

// ProductRepository is the catalog lookup the engine consumes: a product's
// current price plus its upsell offer rows.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, image, price
		FROM products
		WHERE id = $1
	`

	product := &models.Product{}

	err := r.DB.QueryRowContext(dbCtx, query, id).
		Scan(&product.ID, &product.Name, &product.Image, &product.Price)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying product: %w", err)
	}

	offers, err := r.upsellOffers(dbCtx, id)
	if err != nil {
		return nil, err
	}
	product.UpsellOffers = offers

	return product, nil
}

func (r *productRepository) upsellOffers(ctx context.Context, productID string) ([]models.UpsellOffer, error) {
	query := `
		SELECT target_product_id, discount_percentage, description, active
		FROM upsell_offers
		WHERE product_id = $1
		ORDER BY created_at
	`

	rows, err := r.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("querying upsell offers: %w", err)
	}
	defer rows.Close()

	var offers []models.UpsellOffer

	for rows.Next() {
		var offer models.UpsellOffer
		if err := rows.Scan(&offer.TargetProductID, &offer.DiscountPercentage,
			&offer.Description, &offer.Active); err != nil {
			return nil, fmt.Errorf("scanning upsell offer: %w", err)
		}
		offers = append(offers, offer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating upsell offers: %w", err)
	}

	return offers, nil
}
