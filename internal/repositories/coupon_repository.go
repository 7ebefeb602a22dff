package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nutrikart/cart-engine/internal/models"
	"github.com/nutrikart/cart-engine/internal/utils"
)

// CouponRepository reads coupons for validation; usage accounting happens at
// order time, never during validation.
type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	IncrementUsage(ctx context.Context, id string) error
}

type couponRepository struct {
	DB *sql.DB
}

func NewCouponRepo(db *sql.DB) CouponRepository {
	return &couponRepository{DB: db}
}

// FindByCode looks up a coupon by its normalized (upper-cased) code.
func (r *couponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, code, discount_type, discount_value, minimum_order_value,
		       max_discount_amount, usage_limit, usage_count, starts_at, expires_at, is_active
		FROM coupons
		WHERE code = $1
	`

	coupon := &models.Coupon{}

	var maxDiscount sql.NullFloat64

	err := r.DB.QueryRowContext(dbCtx, query, strings.ToUpper(strings.TrimSpace(code))).Scan(
		&coupon.ID, &coupon.Code, &coupon.DiscountType, &coupon.DiscountValue,
		&coupon.MinimumOrderValue, &maxDiscount, &coupon.UsageLimit,
		&coupon.UsageCount, &coupon.StartsAt, &coupon.ExpiresAt, &coupon.IsActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying coupon: %w", err)
	}

	if maxDiscount.Valid {
		coupon.MaxDiscountAmount = &maxDiscount.Float64
	}

	return coupon, nil
}

func (r *couponRepository) IncrementUsage(ctx context.Context, id string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE coupons
		SET usage_count = usage_count + 1
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(dbCtx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment coupon usage: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
