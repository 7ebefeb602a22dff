package models

import "time"

// Upsell records an active conditional discount on a line item. It exists
// only while the discount is applied; a plain item carries a nil pointer.
type Upsell struct {
	OriginalPrice   float64 `json:"original_price"`
	DiscountPercent float64 `json:"discount_percent"`
	RelatedItemID   string  `json:"related_item_id"`
}

type LineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Upsell    *Upsell `json:"upsell,omitempty"`
}

// IsUpsell reports whether a conditional discount is currently applied.
func (li *LineItem) IsUpsell() bool {
	return li.Upsell != nil
}

// Cart is the per-user cart state. Items keep insertion order for display;
// Total and ItemCount are derived, recomputed after every mutation.
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewCart(userID string) *Cart {
	return &Cart{
		UserID:    userID,
		Items:     []LineItem{},
		UpdatedAt: time.Now(),
	}
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"min=0"`
}

type ApplyUpsellRequest struct {
	// TriggerProductID is the product already in the cart whose upsell
	// offers should be considered; the best offer's target is added and
	// discounted in one step.
	TriggerProductID string `json:"trigger_product_id" validate:"required"`
}

type RemoveUpsellRequest struct {
	TargetProductID  string `json:"target_product_id"  validate:"required"`
	RelatedProductID string `json:"related_product_id" validate:"required"`
}
