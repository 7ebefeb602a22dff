package models

// UpsellOffer is a catalog-owned rule: while the trigger product stays in the
// cart, the target product may be offered at a percentage discount.
type UpsellOffer struct {
	TargetProductID    string  `json:"target_product_id"`
	DiscountPercentage float64 `json:"discount_percentage"`
	Description        string  `json:"description"`
	Active             bool    `json:"active"`
}

type Product struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Image        string        `json:"image"`
	Price        float64       `json:"price"`
	UpsellOffers []UpsellOffer `json:"upsell_offers,omitempty"`
}
