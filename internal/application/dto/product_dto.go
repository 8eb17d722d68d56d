package dto

import "github.com/shopspring/decimal"

// CreateProductRequest création d'un produit du catalogue.
type CreateProductRequest struct {
	SKU            string           `json:"sku"`
	Name           string           `json:"name"`
	Prix           decimal.Decimal  `json:"prix"`
	PrixPromo      *decimal.Decimal `json:"prix_promo,omitempty"`
	PromoExpireLe  string           `json:"promo_expire_le,omitempty"` // YYYY-MM-DD
	StockQuantity  int64            `json:"qte"`                       // baseline initiale
}

// UpdateProductRequest mise à jour d'un produit. Le stock est absent à
// dessein : il n'est muté que par le moteur de réconciliation.
type UpdateProductRequest struct {
	Name          string           `json:"name"`
	Prix          decimal.Decimal  `json:"prix"`
	PrixPromo     *decimal.Decimal `json:"prix_promo,omitempty"`
	PromoExpireLe string           `json:"promo_expire_le,omitempty"`
}

// ProductResponse produit du catalogue.
type ProductResponse struct {
	ID            string           `json:"id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	Prix          decimal.Decimal  `json:"prix"`
	PrixPromo     *decimal.Decimal `json:"prix_promo,omitempty"`
	PromoExpireLe string           `json:"promo_expire_le,omitempty"`
	PrixEffectif  decimal.Decimal  `json:"prix_effectif"`
	StockQuantity int64            `json:"qte"`
}
