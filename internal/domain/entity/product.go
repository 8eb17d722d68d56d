package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product représente un produit du catalogue.
// StockQuantity est un compteur vivant : baseline moins la somme des quantités
// des lignes de documents non supprimés qui référencent ce produit. Il n'est
// muté que par le moteur de réconciliation (jamais en lecture-modification-écriture
// hors transaction).
type Product struct {
	ID             string
	SKU            string // code unique
	Name           string
	Price          decimal.Decimal  // prix unitaire de vente
	PromoPrice     *decimal.Decimal // prix promotionnel (optionnel)
	PromoExpiresAt *time.Time       // fin de la promotion
	StockQuantity  int64            // peut devenir négatif selon la configuration (survente)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EffectivePrice retourne le prix promotionnel tant que la promotion est active,
// sinon le prix normal.
func (p *Product) EffectivePrice(now time.Time) decimal.Decimal {
	if p.PromoPrice == nil {
		return p.Price
	}
	if p.PromoExpiresAt != nil && now.After(*p.PromoExpiresAt) {
		return p.Price
	}
	return *p.PromoPrice
}
