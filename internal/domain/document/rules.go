// Package document porte les règles métier des documents de vente :
// formules de totaux par variante et machine à états des commandes.
package document

import (
	"github.com/shopspring/decimal"

	"github.com/hbenali/boutique-api/internal/domain/entity"
)

// TotalsRules paramètre le calcul du prix_ttc pour une variante de document.
// Valeur immuable sélectionnée par RulesFor : les deux variantes partagent le
// même algorithme de réconciliation, seule cette valeur change.
type TotalsRules struct {
	ApplyDiscount  bool // facture : prix_ttc = prix_ht − remise quand remise > 0
	AddDeliveryFee bool // commande : prix_ttc = prix_ht + frais_livraison
}

// RulesFor retourne les règles de totaux de la variante.
// L'asymétrie (la remise d'une commande est stockée mais jamais soustraite)
// reproduit le comportement historique de la boutique.
func RulesFor(kind entity.Kind) TotalsRules {
	if kind == entity.KindInvoice {
		return TotalsRules{ApplyDiscount: true}
	}
	return TotalsRules{AddDeliveryFee: true}
}

// Total calcule le prix_ttc à partir du prix_ht selon les règles.
func (r TotalsRules) Total(subtotal, discount, deliveryFee decimal.Decimal) decimal.Decimal {
	total := subtotal
	if r.ApplyDiscount && discount.GreaterThan(decimal.Zero) {
		total = total.Sub(discount)
	}
	if r.AddDeliveryFee {
		total = total.Add(deliveryFee)
	}
	return total
}
