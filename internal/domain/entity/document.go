package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind distingue les deux variantes de document de vente. Même forme,
// règles de calcul différentes (voir document.RulesFor).
type Kind string

const (
	KindOrder   Kind = "commande" // commande client (storefront ou admin)
	KindInvoice Kind = "facture"  // facture / bon de livraison
)

// Valid vérifie que la variante est connue.
func (k Kind) Valid() bool {
	return k == KindOrder || k == KindInvoice
}

// SalesDocument représente l'en-tête d'un document de vente (commande ou
// facture). Il possède ses lignes de manière exclusive : aucune ligne n'est
// partagée entre documents, et chaque édition remplace l'ensemble des lignes.
type SalesDocument struct {
	ID              string
	Kind            Kind
	Number          string
	ClientID        string
	Status          string // commandes uniquement, voir document.Status
	DiscountAmount  decimal.Decimal // remise : stockée pour les deux variantes, appliquée au total des factures seulement
	DiscountPercent decimal.Decimal // pourcentage_remise : informatif, jamais appliqué
	DeliveryFee     decimal.Decimal // frais_livraison : commandes uniquement
	Note            string
	Subtotal        decimal.Decimal // prix_ht : somme des extensions de lignes
	Total           decimal.Decimal // prix_ttc : montant ajusté selon la variante
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DocumentLine représente une ligne produit-quantité-prix d'un document.
// UnitPrice est un instantané capturé à la création de la ligne, indépendant
// du prix courant du produit. Les lignes ne sont jamais modifiées en place :
// chaque édition du document les détruit et les recrée.
type DocumentLine struct {
	ID         string
	DocumentID string
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal // prix_ht de la ligne = Quantity × UnitPrice
}

// Extension calcule le sous-total de la ligne (quantité × prix unitaire).
func (l *DocumentLine) Extension() decimal.Decimal {
	return decimal.NewFromInt(l.Quantity).Mul(l.UnitPrice)
}
