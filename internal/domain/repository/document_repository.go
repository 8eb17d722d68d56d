package repository

import (
	"github.com/shopspring/decimal"

	"github.com/hbenali/boutique-api/internal/domain/entity"
)

// DocumentFilter critères de listage des documents de vente.
type DocumentFilter struct {
	Kind     entity.Kind
	Status   string
	ClientID string
	Limit    int
	Offset   int
}

// DocumentRepository port de persistance des documents de vente et de leurs
// lignes. Les lignes appartiennent exclusivement à leur document.
type DocumentRepository interface {
	Create(doc *entity.SalesDocument) error
	GetByID(id string) (*entity.SalesDocument, error)
	// Update écrit les champs d'en-tête (hors totaux, hors lignes).
	Update(doc *entity.SalesDocument) error
	// UpdateTotals persiste prix_ht et prix_ttc recalculés.
	UpdateTotals(id string, subtotal, total decimal.Decimal) error
	List(filter DocumentFilter) ([]*entity.SalesDocument, error)
	Delete(id string) error

	GetLines(documentID string) ([]*entity.DocumentLine, error)
	CreateLine(line *entity.DocumentLine) error
	// DeleteLines supprime toutes les lignes du document (remplacement intégral).
	DeleteLines(documentID string) error
}
