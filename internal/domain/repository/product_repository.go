package repository

import "github.com/hbenali/boutique-api/internal/domain/entity"

// ProductRepository port de persistance des produits du catalogue.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// Update ne touche jamais StockQuantity : le stock n'est muté que par
	// AdjustStock à l'intérieur de la transaction de réconciliation.
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	// Search recherche par nom ou SKU sur la forme normalisée (sans accents).
	Search(normalizedQuery string, limit int) ([]*entity.Product, error)
	// AdjustStock ajoute delta (positif ou négatif) au stock du produit et
	// retourne la quantité résultante. L'implémentation doit verrouiller la
	// ligne jusqu'au commit de la transaction courante.
	AdjustStock(productID string, delta int64) (int64, error)
	Delete(id string) error
}
