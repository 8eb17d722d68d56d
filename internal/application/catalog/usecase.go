// Package catalog gère le catalogue produits : création, mise à jour des
// prix, et la recherche insensible aux accents qui remplace l'ancien
// chargement intégral du catalogue côté admin.
package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hbenali/boutique-api/internal/application/dto"
	"github.com/hbenali/boutique-api/internal/domain"
	"github.com/hbenali/boutique-api/internal/domain/entity"
	"github.com/hbenali/boutique-api/internal/domain/repository"
	"github.com/hbenali/boutique-api/pkg/textfold"
)

// UseCase cas d'usage du catalogue. Le stock n'est jamais modifié ici :
// seule la réconciliation des documents le mute.
type UseCase struct {
	repo repository.ProductRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(repo repository.ProductRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create crée un produit avec sa baseline de stock initiale.
func (uc *UseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Prix.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	promoExpiry, err := parsePromoExpiry(in.PromoExpireLe)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		SKU:            in.SKU,
		Name:           in.Name,
		Price:          in.Prix,
		PromoPrice:     in.PrixPromo,
		PromoExpiresAt: promoExpiry,
		StockQuantity:  in.StockQuantity,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update met à jour nom et prix (le stock est hors de portée, à dessein).
func (uc *UseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Prix.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	promoExpiry, err := parsePromoExpiry(in.PromoExpireLe)
	if err != nil {
		return nil, err
	}
	product.Name = in.Name
	product.Price = in.Prix
	product.PromoPrice = in.PrixPromo
	product.PromoExpiresAt = promoExpiry
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID retourne un produit.
func (uc *UseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List liste le catalogue avec pagination.
func (uc *UseCase) List(page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Search recherche par nom ou SKU, insensible aux accents et à la casse.
// C'est le point de consultation utilisé par la saisie de lignes dans
// l'admin (pré-remplissage du prix unitaire).
func (uc *UseCase) Search(query string, limit int) ([]*dto.ProductResponse, error) {
	q := textfold.Fold(query)
	if q == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	list, err := uc.repo.Search(q, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Delete supprime un produit du catalogue.
func (uc *UseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func parsePromoExpiry(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Prix:          p.Price,
		PrixPromo:     p.PromoPrice,
		PrixEffectif:  p.EffectivePrice(time.Now()),
		StockQuantity: p.StockQuantity,
	}
	if p.PromoExpiresAt != nil {
		resp.PromoExpireLe = p.PromoExpiresAt.Format("2006-01-02")
	}
	return resp
}
