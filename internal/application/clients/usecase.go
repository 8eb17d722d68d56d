// Package clients gère le répertoire clients (flux dédié de l'admin).
// La création en ligne pendant l'édition d'un document vit dans le paquet
// documents, avec l'envoi du SMS de bienvenue après commit.
package clients

import (
	"time"

	"github.com/google/uuid"

	"github.com/hbenali/boutique-api/internal/application/dto"
	"github.com/hbenali/boutique-api/internal/domain"
	"github.com/hbenali/boutique-api/internal/domain/entity"
	"github.com/hbenali/boutique-api/internal/domain/repository"
)

// UseCase cas d'usage des clients.
type UseCase struct {
	repo repository.ClientRepository
}

// NewUseCase construit le cas d'usage.
func NewUseCase(repo repository.ClientRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create crée un client. Le matricule fiscal est unique quand renseigné.
func (uc *UseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxID != "" {
		existing, err := uc.repo.GetByTaxID(in.TaxID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		TaxID:     in.TaxID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID retourne un client.
func (uc *UseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// List liste les clients avec pagination.
func (uc *UseCase) List(page dto.PageRequest) ([]*dto.ClientResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:      c.ID,
		Name:    c.Name,
		Address: c.Address,
		Phone:   c.Phone,
		TaxID:   c.TaxID,
	}
}
