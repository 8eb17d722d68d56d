package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hbenali/boutique-api/internal/application/clients"
	"github.com/hbenali/boutique-api/internal/application/dto"
	"github.com/hbenali/boutique-api/internal/domain"
)

// ClientHandler gère les requêtes HTTP du répertoire clients (protégé).
type ClientHandler struct {
	uc *clients.UseCase
}

// NewClientHandler construit le handler.
func NewClientHandler(uc *clients.UseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create crée un client via le flux dédié (pas de SMS de bienvenue ici ;
// celui-ci n'accompagne que la création en ligne pendant l'édition d'un
// document).
// POST /api/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	client, err := h.uc.Create(in)
	if err != nil {
		return clientError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// GetByID retourne un client.
// GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	client, err := h.uc.GetByID(id)
	if err != nil {
		return clientError(c, err)
	}
	return c.JSON(client)
}

// List liste les clients avec pagination.
// GET /api/clients
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paramètres invalides"})
	}
	list, err := h.uc.List(page)
	if err != nil {
		return clientError(c, err)
	}
	return c.JSON(list)
}

func clientError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "données invalides"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "client introuvable"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "matricule déjà utilisé"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
