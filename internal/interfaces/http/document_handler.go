package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hbenali/boutique-api/internal/application/documents"
	"github.com/hbenali/boutique-api/internal/application/dto"
	"github.com/hbenali/boutique-api/internal/domain"
	"github.com/hbenali/boutique-api/internal/domain/entity"
)

// DocumentHandler sert les deux variantes de documents (commandes et
// factures) : la variante est fixée par le groupe de routes.
type DocumentHandler struct {
	uc   *documents.UseCase
	kind entity.Kind
}

// NewDocumentHandler construit le handler pour une variante.
func NewDocumentHandler(uc *documents.UseCase, kind entity.Kind) *DocumentHandler {
	return &DocumentHandler{uc: uc, kind: kind}
}

// Create crée un document et réserve le stock de ses lignes.
// POST /api/commandes | POST /api/factures
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	doc, err := h.uc.CreateDocument(c.Context(), h.kind, in)
	if err != nil {
		return documentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// Edit sauvegarde complète : en-tête, remplacement des lignes,
// réconciliation du stock et totaux recalculés, le tout atomique.
// PUT /api/commandes/:id | PUT /api/factures/:id
func (h *DocumentHandler) Edit(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	var in dto.EditDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	doc, err := h.uc.EditDocument(c.Context(), h.kind, id, in)
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(doc)
}

// GetByID retourne un document avec ses lignes.
// GET /api/commandes/:id | GET /api/factures/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	doc, err := h.uc.GetDocument(c.Context(), h.kind, id)
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(doc)
}

// List liste les documents de la variante, filtrables par etat et client_id.
// GET /api/commandes | GET /api/factures
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paramètres invalides"})
	}
	list, err := h.uc.ListDocuments(c.Context(), h.kind, c.Query("etat"), c.Query("client_id"), page)
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(list)
}

// Delete supprime un document et relâche le stock de ses lignes.
// DELETE /api/commandes/:id | DELETE /api/factures/:id
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requis"})
	}
	if err := h.uc.DeleteDocument(c.Context(), h.kind, id); err != nil {
		return documentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// documentError mappe les erreurs du domaine vers les statuts HTTP.
func documentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "données invalides"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "document, client ou produit introuvable"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuffisant"})
	case errors.Is(err, domain.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: "état inconnu"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transition d'état non autorisée"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ressource en double"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
