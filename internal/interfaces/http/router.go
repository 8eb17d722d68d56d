package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hbenali/boutique-api/internal/application/catalog"
	"github.com/hbenali/boutique-api/internal/application/clients"
	"github.com/hbenali/boutique-api/internal/application/documents"
	"github.com/hbenali/boutique-api/internal/domain/entity"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	DocumentUC *documents.UseCase
	CatalogUC  *catalog.UseCase
	ClientUC   *clients.UseCase
	JWTSecret  string
}

// Router enregistre les routes de l'API. Toute l'administration est
// derrière le Bearer Token ; les commandes et les factures partagent le
// même handler paramétré par la variante.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Commandes
	orders := protected.Group("/commandes")
	orderHandler := NewDocumentHandler(deps.DocumentUC, entity.KindOrder)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Edit)
	orders.Delete("/:id", orderHandler.Delete)

	// Factures
	invoices := protected.Group("/factures")
	invoiceHandler := NewDocumentHandler(deps.DocumentUC, entity.KindInvoice)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Edit)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Catalogue
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Clients
	clientsGroup := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clientsGroup.Post("/", clientHandler.Create)
	clientsGroup.Get("/", clientHandler.List)
	clientsGroup.Get("/:id", clientHandler.GetByID)
}
