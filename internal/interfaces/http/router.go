package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercial-api/internal/application/catalog"
	"github.com/jhoicas/Comercial-api/internal/application/document"
	"github.com/jhoicas/Comercial-api/internal/application/finance"
	"github.com/jhoicas/Comercial-api/internal/application/inventory"
	"github.com/jhoicas/Comercial-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog       *catalog.UseCase
	Poster        *document.PostDocumentUseCase
	Documents     *document.UseCase
	DocumentPDF   *document.PDFUseCase
	StockQuery    *inventory.StockQueryUseCase
	AdjustStock   *inventory.AdjustStockUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Ledger        *finance.LedgerUseCase
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.Catalog, log)
	products := api.Group("/products")
	products.Post("/", catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)
	products.Delete("/:id", catalogHandler.RetireProduct)

	customers := api.Group("/customers")
	customers.Post("/", catalogHandler.CreateCustomer)
	customers.Get("/", catalogHandler.ListCustomers)
	customers.Delete("/:id", catalogHandler.RetireCustomer)

	suppliers := api.Group("/suppliers")
	suppliers.Post("/", catalogHandler.CreateSupplier)
	suppliers.Get("/", catalogHandler.ListSuppliers)
	suppliers.Delete("/:id", catalogHandler.RetireSupplier)

	// Documentos: /api/documents/quotes, /sales-orders, /inbound-notes, /outbound-notes
	docHandler := NewDocumentHandler(deps.Poster, deps.Documents, deps.DocumentPDF, log)
	docs := api.Group("/documents/:kind")
	docs.Post("/", docHandler.Post)
	docs.Get("/", docHandler.List)
	docs.Get("/:id", docHandler.GetByID)
	docs.Get("/:id/pdf", docHandler.DownloadPDF)
	docs.Patch("/:id/status", docHandler.UpdateStatus)
	docs.Delete("/:id", docHandler.Delete)

	// Stock
	stockHandler := NewStockHandler(deps.StockQuery, deps.AdjustStock, deps.Replenishment, log)
	stock := api.Group("/stock")
	stock.Get("/", stockHandler.Snapshot)
	stock.Get("/movements", stockHandler.Movements)
	stock.Post("/adjustments", stockHandler.Adjust)
	stock.Get("/replenishment-list", stockHandler.GetReplenishmentList)
	stock.Get("/products/:id/verify", stockHandler.VerifyHistory)

	// Finanzas
	financeHandler := NewFinanceHandler(deps.Ledger, log)
	fin := api.Group("/finance")
	fin.Get("/summary", financeHandler.Summary)
	fin.Post("/entries", financeHandler.Create)
	fin.Get("/entries", financeHandler.List)
	fin.Get("/entries/:id", financeHandler.GetByID)
	fin.Patch("/entries/:id/status", financeHandler.UpdateStatus)
	fin.Delete("/entries/:id", financeHandler.Delete)
}
