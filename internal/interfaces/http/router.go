package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcardenas-dev/gestion-api/internal/application/counting"
	"github.com/jcardenas-dev/gestion-api/internal/application/inventory"
	"github.com/jcardenas-dev/gestion-api/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppendMovement *inventory.AppendMovementUseCase
	Transfer       *inventory.TransferUseCase
	Availability   *inventory.AvailabilityUseCase
	Kardex         *inventory.KardexUseCase
	Reconcile      *counting.ReconcileUseCase
	Documents      *sales.DocumentUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Todo el núcleo de inventario requiere Bearer Token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario: libro de movimientos, disponibilidad y kardex.
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AppendMovement, deps.Transfer, deps.Availability, deps.Kardex)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Post("/transfers", inventoryHandler.Transfer)
	invGroup.Get("/availability", inventoryHandler.GetAvailability)
	invGroup.Get("/kardex/:productID", inventoryHandler.GetKardex)

	// Conteos físicos: registrar un conteo exige rol de bodega o admin.
	countHandler := NewCountHandler(deps.Reconcile)
	invGroup.Post("/counts", RequireRole("admin", "bodeguero"), countHandler.CreateCount)
	invGroup.Get("/counts/:id", countHandler.GetCount)

	// Cotizaciones y pedidos.
	docs := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.Documents)
	docs.Post("/", documentHandler.Create)
	docs.Get("/:id", documentHandler.GetByID)
	docs.Post("/:id/finalize", documentHandler.Finalize)
	docs.Post("/:id/cancel", documentHandler.Cancel)
}
