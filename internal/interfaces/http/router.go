package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Botiquin-api/internal/application/location"
	"github.com/jhoicas/Botiquin-api/internal/application/stock"
	"github.com/jhoicas/Botiquin-api/internal/application/undo"
	"github.com/jhoicas/Botiquin-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC    *stock.UseCase
	QueryUC    *stock.QueryUseCase
	LocationUC *location.UseCase
	UndoUC     *undo.UseCase
	JWT        config.JWTConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.JWT)
	authGroup.Post("/token", authHandler.Token)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWT.Secret))

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC, deps.QueryUC)
	locations.Get("/", locationHandler.List)
	locations.Post("/", locationHandler.Create)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)
	locations.Get("/:id/thresholds", locationHandler.ListThresholds)
	locations.Post("/:id/thresholds", locationHandler.SetThreshold)
	locations.Delete("/:id/thresholds/:tid", locationHandler.RemoveThreshold)

	// Stock (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.QueryUC)
	stockGroup.Post("/add", stockHandler.Add)
	stockGroup.Post("/transfer", stockHandler.Transfer)
	stockGroup.Post("/usage", stockHandler.Usage)
	stockGroup.Post("/disposal", stockHandler.Disposal)
	stockGroup.Post("/audit", stockHandler.Audit)
	stockGroup.Post("/consolidate/:id", stockHandler.Consolidate)
	stockGroup.Get("/location/:id", stockHandler.ListByLocation)
	stockGroup.Get("/total", stockHandler.TotalByKey)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reports.Get("/low-stock", stockHandler.LowStock)
	reports.Get("/expiry", stockHandler.Expiry)

	// Movements (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.QueryUC)
	movements.Get("/", movementHandler.List)

	// Undo (protegido)
	undoGroup := protected.Group("/undo")
	undoHandler := NewUndoHandler(deps.UndoUC)
	undoGroup.Get("/status", undoHandler.Status)
	undoGroup.Post("/", undoHandler.UndoLast)
}
