package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tintpro-api/internal/application/analytics"
	"github.com/tu-usuario/tintpro-api/internal/application/auth"
	"github.com/tu-usuario/tintpro-api/internal/application/inventory"
	"github.com/tu-usuario/tintpro-api/internal/application/jobs"
	"github.com/tu-usuario/tintpro-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	JobUC       *jobs.UseCase
	AnalyticsUC *analytics.UseCase
	InventoryUC *inventory.UseCase
	FilmUC      *usecase.FilmUseCase
	InstallerUC *usecase.InstallerUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Jobs (protegido)
	jobGroup := protected.Group("/jobs")
	jobHandler := NewJobHandler(deps.JobUC)
	jobGroup.Post("/", jobHandler.Create)
	jobGroup.Get("/", jobHandler.List)
	jobGroup.Get("/:id", jobHandler.GetByID)
	jobGroup.Put("/:id", jobHandler.Update)
	jobGroup.Delete("/:id", jobHandler.Delete)

	// Analytics (protegido, solo lectura)
	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup.Get("/performance-metrics", analyticsHandler.GetPerformanceMetrics)
	analyticsGroup.Get("/top-performers", analyticsHandler.GetTopPerformers)
	analyticsGroup.Get("/redo-breakdown", analyticsHandler.GetRedoBreakdown)
	analyticsGroup.Get("/window-performance", analyticsHandler.GetWindowPerformance)
	analyticsGroup.Get("/installer-time-performance", analyticsHandler.GetInstallerTimePerformance)
	analyticsGroup.Get("/film-consumption", analyticsHandler.GetFilmConsumption)

	// Inventory ledger (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/stock/add", inventoryHandler.AddStock)
	invGroup.Post("/stock/adjust", inventoryHandler.AdjustStock)
	invGroup.Put("/films/:id/minimum-stock", inventoryHandler.SetMinimumStock)
	invGroup.Get("/low-stock", inventoryHandler.GetLowStockFilms)
	invGroup.Get("/transactions", inventoryHandler.GetTransactions)

	// Films (protegido)
	films := protected.Group("/films")
	filmHandler := NewFilmHandler(deps.FilmUC)
	films.Post("/", filmHandler.Create)
	films.Get("/", filmHandler.List)
	films.Get("/:id", filmHandler.GetByID)

	// Installers (protegido)
	installers := protected.Group("/installers")
	installerHandler := NewInstallerHandler(deps.InstallerUC)
	installers.Post("/", installerHandler.Create)
	installers.Get("/", installerHandler.List)
}
