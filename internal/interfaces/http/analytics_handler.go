package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tintpro-api/internal/application/analytics"
	"github.com/tu-usuario/tintpro-api/internal/application/dto"
)

// AnalyticsHandler expone el agregador de métricas de desempeño (protegido).
// Todas las rutas aceptan installer_id, date_from y date_to como filtros.
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetPerformanceMetrics godoc
// @Summary      Métricas de desempeño del conjunto filtrado
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        installer_id  query  string  false  "Filtrar por instalador"
// @Param        date_from     query  string  false  "YYYY-MM-DD"
// @Param        date_to       query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.PerformanceMetricsDTO
// @Router       /api/analytics/performance-metrics [get]
func (h *AnalyticsHandler) GetPerformanceMetrics(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return badFilter(c)
	}
	out, err := h.uc.GetPerformanceMetrics(c.Context(), f)
	if err != nil {
		return internal(c, err)
	}
	return c.JSON(out)
}

// GetTopPerformers godoc
// @Summary      Ranking de instaladores por desempeño
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        limit         query  int     false  "Tamaño del ranking"  default(10)
// @Param        installer_id  query  string  false  "Filtrar por instalador"
// @Param        date_from     query  string  false  "YYYY-MM-DD"
// @Param        date_to       query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.TopPerformerDTO
// @Router       /api/analytics/top-performers [get]
func (h *AnalyticsHandler) GetTopPerformers(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return badFilter(c)
	}
	limit := c.QueryInt("limit", 10)
	out, err := h.uc.GetTopPerformers(c.Context(), limit, f)
	if err != nil {
		return internal(c, err)
	}
	return c.JSON(out)
}

// GetRedoBreakdown godoc
// @Summary      Redos agrupados por parte del vehículo
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        installer_id  query  string  false  "Filtrar por instalador"
// @Param        date_from     query  string  false  "YYYY-MM-DD"
// @Param        date_to       query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.RedoBreakdownDTO
// @Router       /api/analytics/redo-breakdown [get]
func (h *AnalyticsHandler) GetRedoBreakdown(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return badFilter(c)
	}
	out, err := h.uc.GetRedoBreakdown(c.Context(), f)
	if err != nil {
		return internal(c, err)
	}
	return c.JSON(out)
}

// GetWindowPerformance godoc
// @Summary      Análisis de ventanas con reconciliación de representaciones
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        installer_id  query  string  false  "Filtrar por instalador"
// @Param        date_from     query  string  false  "YYYY-MM-DD"
// @Param        date_to       query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.WindowPerformanceDTO
// @Router       /api/analytics/window-performance [get]
func (h *AnalyticsHandler) GetWindowPerformance(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return badFilter(c)
	}
	out, err := h.uc.GetWindowPerformanceAnalytics(c.Context(), f)
	if err != nil {
		return internal(c, err)
	}
	return c.JSON(out)
}

// GetInstallerTimePerformance godoc
// @Summary      Eficiencia de tiempo por instalador
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        installer_id  query  string  false  "Filtrar por instalador"
// @Param        date_from     query  string  false  "YYYY-MM-DD"
// @Param        date_to       query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.InstallerTimePerformanceDTO
// @Router       /api/analytics/installer-time-performance [get]
func (h *AnalyticsHandler) GetInstallerTimePerformance(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return badFilter(c)
	}
	out, err := h.uc.GetInstallerTimePerformance(c.Context(), f)
	if err != nil {
		return internal(c, err)
	}
	return c.JSON(out)
}

// GetFilmConsumption godoc
// @Summary      Consumo de material por película
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        installer_id  query  string  false  "Filtrar por instalador"
// @Param        date_from     query  string  false  "YYYY-MM-DD"
// @Param        date_to       query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.FilmConsumptionDTO
// @Router       /api/analytics/film-consumption [get]
func (h *AnalyticsHandler) GetFilmConsumption(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return badFilter(c)
	}
	out, err := h.uc.GetFilmConsumption(c.Context(), f)
	if err != nil {
		return internal(c, err)
	}
	return c.JSON(out)
}

func badFilter(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato YYYY-MM-DD"})
}

func internal(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
