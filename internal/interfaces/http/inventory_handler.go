package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tintpro-api/internal/application/dto"
	"github.com/tu-usuario/tintpro-api/internal/application/inventory"
	"github.com/tu-usuario/tintpro-api/internal/domain"
)

// InventoryHandler maneja el ledger de inventario de películas (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// AddStock godoc
// @Summary      Sumar stock a una película
// @Description  Escribe la mutación y su fila `addition` del ledger en una
//	transacción. quantity <= 0 se rechaza sin escribir nada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "film_id, quantity > 0, notes"
// @Success      200   {object}  dto.StockDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/add [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddStock(c.Context(), in.FilmID, in.Quantity, actorID, in.Notes)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar stock a un valor absoluto
// @Description  Calcula el delta contra el stock actual (fila bloqueada) y
//	escribe la fila `adjustment` del ledger en la misma transacción.
//	new_stock < 0 se rechaza sin escribir nada.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "film_id, new_stock >= 0, notes"
// @Success      200   {object}  dto.StockDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/adjust [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	actorID := GetUserID(c)
	if actorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AdjustStock(c.Context(), in.FilmID, in.NewStock, actorID, in.Notes)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// SetMinimumStock godoc
// @Summary      Configurar el umbral mínimo de stock
// @Description  Solo actualiza el umbral; no emite fila del ledger.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la película"
// @Param        body  body  dto.SetMinimumStockRequest  true  "minimum_stock >= 0"
// @Success      200   {object}  dto.StockDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/films/{id}/minimum-stock [put]
func (h *InventoryHandler) SetMinimumStock(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.SetMinimumStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetMinimumStock(c.Context(), id, in.MinimumStock)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}

// GetLowStockFilms godoc
// @Summary      Películas con stock bajo o acercándose al mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockFilmDTO
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) GetLowStockFilms(c *fiber.Ctx) error {
	out, err := h.uc.GetLowStockFilms(c.Context())
	if err != nil {
		return internal(c, err)
	}
	return c.JSON(out)
}

// GetTransactions godoc
// @Summary      Listar el ledger de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        film_id  query  string  false  "Filtrar por película"
// @Param        limit    query  int     false  "Límite"  default(50)
// @Success      200  {array}  dto.InventoryTransactionDTO
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	filmID := c.Query("film_id")
	limit := c.QueryInt("limit", 50)
	out, err := h.uc.GetTransactions(c.Context(), filmID, limit)
	if err != nil {
		return internal(c, err)
	}
	return c.JSON(out)
}

// inventoryError mapea los errores de dominio del ledger a códigos HTTP.
func inventoryError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "película no encontrada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
