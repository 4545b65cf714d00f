package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tintpro-api/internal/application/dto"
	"github.com/tu-usuario/tintpro-api/internal/application/usecase"
	"github.com/tu-usuario/tintpro-api/internal/domain"
)

// FilmHandler maneja las peticiones HTTP para películas (protegido).
type FilmHandler struct {
	uc *usecase.FilmUseCase
}

// NewFilmHandler construye el handler.
func NewFilmHandler(uc *usecase.FilmUseCase) *FilmHandler {
	return &FilmHandler{uc: uc}
}

// Create godoc
// @Summary      Crear película
// @Description  Crea la película y siembra su fila de inventario en cero.
// @Tags         films
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFilmRequest  true  "name, type, cost_per_sqft"
// @Success      201   {object}  dto.FilmResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/films [post]
func (h *FilmHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFilmRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, type y cost_per_sqft son requeridos"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "la película ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener película por ID
// @Tags         films
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la película"
// @Success      200  {object}  dto.FilmResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/films/{id} [get]
func (h *FilmHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "película no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar películas
// @Tags         films
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo activas"  default(false)
// @Success      200  {array}  dto.FilmResponse
// @Router       /api/films [get]
func (h *FilmHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.QueryBool("active", false))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
