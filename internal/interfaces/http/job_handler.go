package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tintpro-api/internal/application/dto"
	"github.com/tu-usuario/tintpro-api/internal/application/jobs"
	"github.com/tu-usuario/tintpro-api/internal/domain"
)

// JobHandler maneja las peticiones HTTP de trabajos (protegido).
type JobHandler struct {
	uc *jobs.UseCase
}

// NewJobHandler construye el handler.
func NewJobHandler(uc *jobs.UseCase) *JobHandler {
	return &JobHandler{uc: uc}
}

// Create godoc
// @Summary      Crear trabajo
// @Description  Persiste el trabajo con todos sus derivados (dimensiones,
//	instaladores, redos, asignaciones de tiempo) en una transacción y asigna
//	el número de trabajo desde la secuencia.
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJobRequest  true  "Datos del trabajo"
// @Success      201   {object}  dto.JobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return jobError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar trabajo
// @Description  Reemplaza el trabajo y todos sus hijos por completo y
//	recalcula las asignaciones de tiempo.
// @Tags         jobs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del trabajo"
// @Param        body  body  dto.CreateJobRequest  true  "Datos del trabajo"
// @Success      200   {object}  dto.JobResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.CreateJobRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return jobError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar trabajo
// @Description  Elimina el trabajo y todos sus hijos en cascada.
// @Tags         jobs
// @Security     Bearer
// @Param        id  path  string  true  "ID del trabajo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return jobError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener trabajo por ID
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del trabajo"
// @Success      200  {object}  dto.JobResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return jobError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar trabajos
// @Tags         jobs
// @Security     Bearer
// @Produce      json
// @Param        installer_id  query  string  false  "Filtrar por instalador"
// @Param        date_from     query  string  false  "YYYY-MM-DD"
// @Param        date_to       query  string  false  "YYYY-MM-DD"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.JobResponse
// @Router       /api/jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato YYYY-MM-DD"})
	}
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.List(c.Context(), f, limit, offset)
	if err != nil {
		return jobError(c, err)
	}
	return c.JSON(out)
}

// jobError mapea los errores de dominio del camino de trabajos a códigos HTTP.
func jobError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
