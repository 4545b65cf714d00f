package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tintpro-api/internal/application/dto"
	"github.com/tu-usuario/tintpro-api/internal/application/usecase"
	"github.com/tu-usuario/tintpro-api/internal/domain"
)

// InstallerHandler maneja las peticiones HTTP para instaladores (protegido).
type InstallerHandler struct {
	uc *usecase.InstallerUseCase
}

// NewInstallerHandler construye el handler.
func NewInstallerHandler(uc *usecase.InstallerUseCase) *InstallerHandler {
	return &InstallerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear instalador
// @Tags         installers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInstallerRequest  true  "name"
// @Success      201   {object}  dto.InstallerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/installers [post]
func (h *InstallerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInstallerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar instaladores
// @Tags         installers
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo activos"  default(false)
// @Success      200  {array}  dto.InstallerResponse
// @Router       /api/installers [get]
func (h *InstallerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.QueryBool("active", false))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
