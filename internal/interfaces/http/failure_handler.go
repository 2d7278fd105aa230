package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/application/usecase"
)

// FailureHandler maneja el registro de fallas del sistema (protegido).
type FailureHandler struct {
	uc *usecase.FailureUseCase
}

// NewFailureHandler construye el handler.
func NewFailureHandler(uc *usecase.FailureUseCase) *FailureHandler {
	return &FailureHandler{uc: uc}
}

// Report registra una falla atribuida al usuario del token.
func (h *FailureHandler) Report(c *fiber.Ctx) error {
	var in dto.ReportFailureRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ErrorType == "" || in.Module == "" || in.ErrorMessage == "" {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "error_type, module y error_message son requeridos")
	}
	failure, err := h.uc.Report(GetOrganizationID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(failure)
}

// GetByID obtiene una falla.
func (h *FailureHandler) GetByID(c *fiber.Ctx) error {
	failure, err := h.uc.GetByID(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(failure)
}

// Resolve marca una falla como resuelta por el usuario del token.
func (h *FailureHandler) Resolve(c *fiber.Ctx) error {
	failure, err := h.uc.Resolve(GetOrganizationID(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(failure)
}

// Delete elimina una falla del registro.
func (h *FailureHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetOrganizationID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "falla eliminada"})
}

// List lista fallas; filtros opcionales severity y unresolved.
func (h *FailureHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "paginación inválida")
	}
	list, err := h.uc.List(GetOrganizationID(c), c.Query("severity"), c.QueryBool("unresolved"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
