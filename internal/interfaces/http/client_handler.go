package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/application/usecase"
)

// ClientHandler maneja el CRUD de clientes (protegido).
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create crea un cliente en la organización del token.
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" || in.Type == "" {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "name y type son requeridos")
	}
	client, err := h.uc.Create(GetOrganizationID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// GetByID obtiene un cliente.
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	client, err := h.uc.GetByID(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(client)
}

// Update actualiza los campos editables de un cliente.
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	client, err := h.uc.Update(GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(client)
}

// Deactivate desactiva un cliente.
func (h *ClientHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(GetOrganizationID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "cliente desactivado"})
}

// List lista clientes con paginación.
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "paginación inválida")
	}
	list, err := h.uc.List(GetOrganizationID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
