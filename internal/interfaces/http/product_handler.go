package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/application/usecase"
)

// ProductHandler maneja el CRUD de productos (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create crea un producto en la organización del token.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	if in.SKU == "" || in.Name == "" || in.Type == "" {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "sku, name y type son requeridos")
	}
	product, err := h.uc.Create(GetOrganizationID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetByID obtiene un producto.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// Update actualiza los campos editables de un producto.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	product, err := h.uc.Update(GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// Delete borra o desactiva un producto según tenga historial.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.uc.Delete(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if deleted {
		return c.JSON(fiber.Map{"message": "producto eliminado"})
	}
	return c.JSON(fiber.Map{"message": "producto con historial: desactivado"})
}

// List lista productos con paginación.
func (h *ProductHandler) List(c *fiber.Ctx) error {
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

// ListLowStock productos en o bajo su stock mínimo.
func (h *ProductHandler) ListLowStock(c *fiber.Ctx) error {
	list, err := h.uc.ListLowStock(GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "items": list})
}
