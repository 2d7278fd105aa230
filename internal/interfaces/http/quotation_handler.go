package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/application/quotations"
	"github.com/jmarte/equimed-api/internal/domain/entity"
)

// QuotationHandler maneja cotizaciones y su conversión (protegido).
type QuotationHandler struct {
	uc *quotations.UseCase
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *quotations.UseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc}
}

func quotationItems(in []dto.QuotationItemRequest) []quotations.ItemInput {
	items := make([]quotations.ItemInput, 0, len(in))
	for _, item := range in {
		items = append(items, quotations.ItemInput{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
		})
	}
	return items
}

// Create crea una cotización.
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	quotation, err := h.uc.Create(c.Context(), quotations.CreateInput{
		OrganizationID:  GetOrganizationID(c),
		UserID:          GetUserID(c),
		ClientID:        in.ClientID,
		Type:            entity.QuotationType(in.Type),
		ValidUntil:      in.ValidUntil,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		TaxRate:         in.TaxRate,
		DiscountPercent: in.DiscountPercent,
		PaymentMethod:   in.PaymentMethod,
		Notes:           in.Notes,
		Items:           quotationItems(in.Items),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toQuotationResponse(quotation))
}

// GetByID obtiene una cotización con sus líneas.
func (h *QuotationHandler) GetByID(c *fiber.Ctx) error {
	quotation, err := h.uc.Get(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toQuotationResponse(quotation))
}

// List lista cotizaciones, opcionalmente por estado (?status=).
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "paginación inválida")
	}
	page.DefaultPage()
	list, err := h.uc.List(GetOrganizationID(c), entity.QuotationStatus(c.Query("status")), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.QuotationResponse, 0, len(list))
	for _, q := range list {
		items = append(items, toQuotationResponse(q))
	}
	return c.JSON(dto.QuotationListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// Update edita una cotización no convertida.
func (h *QuotationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateQuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	input := quotations.UpdateInput{
		OrganizationID:  GetOrganizationID(c),
		QuotationID:     c.Params("id"),
		ValidUntil:      in.ValidUntil,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		TaxRate:         in.TaxRate,
		DiscountPercent: in.DiscountPercent,
		PaymentMethod:   in.PaymentMethod,
		Notes:           in.Notes,
	}
	if in.Items != nil {
		input.Items = quotationItems(in.Items)
	}
	quotation, err := h.uc.Update(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toQuotationResponse(quotation))
}

// Delete elimina una cotización no convertida.
func (h *QuotationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetOrganizationID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "cotización eliminada"})
}

// Accept marca una cotización pendiente como aceptada.
func (h *QuotationHandler) Accept(c *fiber.Ctx) error {
	quotation, err := h.uc.Accept(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toQuotationResponse(quotation))
}

// Reject marca una cotización pendiente como rechazada.
func (h *QuotationHandler) Reject(c *fiber.Ctx) error {
	quotation, err := h.uc.Reject(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toQuotationResponse(quotation))
}

// ConvertToSale convierte una cotización aceptada en una venta.
func (h *QuotationHandler) ConvertToSale(c *fiber.Ctx) error {
	var in dto.ConvertToSaleRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	sale, err := h.uc.ConvertToSale(c.Context(), GetOrganizationID(c), GetUserID(c), c.Params("id"), in.PaymentMethod)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// ConvertToRental convierte una cotización de alquiler aceptada en un alquiler.
func (h *QuotationHandler) ConvertToRental(c *fiber.Ctx) error {
	var in dto.ConvertToRentalRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	rental, err := h.uc.ConvertToRental(c.Context(), GetOrganizationID(c), GetUserID(c), c.Params("id"), quotations.RentalParams{
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Period:        entity.RentalPeriod(in.Period),
		Deposit:       in.Deposit,
		PaymentMethod: in.PaymentMethod,
		ConditionOut:  in.ConditionOut,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRentalResponse(rental))
}

// ExpirePending barrido de vencimiento de cotizaciones pendientes.
func (h *QuotationHandler) ExpirePending(c *fiber.Ctx) error {
	updated, err := h.uc.ExpirePending(c.Context(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CountResponse{Updated: updated})
}
