package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/application/sales"
	"github.com/jmarte/equimed-api/internal/domain/entity"
)

// SaleHandler maneja ventas, cancelaciones y pagos (protegido).
type SaleHandler struct {
	uc *sales.UseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create crea una venta directa.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	items := make([]sales.ItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, sales.ItemInput{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
		})
	}
	sale, err := h.uc.Create(c.Context(), sales.CreateInput{
		OrganizationID: GetOrganizationID(c),
		UserID:         GetUserID(c),
		ClientID:       in.ClientID,
		Status:         entity.SaleStatus(in.Status),
		PaymentMethod:  in.PaymentMethod,
		PaymentRef:     in.PaymentRef,
		Notes:          in.Notes,
		TaxRate:        in.TaxRate,
		DiscountAmount: in.DiscountAmount,
		PaidAmount:     in.PaidAmount,
		Items:          items,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// GetByID obtiene una venta con sus líneas.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.Get(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// List lista ventas, opcionalmente por estado (?status=).
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "paginación inválida")
	}
	page.DefaultPage()
	list, err := h.uc.List(GetOrganizationID(c), entity.SaleStatus(c.Query("status")), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, sale := range list {
		items = append(items, toSaleResponse(sale))
	}
	return c.JSON(dto.SaleListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// Cancel cancela una venta devolviendo el stock al inventario.
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	sale, err := h.uc.Cancel(c.Context(), GetOrganizationID(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// AddPayment registra un pago contra la venta.
func (h *SaleHandler) AddPayment(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	payment, err := h.uc.AddPayment(c.Context(), sales.PaymentInput{
		OrganizationID: GetOrganizationID(c),
		SaleID:         c.Params("id"),
		Amount:         in.Amount,
		PaymentMethod:  in.PaymentMethod,
		Reference:      in.Reference,
		Notes:          in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPaymentResponse(payment))
}

// ListPayments pagos aplicados a la venta.
func (h *SaleHandler) ListPayments(c *fiber.Ctx) error {
	list, err := h.uc.ListPayments(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toPaymentResponse(p))
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}
