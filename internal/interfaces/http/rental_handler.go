package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/application/rentals"
	"github.com/jmarte/equimed-api/internal/domain/entity"
)

// RentalHandler maneja alquileres, devoluciones, cancelaciones y pagos
// (protegido).
type RentalHandler struct {
	uc *rentals.UseCase
}

// NewRentalHandler construye el handler.
func NewRentalHandler(uc *rentals.UseCase) *RentalHandler {
	return &RentalHandler{uc: uc}
}

// Create crea un alquiler (multi-línea o camino legado de un producto).
func (h *RentalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRentalRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	items := make([]rentals.ItemInput, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, rentals.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	rental, err := h.uc.Create(c.Context(), rentals.CreateInput{
		OrganizationID:  GetOrganizationID(c),
		UserID:          GetUserID(c),
		ClientID:        in.ClientID,
		ProductID:       in.ProductID,
		RentalPrice:     in.RentalPrice,
		Items:           items,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Period:          entity.RentalPeriod(in.Period),
		Deposit:         in.Deposit,
		TaxRate:         in.TaxRate,
		Discount:        in.Discount,
		DiscountPercent: in.DiscountPercent,
		PaymentMethod:   in.PaymentMethod,
		Notes:           in.Notes,
		ConditionOut:    in.ConditionOut,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRentalResponse(rental))
}

// GetByID obtiene un alquiler con sus líneas.
func (h *RentalHandler) GetByID(c *fiber.Ctx) error {
	rental, err := h.uc.Get(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toRentalResponse(rental))
}

// List lista alquileres, opcionalmente por estado (?status=).
func (h *RentalHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "paginación inválida")
	}
	page.DefaultPage()
	list, err := h.uc.List(GetOrganizationID(c), entity.RentalStatus(c.Query("status")), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.RentalResponse, 0, len(list))
	for _, rental := range list {
		items = append(items, toRentalResponse(rental))
	}
	return c.JSON(dto.RentalListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}})
}

// Return registra la devolución del equipo.
func (h *RentalHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnRentalRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	rental, err := h.uc.MarkReturned(c.Context(), GetOrganizationID(c), GetUserID(c), c.Params("id"), in.ConditionIn)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toRentalResponse(rental))
}

// Cancel cancela un alquiler activo.
func (h *RentalHandler) Cancel(c *fiber.Ctx) error {
	rental, err := h.uc.Cancel(c.Context(), GetOrganizationID(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toRentalResponse(rental))
}

// AddPayment registra un pago contra el alquiler.
func (h *RentalHandler) AddPayment(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return respond(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
	}
	payment, err := h.uc.AddPayment(c.Context(), rentals.PaymentInput{
		OrganizationID: GetOrganizationID(c),
		RentalID:       c.Params("id"),
		Amount:         in.Amount,
		PaymentMethod:  in.PaymentMethod,
		Reference:      in.Reference,
		Notes:          in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRentalPaymentResponse(payment))
}

// ListPayments pagos aplicados al alquiler.
func (h *RentalHandler) ListPayments(c *fiber.Ctx) error {
	list, err := h.uc.ListPayments(GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.RentalPaymentResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toRentalPaymentResponse(p))
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// MarkOverdue barrido de morosidad de alquileres activos vencidos.
func (h *RentalHandler) MarkOverdue(c *fiber.Ctx) error {
	updated, err := h.uc.MarkOverdue(c.Context(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CountResponse{Updated: updated})
}
