package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RentalItemRequest línea de alquiler solicitada.
type RentalItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateRentalRequest entrada para crear un alquiler. Con Items se crea un
// alquiler multi-línea; con ProductID, el camino legado de un solo producto
// donde la tarifa es RentalPrice o, si falta, la del producto según Period.
type CreateRentalRequest struct {
	ClientID        string              `json:"client_id" validate:"required"`
	ProductID       *string             `json:"product_id"`
	RentalPrice     *decimal.Decimal    `json:"rental_price"`
	Items           []RentalItemRequest `json:"items"`
	StartDate       time.Time           `json:"start_date" validate:"required"`
	EndDate         time.Time           `json:"end_date" validate:"required"`
	Period          string              `json:"period"`
	Deposit         decimal.Decimal     `json:"deposit"`
	TaxRate         decimal.Decimal     `json:"tax_rate"`
	Discount        decimal.Decimal     `json:"discount"`
	DiscountPercent decimal.Decimal     `json:"discount_percent"`
	PaymentMethod   string              `json:"payment_method"`
	Notes           string              `json:"notes"`
	ConditionOut    string              `json:"condition_out"`
}

// ReturnRentalRequest entrada para registrar la devolución del equipo.
type ReturnRentalRequest struct {
	ConditionIn string `json:"condition_in"`
}

// RentalItemResponse línea de un alquiler multi-producto.
type RentalItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	RentalDays  int             `json:"rental_days"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// RentalResponse salida de un alquiler.
type RentalResponse struct {
	ID               string               `json:"id"`
	OrganizationID   string               `json:"organization_id"`
	Number           string               `json:"number"`
	QuotationID      *string              `json:"quotation_id,omitempty"`
	ClientID         string               `json:"client_id"`
	CreatedBy        string               `json:"created_by"`
	Status           string               `json:"status"`
	ProductID        *string              `json:"product_id,omitempty"`
	RentalPrice      *decimal.Decimal     `json:"rental_price,omitempty"`
	StartDate        time.Time            `json:"start_date"`
	EndDate          time.Time            `json:"end_date"`
	ActualReturnDate *time.Time           `json:"actual_return_date,omitempty"`
	Period           string               `json:"period"`
	Deposit          decimal.Decimal      `json:"deposit"`
	TaxRate          decimal.Decimal      `json:"tax_rate"`
	Discount         decimal.Decimal      `json:"discount"`
	DiscountPercent  decimal.Decimal      `json:"discount_percent"`
	TotalCost        decimal.Decimal      `json:"total_cost"`
	PaidAmount       decimal.Decimal      `json:"paid_amount"`
	Balance          decimal.Decimal      `json:"balance"`
	PaymentStatus    string               `json:"payment_status"`
	PaymentMethod    string               `json:"payment_method"`
	Notes            string               `json:"notes,omitempty"`
	ConditionOut     string               `json:"condition_out,omitempty"`
	ConditionIn      string               `json:"condition_in,omitempty"`
	Items            []RentalItemResponse `json:"items"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// RentalListResponse lista paginada de alquileres.
type RentalListResponse struct {
	Items []RentalResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// RentalPaymentResponse salida de un pago aplicado a un alquiler.
type RentalPaymentResponse struct {
	ID            string          `json:"id"`
	RentalID      string          `json:"rental_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PaymentDate   time.Time       `json:"payment_date"`
}
