package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationItemRequest línea cotizada.
type QuotationItemRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	Quantity        int             `json:"quantity" validate:"min=1"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// CreateQuotationRequest entrada para crear una cotización. StartDate/EndDate
// solo aplican al tipo alquiler.
type CreateQuotationRequest struct {
	ClientID        string                 `json:"client_id" validate:"required"`
	Type            string                 `json:"type" validate:"required"`
	ValidUntil      *time.Time             `json:"valid_until"`
	StartDate       *time.Time             `json:"start_date"`
	EndDate         *time.Time             `json:"end_date"`
	TaxRate         decimal.Decimal        `json:"tax_rate"`
	DiscountPercent decimal.Decimal        `json:"discount_percent"`
	PaymentMethod   string                 `json:"payment_method"`
	Notes           string                 `json:"notes"`
	Items           []QuotationItemRequest `json:"items" validate:"required,min=1"`
}

// UpdateQuotationRequest entrada para editar una cotización no convertida.
// Items no nulo reemplaza todas las líneas y recalcula totales.
type UpdateQuotationRequest struct {
	ValidUntil      *time.Time             `json:"valid_until"`
	StartDate       *time.Time             `json:"start_date"`
	EndDate         *time.Time             `json:"end_date"`
	TaxRate         *decimal.Decimal       `json:"tax_rate"`
	DiscountPercent *decimal.Decimal       `json:"discount_percent"`
	PaymentMethod   *string                `json:"payment_method"`
	Notes           *string                `json:"notes"`
	Items           []QuotationItemRequest `json:"items"`
}

// ConvertToSaleRequest parámetros de conversión a venta.
type ConvertToSaleRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// ConvertToRentalRequest parámetros de conversión a alquiler. Las fechas
// vacías caen a las propuestas en la cotización.
type ConvertToRentalRequest struct {
	StartDate     *time.Time      `json:"start_date"`
	EndDate       *time.Time      `json:"end_date"`
	Period        string          `json:"period"`
	Deposit       decimal.Decimal `json:"deposit"`
	PaymentMethod string          `json:"payment_method"`
	ConditionOut  string          `json:"condition_out"`
}

// QuotationItemResponse línea de una cotización.
type QuotationItemResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// QuotationResponse salida de una cotización.
type QuotationResponse struct {
	ID              string                  `json:"id"`
	OrganizationID  string                  `json:"organization_id"`
	Number          string                  `json:"number"`
	Type            string                  `json:"type"`
	ClientID        string                  `json:"client_id"`
	CreatedBy       string                  `json:"created_by"`
	Status          string                  `json:"status"`
	QuotationDate   time.Time               `json:"quotation_date"`
	ValidUntil      *time.Time              `json:"valid_until,omitempty"`
	StartDate       *time.Time              `json:"start_date,omitempty"`
	EndDate         *time.Time              `json:"end_date,omitempty"`
	Subtotal        decimal.Decimal         `json:"subtotal"`
	TaxRate         decimal.Decimal         `json:"tax_rate"`
	TaxAmount       decimal.Decimal         `json:"tax_amount"`
	DiscountPercent decimal.Decimal         `json:"discount_percent"`
	DiscountAmount  decimal.Decimal         `json:"discount_amount"`
	Total           decimal.Decimal         `json:"total"`
	PaymentMethod   string                  `json:"payment_method"`
	Notes           string                  `json:"notes"`
	SaleID          *string                 `json:"sale_id,omitempty"`
	RentalID        *string                 `json:"rental_id,omitempty"`
	Items           []QuotationItemResponse `json:"items"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// QuotationListResponse lista paginada de cotizaciones.
type QuotationListResponse struct {
	Items []QuotationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
