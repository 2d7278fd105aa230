package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta solicitada.
type SaleItemRequest struct {
	ProductID       string          `json:"product_id" validate:"required"`
	Quantity        int             `json:"quantity" validate:"min=1"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// CreateSaleRequest entrada para crear una venta directa.
type CreateSaleRequest struct {
	ClientID       string            `json:"client_id" validate:"required"`
	Status         string            `json:"status"`
	PaymentMethod  string            `json:"payment_method"`
	PaymentRef     string            `json:"payment_reference"`
	Notes          string            `json:"notes"`
	TaxRate        decimal.Decimal   `json:"tax_rate"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	PaidAmount     decimal.Decimal   `json:"paid_amount"`
	Items          []SaleItemRequest `json:"items" validate:"required,min=1"`
}

// PaymentRequest entrada para registrar un pago (venta o alquiler).
type PaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Reference     string          `json:"reference"`
	Notes         string          `json:"notes"`
}

// SaleItemResponse línea de una venta.
type SaleItemResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID               string             `json:"id"`
	OrganizationID   string             `json:"organization_id"`
	Number           string             `json:"number"`
	InvoiceNumber    string             `json:"invoice_number"`
	QuotationID      *string            `json:"quotation_id,omitempty"`
	ClientID         string             `json:"client_id"`
	CreatedBy        string             `json:"created_by"`
	Status           string             `json:"status"`
	SaleDate         time.Time          `json:"sale_date"`
	DueDate          *time.Time         `json:"due_date,omitempty"`
	Subtotal         decimal.Decimal    `json:"subtotal"`
	TaxRate          decimal.Decimal    `json:"tax_rate"`
	TaxAmount        decimal.Decimal    `json:"tax_amount"`
	DiscountAmount   decimal.Decimal    `json:"discount_amount"`
	Total            decimal.Decimal    `json:"total"`
	PaidAmount       decimal.Decimal    `json:"paid_amount"`
	Balance          decimal.Decimal    `json:"balance"`
	PaymentMethod    string             `json:"payment_method"`
	PaymentReference string             `json:"payment_reference,omitempty"`
	Notes            string             `json:"notes,omitempty"`
	Items            []SaleItemResponse `json:"items"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// PaymentResponse salida de un pago aplicado a una venta.
type PaymentResponse struct {
	ID            string          `json:"id"`
	SaleID        string          `json:"sale_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PaymentDate   time.Time       `json:"payment_date"`
}
