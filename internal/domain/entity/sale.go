package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estados de una venta.
type SaleStatus string

const (
	SaleCompletada    SaleStatus = "completada"
	SalePendientePago SaleStatus = "pendiente_pago"
	SaleParcial       SaleStatus = "parcial"
	SaleCancelada     SaleStatus = "cancelada"
)

// Valid reporta si el estado es uno de los valores cerrados.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleCompletada, SalePendientePago, SaleParcial, SaleCancelada:
		return true
	}
	return false
}

// Métodos de pago.
const (
	PaymentEfectivo      = "efectivo"
	PaymentTransferencia = "transferencia"
	PaymentTarjeta       = "tarjeta"
	PaymentCheque        = "cheque"
	PaymentCredito       = "credito"
)

// Sale representa una venta. Los totales se calculan al crearla y PaidAmount
// solo se mueve a través del libro de pagos; Balance = Total − PaidAmount.
type Sale struct {
	ID             string
	OrganizationID string
	Number         string
	InvoiceNumber  string
	QuotationID    *string
	ClientID       string
	CreatedBy      string
	Status         SaleStatus

	SaleDate time.Time
	DueDate  *time.Time

	Subtotal       decimal.Decimal
	TaxRate        decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	PaidAmount     decimal.Decimal
	Balance        decimal.Decimal

	PaymentMethod    string
	PaymentReference string
	Notes            string

	Items []*SaleItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaleItem línea de una venta.
type SaleItem struct {
	ID              string
	SaleID          string
	ProductID       string
	ProductName     string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	Subtotal        decimal.Decimal
}

// Payment registro inmutable de un pago aplicado a una venta.
type Payment struct {
	ID             string
	OrganizationID string
	SaleID         string
	Amount         decimal.Decimal
	PaymentMethod  string
	Reference      string
	Notes          string
	PaymentDate    time.Time
	CreatedAt      time.Time
}
