package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationStatus estados del ciclo de vida de una cotización.
type QuotationStatus string

const (
	QuotationPendiente  QuotationStatus = "pendiente"
	QuotationAceptada   QuotationStatus = "aceptada"
	QuotationRechazada  QuotationStatus = "rechazada"
	QuotationConvertida QuotationStatus = "convertida"
	QuotationVencida    QuotationStatus = "vencida"
)

// Valid reporta si el estado es uno de los valores cerrados.
func (s QuotationStatus) Valid() bool {
	switch s {
	case QuotationPendiente, QuotationAceptada, QuotationRechazada,
		QuotationConvertida, QuotationVencida:
		return true
	}
	return false
}

// QuotationType tipo de transacción que la cotización propone.
type QuotationType string

const (
	QuotationVenta    QuotationType = "venta"
	QuotationAlquiler QuotationType = "alquiler"
)

// Quotation representa una cotización. Una vez convertida a venta o alquiler
// (SaleID o RentalID no nulos, mutuamente excluyentes) queda inmutable.
type Quotation struct {
	ID             string
	OrganizationID string
	Number         string
	Type           QuotationType
	ClientID       string
	CreatedBy      string
	Status         QuotationStatus

	QuotationDate time.Time
	ValidUntil    *time.Time
	// Fechas del alquiler propuesto; solo para cotizaciones de tipo alquiler.
	StartDate *time.Time
	EndDate   *time.Time

	Subtotal        decimal.Decimal
	TaxRate         decimal.Decimal
	TaxAmount       decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	Total           decimal.Decimal

	PaymentMethod string
	Notes         string

	// Referencias al documento generado por la conversión (a lo sumo una).
	SaleID   *string
	RentalID *string

	Items []*QuotationItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Converted reporta si la cotización ya fue convertida a venta o alquiler.
func (q *Quotation) Converted() bool {
	return q.SaleID != nil || q.RentalID != nil
}

// QuotationItem línea de una cotización. ProductName se congela al momento de
// cotizar para preservar el historial si el producto se retira.
type QuotationItem struct {
	ID              string
	QuotationID     string
	ProductID       string
	ProductName     string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	Subtotal        decimal.Decimal
}
