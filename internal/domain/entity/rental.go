package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RentalStatus estados del ciclo de vida de un alquiler.
type RentalStatus string

const (
	RentalActivo    RentalStatus = "activo"
	RentalDevuelto  RentalStatus = "devuelto"
	RentalVencido   RentalStatus = "vencido"
	RentalRenovado  RentalStatus = "renovado"
	RentalCancelado RentalStatus = "cancelado"
)

// Valid reporta si el estado es uno de los valores cerrados.
func (s RentalStatus) Valid() bool {
	switch s {
	case RentalActivo, RentalDevuelto, RentalVencido, RentalRenovado, RentalCancelado:
		return true
	}
	return false
}

// PaymentStatus estado de cobro de un alquiler.
type PaymentStatus string

const (
	PaymentPendiente PaymentStatus = "pendiente_pago"
	PaymentParcial   PaymentStatus = "parcial"
	PaymentPagado    PaymentStatus = "pagado"
	PaymentCancelado PaymentStatus = "cancelado"
)

// RentalPeriod periodicidad de la tarifa del alquiler.
type RentalPeriod string

const (
	PeriodDaily   RentalPeriod = "daily"
	PeriodWeekly  RentalPeriod = "weekly"
	PeriodMonthly RentalPeriod = "monthly"
)

// Rental representa un alquiler de equipos.
//
// Existen dos formas: la legada, con un solo producto (ProductID y RentalPrice
// no nulos), y la de múltiples líneas (Items no vacío, ProductID nulo). Ambas
// comparten totales, pagos y ciclo de vida.
type Rental struct {
	ID             string
	OrganizationID string
	Number         string
	QuotationID    *string
	ClientID       string
	CreatedBy      string
	Status         RentalStatus

	// Camino legado de un solo producto.
	ProductID   *string
	RentalPrice *decimal.Decimal

	StartDate        time.Time
	EndDate          time.Time
	ActualReturnDate *time.Time
	Period           RentalPeriod

	Deposit         decimal.Decimal
	TaxRate         decimal.Decimal
	Discount        decimal.Decimal // monto fijo o monto calculado del porcentaje
	DiscountPercent decimal.Decimal
	TotalCost       decimal.Decimal
	PaidAmount      decimal.Decimal
	Balance         decimal.Decimal
	PaymentStatus   PaymentStatus
	PaymentMethod   string

	Notes        string
	ConditionOut string
	ConditionIn  string

	Items []*RentalItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RentalItem línea de un alquiler multi-producto.
type RentalItem struct {
	ID             string
	OrganizationID string
	RentalID       string
	ProductID      string
	ProductName    string
	Quantity       int
	RentalDays     int
	UnitPrice      decimal.Decimal
	CreatedAt      time.Time
}

// RentalPayment registro inmutable de un pago aplicado a un alquiler.
type RentalPayment struct {
	ID             string
	OrganizationID string
	RentalID       string
	Amount         decimal.Decimal
	PaymentMethod  string
	Reference      string
	Notes          string
	PaymentDate    time.Time
	CreatedAt      time.Time
}
