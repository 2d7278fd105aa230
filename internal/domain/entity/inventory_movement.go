package entity

import "time"

// MovementType tipos de movimiento del libro de inventario.
type MovementType string

const (
	MovementEntrada             MovementType = "entrada"
	MovementSalida              MovementType = "salida"
	MovementAjuste              MovementType = "ajuste"
	MovementVenta               MovementType = "venta"
	MovementAlquiler            MovementType = "alquiler"
	MovementDevolucion          MovementType = "devolucion"
	MovementCancelacionAlquiler MovementType = "cancelacion_alquiler"
)

// Valid reporta si el tipo de movimiento es uno de los valores cerrados.
func (t MovementType) Valid() bool {
	switch t {
	case MovementEntrada, MovementSalida, MovementAjuste, MovementVenta,
		MovementAlquiler, MovementDevolucion, MovementCancelacionAlquiler:
		return true
	}
	return false
}

// Tipos de referencia de un movimiento hacia el documento que lo originó.
const (
	RefSale             = "sale"
	RefSaleCancellation = "sale_cancellation"
	RefRental           = "rental"
	RefAdjustment       = "adjustment"
)

// MovementRef vincula un movimiento con la venta/alquiler que lo causó.
type MovementRef struct {
	Type string
	ID   string
}

// InventoryMovement es una entrada inmutable del libro de inventario: se crea
// exactamente una por cada mutación de stock y nunca se actualiza ni borra.
//
// PreviousStock/NewStock son instantáneas del contador que el movimiento muta
// principalmente: stock para entrada/salida/ajuste/venta (y devoluciones de
// venta), stock_available para alquiler/devolucion/cancelacion_alquiler.
type InventoryMovement struct {
	ID             string
	OrganizationID string
	ProductID      string
	UserID         string
	Type           MovementType
	Quantity       int
	PreviousStock  int
	NewStock       int
	ReferenceType  string
	ReferenceID    string
	Reason         string
	CreatedAt      time.Time
}
