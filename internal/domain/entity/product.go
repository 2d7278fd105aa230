package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductType indica si un producto se vende, se alquila o ambas cosas.
type ProductType string

const (
	ProductVenta    ProductType = "venta"
	ProductAlquiler ProductType = "alquiler"
	ProductAmbos    ProductType = "ambos"
)

// Valid reporta si el tipo de producto es uno de los valores cerrados.
func (t ProductType) Valid() bool {
	switch t {
	case ProductVenta, ProductAlquiler, ProductAmbos:
		return true
	}
	return false
}

// Rentable reporta si el producto puede alquilarse.
func (t ProductType) Rentable() bool {
	return t == ProductAlquiler || t == ProductAmbos
}

// Sellable reporta si el producto puede venderse.
func (t ProductType) Sellable() bool {
	return t == ProductVenta || t == ProductAmbos
}

// Product representa un equipo médico del catálogo.
//
// Stock es el total de unidades en propiedad; StockAvailable las unidades que
// no están actualmente alquiladas. Para productos de tipo venta ambos
// contadores se mueven a la par; para alquiler/ambos divergen por las unidades
// en préstamo. Invariante en reposo: 0 <= StockAvailable <= Stock.
// Los contadores se mutan únicamente vía el motor de inventario (StockLedger).
type Product struct {
	ID                 string
	OrganizationID     string
	SKU                string // único por organización
	Name               string
	Description        string
	Type               ProductType
	Price              decimal.Decimal // precio de venta
	RentalPriceDaily   decimal.Decimal
	RentalPriceWeekly  decimal.Decimal
	RentalPriceMonthly decimal.Decimal
	Cost               decimal.Decimal
	Stock              int
	StockAvailable     int
	MinStock           int
	Location           string
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Rented devuelve la cantidad de unidades actualmente en préstamo.
// Nunca negativa, aun si los contadores quedaron inconsistentes.
func (p *Product) Rented() int {
	if r := p.Stock - p.StockAvailable; r > 0 {
		return r
	}
	return 0
}
