package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. InitialStock siembra
// Stock y StockAvailable con el mismo valor.
type CreateProductRequest struct {
	SKU                string          `json:"sku" validate:"required,min=1,max=100"`
	Name               string          `json:"name" validate:"required,min=1,max=200"`
	Description        string          `json:"description"`
	Type               string          `json:"type" validate:"required"`
	Price              decimal.Decimal `json:"price"`
	RentalPriceDaily   decimal.Decimal `json:"rental_price_daily"`
	RentalPriceWeekly  decimal.Decimal `json:"rental_price_weekly"`
	RentalPriceMonthly decimal.Decimal `json:"rental_price_monthly"`
	Cost               decimal.Decimal `json:"cost"`
	InitialStock       int             `json:"initial_stock" validate:"min=0"`
	MinStock           int             `json:"min_stock" validate:"min=0"`
	Location           string          `json:"location"`
}

// UpdateProductRequest entrada para actualizar un producto. Stock y
// StockAvailable no aparecen: los contadores solo se mueven vía movimientos.
type UpdateProductRequest struct {
	Name               *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description        *string          `json:"description"`
	Type               *string          `json:"type"`
	Price              *decimal.Decimal `json:"price"`
	RentalPriceDaily   *decimal.Decimal `json:"rental_price_daily"`
	RentalPriceWeekly  *decimal.Decimal `json:"rental_price_weekly"`
	RentalPriceMonthly *decimal.Decimal `json:"rental_price_monthly"`
	Cost               *decimal.Decimal `json:"cost"`
	MinStock           *int             `json:"min_stock"`
	Location           *string          `json:"location"`
	IsActive           *bool            `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                 string          `json:"id"`
	OrganizationID     string          `json:"organization_id"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Type               string          `json:"type"`
	Price              decimal.Decimal `json:"price"`
	RentalPriceDaily   decimal.Decimal `json:"rental_price_daily"`
	RentalPriceWeekly  decimal.Decimal `json:"rental_price_weekly"`
	RentalPriceMonthly decimal.Decimal `json:"rental_price_monthly"`
	Cost               decimal.Decimal `json:"cost"`
	Stock              int             `json:"stock"`
	StockAvailable     int             `json:"stock_available"`
	MinStock           int             `json:"min_stock"`
	Location           string          `json:"location"`
	IsActive           bool            `json:"is_active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
