package entity

import "github.com/shopspring/decimal"

// DashboardStats agregados de solo lectura para el tablero de una organización.
// El núcleo garantiza que total/paid/balance son consistentes en todo momento,
// por lo que estas cifras nunca se re-derivan.
type DashboardStats struct {
	TotalProducts    int             `json:"total_products"`
	InventoryValue   decimal.Decimal `json:"inventory_value"`
	LowStockProducts int             `json:"low_stock_products"`
	ActiveRentals    int             `json:"active_rentals"`
	SalesTotal       decimal.Decimal `json:"sales_total"`
	SalesPaid        decimal.Decimal `json:"sales_paid"`
	SalesOutstanding decimal.Decimal `json:"sales_outstanding"`
	RecentMovements  int             `json:"recent_movements"`
}
