package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// recentMovementsWindow ventana del contador de movimientos del dashboard.
const recentMovementsWindow = 7 * 24 * time.Hour

// AnalyticsRepo consultas de solo lectura para el dashboard. No re-deriva
// cifras de cobro: total/paid/balance ya son consistentes en las filas.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetDashboardStats agrega en una sola consulta los números del tablero:
// inventario, alquileres activos y cifras de cobro de ventas no canceladas.
func (r *AnalyticsRepo) GetDashboardStats(ctx context.Context, organizationID string) (*entity.DashboardStats, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM products
	        WHERE organization_id = $1 AND is_active)                       AS total_products,
	    (SELECT COALESCE(SUM(price * stock), 0) FROM products
	        WHERE organization_id = $1 AND is_active)                       AS inventory_value,
	    (SELECT COUNT(*) FROM products
	        WHERE organization_id = $1 AND is_active AND stock <= min_stock) AS low_stock_products,
	    (SELECT COUNT(*) FROM rentals
	        WHERE organization_id = $1 AND status = 'activo')               AS active_rentals,
	    (SELECT COALESCE(SUM(total), 0) FROM sales
	        WHERE organization_id = $1 AND status <> 'cancelada')           AS sales_total,
	    (SELECT COALESCE(SUM(paid_amount), 0) FROM sales
	        WHERE organization_id = $1 AND status <> 'cancelada')           AS sales_paid,
	    (SELECT COALESCE(SUM(balance), 0) FROM sales
	        WHERE organization_id = $1 AND status <> 'cancelada')           AS sales_outstanding,
	    (SELECT COUNT(*) FROM inventory_movements
	        WHERE organization_id = $1 AND created_at >= $2)                AS recent_movements`

	since := time.Now().Add(-recentMovementsWindow)
	var stats entity.DashboardStats
	err := r.pool.QueryRow(ctx, query, organizationID, since).Scan(
		&stats.TotalProducts, &stats.InventoryValue, &stats.LowStockProducts,
		&stats.ActiveRentals, &stats.SalesTotal, &stats.SalesPaid,
		&stats.SalesOutstanding, &stats.RecentMovements,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}
