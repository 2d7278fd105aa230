package repository

import (
	"context"

	"github.com/jmarte/equimed-api/internal/domain/entity"
)

// AnalyticsRepository consultas read-only de agregados para el dashboard.
type AnalyticsRepository interface {
	GetDashboardStats(ctx context.Context, organizationID string) (*entity.DashboardStats, error)
}
