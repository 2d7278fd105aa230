package ports

import (
	"context"

	"github.com/jmarte/equimed-api/internal/domain/entity"
)

// StatsCache cachea los agregados del dashboard por organización con TTL.
// Un miss (o un cache caído) devuelve nil, nil: el caller recalcula contra la
// DB y la API nunca depende de la disponibilidad del cache.
type StatsCache interface {
	Get(ctx context.Context, organizationID string) (*entity.DashboardStats, error)
	Set(ctx context.Context, organizationID string, stats *entity.DashboardStats) error
	Invalidate(ctx context.Context, organizationID string) error
}
