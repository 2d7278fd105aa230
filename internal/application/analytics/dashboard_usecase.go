// Package analytics contiene el caso de uso del dashboard de la organización.
package analytics

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/jmarte/equimed-api/internal/application/ports"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

// DashboardUseCase produce el resumen del tablero de una organización:
// inventario, alquileres activos y cifras de cobro de ventas.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). Los agregados se
// cachean por organización; un fallo del cache degrada a consultar la DB.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         ports.StatsCache
	log           zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, cache ports.StatsCache, log zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, cache: cache, log: log}
}

// GetStats devuelve los agregados del dashboard, sirviendo del cache cuando
// hay un valor vigente.
func (uc *DashboardUseCase) GetStats(ctx context.Context, organizationID string) (*entity.DashboardStats, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, organizationID)
		if err != nil {
			uc.log.Warn().Err(err).Str("organization_id", organizationID).Msg("cache del dashboard no disponible")
		} else if cached != nil {
			return cached, nil
		}
	}

	stats, err := uc.analyticsRepo.GetDashboardStats(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, organizationID, stats); err != nil {
			uc.log.Warn().Err(err).Str("organization_id", organizationID).Msg("no se pudo cachear el dashboard")
		}
	}
	return stats, nil
}
