package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmarte/equimed-api/internal/application/analytics"
	"github.com/jmarte/equimed-api/internal/domain/entity"
)

const testOrgID = "org-1"

type fakeAnalyticsRepo struct {
	stats *entity.DashboardStats
	calls int
}

func (r *fakeAnalyticsRepo) GetDashboardStats(_ context.Context, _ string) (*entity.DashboardStats, error) {
	r.calls++
	cp := *r.stats
	return &cp, nil
}

type fakeStatsCache struct {
	values map[string]*entity.DashboardStats
	err    error
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{values: make(map[string]*entity.DashboardStats)}
}

func (c *fakeStatsCache) Get(_ context.Context, organizationID string) (*entity.DashboardStats, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.values[organizationID], nil
}

func (c *fakeStatsCache) Set(_ context.Context, organizationID string, stats *entity.DashboardStats) error {
	if c.err != nil {
		return c.err
	}
	c.values[organizationID] = stats
	return nil
}

func (c *fakeStatsCache) Invalidate(_ context.Context, organizationID string) error {
	delete(c.values, organizationID)
	return nil
}

func sampleStats() *entity.DashboardStats {
	return &entity.DashboardStats{
		TotalProducts:    12,
		InventoryValue:   decimal.NewFromInt(45000),
		LowStockProducts: 2,
		ActiveRentals:    3,
		SalesTotal:       decimal.NewFromInt(9800),
		SalesPaid:        decimal.NewFromInt(7300),
		SalesOutstanding: decimal.NewFromInt(2500),
	}
}

func TestDashboard_SirveDelCacheTrasElPrimerHit(t *testing.T) {
	repo := &fakeAnalyticsRepo{stats: sampleStats()}
	cache := newFakeStatsCache()
	uc := analytics.NewDashboardUseCase(repo, cache, zerolog.Nop())

	ctx := context.Background()
	first, err := uc.GetStats(ctx, testOrgID)
	require.NoError(t, err)
	assert.Equal(t, 12, first.TotalProducts)
	assert.Equal(t, 1, repo.calls)

	second, err := uc.GetStats(ctx, testOrgID)
	require.NoError(t, err)
	assert.Equal(t, first.TotalProducts, second.TotalProducts)
	assert.Equal(t, 1, repo.calls, "el segundo pedido debe resolverse del cache")
}

func TestDashboard_CacheCaidoDegradaALaDB(t *testing.T) {
	repo := &fakeAnalyticsRepo{stats: sampleStats()}
	cache := newFakeStatsCache()
	cache.err = errors.New("redis: connection refused")
	uc := analytics.NewDashboardUseCase(repo, cache, zerolog.Nop())

	stats, err := uc.GetStats(context.Background(), testOrgID)
	require.NoError(t, err, "un cache caído nunca debe tumbar el dashboard")
	assert.Equal(t, 12, stats.TotalProducts)
	assert.Equal(t, 1, repo.calls)
}

func TestDashboard_SinCacheConfigurado(t *testing.T) {
	repo := &fakeAnalyticsRepo{stats: sampleStats()}
	uc := analytics.NewDashboardUseCase(repo, nil, zerolog.Nop())

	ctx := context.Background()
	_, err := uc.GetStats(ctx, testOrgID)
	require.NoError(t, err)
	_, err = uc.GetStats(ctx, testOrgID)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls, "sin cache, cada pedido consulta la DB")
}
