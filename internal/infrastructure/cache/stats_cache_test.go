package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockline/stockline-api/internal/application/dto"
	"github.com/stockline/stockline-api/internal/infrastructure/cache"
)

func newTestCache(t *testing.T, ttl time.Duration) (*cache.StatsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewStatsCache(client, ttl), mr
}

func sampleReport() *dto.StatisticsReport {
	return &dto.StatisticsReport{
		General: dto.GeneralStatsDTO{
			TotalProducts: 3,
			TotalStock:    120,
			StockValue:    decimal.NewFromInt(1500),
		},
		Movements:   dto.MovementWindowDTO{Total: 7, EntriesQty: 40, ExitsQty: 25},
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStatsCache_SetYGet(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u1", sampleReport()))

	got, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.General.TotalProducts)
	assert.True(t, got.General.StockValue.Equal(decimal.NewFromInt(1500)), "los decimales sobreviven el viaje JSON")
	assert.Equal(t, 7, got.Movements.Total)
}

func TestStatsCache_MissDevuelveNil(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	got, err := c.Get(context.Background(), "desconocido")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStatsCache_ExpiraConTTL(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u1", sampleReport()))
	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got, "tras el TTL el reporte debe expirar")
}

func TestStatsCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u1", sampleReport()))
	require.NoError(t, c.Invalidate(ctx, "u1"))

	got, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStatsCache_EntradaCorruptaEsMiss(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)

	require.NoError(t, mr.Set("stats:u1", "{esto no es json"))

	got, err := c.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, got, "una entrada corrupta se trata como miss, no como error")
}
