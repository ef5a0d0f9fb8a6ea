// Package cache implementa el caché de reportes de estadísticas sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stockline/stockline-api/internal/application/analytics"
	"github.com/stockline/stockline-api/internal/application/dto"
)

var _ analytics.StatsCache = (*StatsCache)(nil)

// StatsCache guarda el reporte de estadísticas por usuario, serializado como
// JSON, con TTL corto. Un miss devuelve (nil, nil): el caller recalcula.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache construye el caché con el cliente y el TTL dados.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func statsKey(userID string) string {
	return "stats:" + userID
}

// Get devuelve el reporte cacheado del usuario, o nil si no hay copia fresca.
func (c *StatsCache) Get(ctx context.Context, userID string) (*dto.StatisticsReport, error) {
	raw, err := c.client.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats cache get: %w", err)
	}
	var report dto.StatisticsReport
	if err := json.Unmarshal(raw, &report); err != nil {
		// Entrada corrupta: tratar como miss.
		return nil, nil
	}
	return &report, nil
}

// Set guarda el reporte con el TTL configurado.
func (c *StatsCache) Set(ctx context.Context, userID string, report *dto.StatisticsReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("stats cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, statsKey(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("stats cache set: %w", err)
	}
	return nil
}

// Invalidate borra el reporte cacheado del usuario (tras registrar movimientos).
func (c *StatsCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, statsKey(userID)).Err(); err != nil {
		return fmt.Errorf("stats cache invalidate: %w", err)
	}
	return nil
}
