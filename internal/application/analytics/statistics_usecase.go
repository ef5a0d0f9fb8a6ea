package analytics

import (
	"context"
	"time"

	"github.com/stockline/stockline-api/internal/application/dto"
	"github.com/stockline/stockline-api/internal/domain/repository"
	"github.com/stockline/stockline-api/pkg/logger"
)

// windowDays tamaño de la ventana de análisis de movimientos.
const windowDays = 30

// StatsCache puerto de caché de reportes por usuario. La implementación Redis
// vive en infraestructura; nil deshabilita el caché.
type StatsCache interface {
	Get(ctx context.Context, userID string) (*dto.StatisticsReport, error)
	Set(ctx context.Context, userID string, report *dto.StatisticsReport) error
	Invalidate(ctx context.Context, userID string) error
}

// StatisticsUseCase arma el reporte completo de estadísticas de inventario:
// dos consultas (productos y movimientos de 60 días) y el resto es pipeline puro.
type StatisticsUseCase struct {
	repo  repository.AnalyticsRepository
	cache StatsCache
	log   *logger.Logger
}

// NewStatisticsUseCase construye el caso de uso. cache puede ser nil.
func NewStatisticsUseCase(repo repository.AnalyticsRepository, cache StatsCache, log *logger.Logger) *StatisticsUseCase {
	return &StatisticsUseCase{repo: repo, cache: cache, log: log}
}

// ComputeStatistics devuelve el reporte del usuario, sirviendo del caché si hay
// una copia fresca. Los fallos de caché no interrumpen el cálculo.
func (uc *StatisticsUseCase) ComputeStatistics(ctx context.Context, userID string) (*dto.StatisticsReport, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, userID); err != nil {
			uc.log.Warn().Err(err).Str("user_id", userID).Msg("caché de estadísticas no disponible")
		} else if cached != nil {
			return cached, nil
		}
	}

	report, err := uc.ComputeStatisticsAt(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, userID, report); err != nil {
			uc.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo guardar el reporte en caché")
		}
	}
	return report, nil
}

// InvalidateCache descarta el reporte cacheado del usuario. Se llama después de
// registrar movimientos para que el siguiente reporte refleje el ledger.
func (uc *StatisticsUseCase) InvalidateCache(ctx context.Context, userID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo invalidar el caché de estadísticas")
	}
}

// ComputeStatisticsAt calcula el reporte con asOf como límite superior de las
// ventanas: actual [asOf−30d, asOf) y anterior [asOf−60d, asOf−30d).
func (uc *StatisticsUseCase) ComputeStatisticsAt(ctx context.Context, userID string, asOf time.Time) (*dto.StatisticsReport, error) {
	windowStart := asOf.AddDate(0, 0, -windowDays)
	previousStart := asOf.AddDate(0, 0, -2*windowDays)

	products, err := uc.repo.ListProducts(ctx, userID)
	if err != nil {
		return nil, err
	}
	all, err := uc.repo.ListMovements(ctx, userID, previousStart, asOf)
	if err != nil {
		return nil, err
	}

	var current, previous []repository.MovementRow
	for _, m := range all {
		if m.Date.Before(windowStart) {
			previous = append(previous, m)
		} else {
			current = append(current, m)
		}
	}

	currentWindow := SummarizeWindow(current)
	previousWindow := SummarizeWindow(previous)

	return &dto.StatisticsReport{
		General:            GeneralStats(products),
		Movements:          currentWindow,
		PreviousMovements:  previousWindow,
		Trends:             Trends(currentWindow, previousWindow),
		TopMoved:           TopMoved(current),
		Categories:         CategoryValuation(products),
		ReorderPredictions: ReorderPredictions(products, current, windowDays),
		ROI:                ROIStats(products, current),
		GeneratedAt:        asOf,
	}, nil
}
