package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockline/stockline-api/internal/application/analytics"
	"github.com/stockline/stockline-api/internal/domain/entity"
	"github.com/stockline/stockline-api/internal/domain/repository"
	"github.com/stockline/stockline-api/pkg/logger"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func product(id, name string, price, cost string, stock, minStock int64, category string) repository.ProductRow {
	return repository.ProductRow{
		ProductID:    id,
		Name:         name,
		Price:        dec(price),
		Cost:         dec(cost),
		Stock:        stock,
		MinStock:     minStock,
		CategoryName: category,
	}
}

func exit(productID, name string, qty int64, date time.Time) repository.MovementRow {
	return repository.MovementRow{ProductID: productID, ProductName: name, Type: entity.MovementTypeExit, Quantity: qty, Date: date}
}

func entry(productID, name string, qty int64, date time.Time) repository.MovementRow {
	return repository.MovementRow{ProductID: productID, ProductName: name, Type: entity.MovementTypeEntry, Quantity: qty, Date: date}
}

// ──────────────────────────────────────────────────────────────────────────────
// Variación porcentual
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateChange(t *testing.T) {
	assert.True(t, analytics.CalculateChange(0, 0).IsZero(), "sin actividad en ambas ventanas → 0")
	assert.True(t, analytics.CalculateChange(5, 0).Equal(dec("100")), "actividad nueva sin previa → 100")
	assert.True(t, analytics.CalculateChange(150, 100).Equal(dec("50")))
	assert.True(t, analytics.CalculateChange(50, 100).Equal(dec("-50")))
	assert.True(t, analytics.CalculateChange(0, 40).Equal(dec("-100")), "actividad que desaparece → -100")
}

// ──────────────────────────────────────────────────────────────────────────────
// Métricas generales
// ──────────────────────────────────────────────────────────────────────────────

func TestGeneralStats(t *testing.T) {
	products := []repository.ProductRow{
		product("p1", "A", "10", "0", 100, 5, "Bebidas"),
		product("p2", "B", "20", "0", 3, 5, "Bebidas"),  // bajo stock
		product("p3", "C", "15", "0", 0, 2, "Snacks"),   // agotado (y bajo stock)
		product("p4", "D", "8", "0", 50, 10, "Snacks"),
	}

	stats := analytics.GeneralStats(products)
	assert.Equal(t, 4, stats.TotalProducts)
	assert.Equal(t, 2, stats.LowStockProducts, "el agotado también cuenta como bajo stock")
	assert.Equal(t, 1, stats.OutOfStockProducts)
	assert.Equal(t, int64(153), stats.TotalStock)
	// 100×10 + 3×20 + 0×15 + 50×8 = 1460
	assert.True(t, stats.StockValue.Equal(dec("1460")))
	assert.True(t, stats.CriticalStockPct.Equal(dec("50")), "2 de 4 productos bajo el mínimo")
}

// Un producto agotado cuenta en ambos contadores: 0 <= min_stock siempre.
func TestGeneralStats_AgotadoCuentaComoBajoStock(t *testing.T) {
	products := []repository.ProductRow{product("p1", "A", "10", "0", 0, 2, "")}

	stats := analytics.GeneralStats(products)
	assert.Equal(t, 1, stats.LowStockProducts)
	assert.Equal(t, 1, stats.OutOfStockProducts)
	assert.True(t, stats.CriticalStockPct.Equal(dec("100")))
}

func TestGeneralStats_SinProductos(t *testing.T) {
	stats := analytics.GeneralStats(nil)
	assert.Equal(t, 0, stats.TotalProducts)
	assert.True(t, stats.CriticalStockPct.IsZero())
	assert.True(t, stats.StockValue.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Predicción de reorden
// ──────────────────────────────────────────────────────────────────────────────

// Ejemplo de referencia: stock 20, mínimo 10, 30 salidas en 30 días →
// consumo 1/día → 10 días hasta el umbral: dentro del horizonte de 15.
func TestReorderPredictions_EjemploDeReferencia(t *testing.T) {
	now := time.Now()
	products := []repository.ProductRow{product("p1", "Harina", "5", "0", 20, 10, "Abarrotes")}
	movements := []repository.MovementRow{exit("p1", "Harina", 30, now)}

	preds := analytics.ReorderPredictions(products, movements, 30)
	require.Len(t, preds, 1)
	assert.True(t, preds[0].AvgDailyUsage.Equal(dec("1")))
	assert.True(t, preds[0].DaysUntilReorder.Equal(dec("10")))
}

func TestReorderPredictions_Filtros(t *testing.T) {
	now := time.Now()
	products := []repository.ProductRow{
		product("sin-salidas", "Quieto", "5", "0", 20, 10, ""),   // centinela 999, fuera
		product("ya-debajo", "Urgido", "5", "0", 8, 10, ""),      // días <= 0, fuera
		product("lejano", "Tranquilo", "5", "0", 500, 10, ""),    // días >= 15, fuera
		product("proximo", "Próximo", "5", "0", 15, 10, ""),      // 5 días, dentro
	}
	movements := []repository.MovementRow{
		exit("ya-debajo", "Urgido", 30, now),
		exit("lejano", "Tranquilo", 30, now),
		exit("proximo", "Próximo", 30, now),
	}

	preds := analytics.ReorderPredictions(products, movements, 30)
	require.Len(t, preds, 1)
	assert.Equal(t, "proximo", preds[0].ProductID)
	assert.True(t, preds[0].DaysUntilReorder.Equal(dec("5")))
}

func TestReorderPredictions_OrdenaPorUrgenciaYLimitaA5(t *testing.T) {
	now := time.Now()
	var products []repository.ProductRow
	var movements []repository.MovementRow
	// stocks 11..17 con mínimo 10 y consumo 1/día → días 1..7
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i, id := range ids {
		products = append(products, product(id, id, "1", "0", int64(11+i), 10, ""))
		movements = append(movements, exit(id, id, 30, now))
	}

	preds := analytics.ReorderPredictions(products, movements, 30)
	require.Len(t, preds, 5)
	assert.Equal(t, "a", preds[0].ProductID, "el más urgente primero")
	assert.True(t, preds[0].DaysUntilReorder.Equal(dec("1")))
	assert.Equal(t, "e", preds[4].ProductID)
}

// ──────────────────────────────────────────────────────────────────────────────
// ROI
// ──────────────────────────────────────────────────────────────────────────────

// Ejemplo de referencia: 10 salidas, precio 20, costo 10 → valor 200, costo 100 → ROI 100%.
func TestROIStats_EjemploDeReferencia(t *testing.T) {
	now := time.Now()
	products := []repository.ProductRow{product("p1", "Azúcar", "20", "10", 50, 5, "")}
	movements := []repository.MovementRow{exit("p1", "Azúcar", 10, now)}

	stats := analytics.ROIStats(products, movements)
	require.Len(t, stats.TopProducts, 1)
	assert.True(t, stats.TopProducts[0].ROIPct.Equal(dec("100")))
	assert.True(t, stats.TopProducts[0].TotalExitValue.Equal(dec("200")))
	assert.True(t, stats.AvgROI.Equal(dec("100")))
}

// Sin costo registrado se asume el 50% del precio → ROI siempre 100%.
func TestROIStats_CostoPorDefectoMitadDelPrecio(t *testing.T) {
	now := time.Now()
	products := []repository.ProductRow{product("p1", "Sal", "8", "0", 50, 5, "")}
	movements := []repository.MovementRow{exit("p1", "Sal", 4, now)}

	stats := analytics.ROIStats(products, movements)
	require.Len(t, stats.TopProducts, 1)
	assert.True(t, stats.TopProducts[0].ROIPct.Equal(dec("100")))
}

func TestROIStats_ProductoGratisNoDivideEntreCero(t *testing.T) {
	now := time.Now()
	products := []repository.ProductRow{product("p1", "Muestra", "0", "0", 50, 5, "")}
	movements := []repository.MovementRow{exit("p1", "Muestra", 4, now)}

	stats := analytics.ROIStats(products, movements)
	require.Len(t, stats.TopProducts, 1)
	assert.True(t, stats.TopProducts[0].ROIPct.IsZero(), "costo cero → ROI 0, no división entre cero")
}

func TestROIStats_PromedioSimpleYTop5(t *testing.T) {
	now := time.Now()
	products := []repository.ProductRow{
		product("p1", "A", "20", "10", 50, 5, ""), // ROI 100
		product("p2", "B", "15", "10", 50, 5, ""), // ROI 50
		product("p3", "C", "30", "0", 50, 5, ""),  // sin salidas, fuera del promedio
	}
	movements := []repository.MovementRow{
		exit("p1", "A", 10, now),
		exit("p2", "B", 2, now), // el promedio es simple, no ponderado por volumen
	}

	stats := analytics.ROIStats(products, movements)
	require.Len(t, stats.TopProducts, 2)
	assert.Equal(t, "p1", stats.TopProducts[0].ProductID, "mayor ROI primero")
	assert.True(t, stats.AvgROI.Equal(dec("75")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventanas, top movidos y valoración por categoría
// ──────────────────────────────────────────────────────────────────────────────

func TestSummarizeWindowYTrends(t *testing.T) {
	now := time.Now()
	current := []repository.MovementRow{
		entry("p1", "A", 100, now),
		exit("p1", "A", 30, now),
		exit("p2", "B", 20, now),
	}
	previous := []repository.MovementRow{
		entry("p1", "A", 50, now.AddDate(0, 0, -40)),
		exit("p1", "A", 50, now.AddDate(0, 0, -40)),
	}

	cw := analytics.SummarizeWindow(current)
	pw := analytics.SummarizeWindow(previous)
	assert.Equal(t, 3, cw.Total)
	assert.Equal(t, int64(100), cw.EntriesQty)
	assert.Equal(t, int64(50), cw.ExitsQty)

	trends := analytics.Trends(cw, pw)
	assert.True(t, trends.MovementsChangePct.Equal(dec("50")), "3 vs 2 movimientos")
	assert.True(t, trends.EntriesChangePct.Equal(dec("100")), "100 vs 50 unidades")
	assert.True(t, trends.ExitsChangePct.IsZero(), "50 vs 50 unidades")
}

func TestTopMoved(t *testing.T) {
	now := time.Now()
	movements := []repository.MovementRow{
		entry("p1", "A", 10, now),
		exit("p1", "A", 5, now),
		entry("p2", "B", 100, now),
		exit("p3", "C", 1, now),
	}

	top := analytics.TopMoved(movements)
	require.Len(t, top, 3)
	assert.Equal(t, "p2", top[0].ProductID)
	assert.Equal(t, int64(100), top[0].TotalQty)
	assert.Equal(t, "p1", top[1].ProductID)
	assert.Equal(t, int64(15), top[1].TotalQty, "entradas y salidas suman en valor absoluto")
}

func TestCategoryValuation(t *testing.T) {
	products := []repository.ProductRow{
		product("p1", "A", "10", "0", 10, 0, "Bebidas"),
		product("p2", "B", "5", "0", 20, 0, "Bebidas"),
		product("p3", "C", "100", "0", 1, 0, "Sin categoría"),
	}

	cats := analytics.CategoryValuation(products)
	require.Len(t, cats, 2)
	assert.Equal(t, "Bebidas", cats[0].CategoryName, "mayor valoración primero")
	assert.True(t, cats[0].StockValue.Equal(dec("200")))
	assert.Equal(t, 2, cats[0].Products)
	assert.Equal(t, int64(30), cats[0].TotalStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Caso de uso completo
// ──────────────────────────────────────────────────────────────────────────────

type stubAnalyticsRepo struct {
	products  []repository.ProductRow
	movements []repository.MovementRow
}

func (r *stubAnalyticsRepo) ListProducts(ctx context.Context, userID string) ([]repository.ProductRow, error) {
	return r.products, nil
}

func (r *stubAnalyticsRepo) ListMovements(ctx context.Context, userID string, from, to time.Time) ([]repository.MovementRow, error) {
	var out []repository.MovementRow
	for _, m := range r.movements {
		if !m.Date.Before(from) && m.Date.Before(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func TestComputeStatisticsAt_SeparaVentanas(t *testing.T) {
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubAnalyticsRepo{
		products: []repository.ProductRow{product("p1", "A", "10", "5", 30, 5, "Bebidas")},
		movements: []repository.MovementRow{
			exit("p1", "A", 10, asOf.AddDate(0, 0, -5)),   // ventana actual
			exit("p1", "A", 20, asOf.AddDate(0, 0, -45)),  // ventana anterior
			exit("p1", "A", 99, asOf.AddDate(0, 0, -70)),  // fuera de rango
		},
	}
	uc := analytics.NewStatisticsUseCase(repo, nil, logger.New(logger.Config{Env: "test", Level: "error"}))

	report, err := uc.ComputeStatisticsAt(context.Background(), "u1", asOf)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Movements.Total)
	assert.Equal(t, int64(10), report.Movements.ExitsQty)
	assert.Equal(t, 1, report.PreviousMovements.Total)
	assert.Equal(t, int64(20), report.PreviousMovements.ExitsQty)
	assert.True(t, report.Trends.ExitsChangePct.Equal(dec("-50")), "10 vs 20 unidades salidas")
	assert.Equal(t, asOf, report.GeneratedAt)
}
