// Package analytics implementa el motor de estadísticas de inventario como un
// pipeline de funciones puras: el repositorio entrega filas crudas y todo el
// cálculo (tendencias, valoración, predicción de reorden, ROI) ocurre aquí,
// sin tocar la base de datos.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/stockline/stockline-api/internal/application/dto"
	"github.com/stockline/stockline-api/internal/domain/entity"
	"github.com/stockline/stockline-api/internal/domain/repository"
)

// reorderHorizonDays ventana de inclusión para predicciones de reorden.
const reorderHorizonDays = 15

// noUsageSentinel días asignados cuando un producto no registra salidas.
const noUsageSentinel = 999

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// GeneralStats calcula las métricas globales del inventario.
// "Bajo stock" es stock <= min_stock (los agotados también cuentan: 0 <= min
// siempre); "agotado" es stock cero, como contador adicional.
func GeneralStats(products []repository.ProductRow) dto.GeneralStatsDTO {
	stats := dto.GeneralStatsDTO{TotalProducts: len(products), StockValue: decimal.Zero, CriticalStockPct: decimal.Zero}
	var totalStock int64
	for _, p := range products {
		totalStock += p.Stock
		stats.StockValue = stats.StockValue.Add(p.Price.Mul(decimal.NewFromInt(p.Stock)))
		if p.Stock <= p.MinStock {
			stats.LowStockProducts++
		}
		if p.Stock == 0 {
			stats.OutOfStockProducts++
		}
	}
	stats.TotalStock = totalStock
	if len(products) > 0 {
		critical := decimal.NewFromInt(int64(stats.LowStockProducts))
		stats.CriticalStockPct = critical.Div(decimal.NewFromInt(int64(len(products)))).Mul(hundred).Round(2)
	}
	stats.StockValue = stats.StockValue.Round(2)
	return stats
}

// SummarizeWindow agrega conteos y cantidades de una ventana de movimientos.
func SummarizeWindow(movements []repository.MovementRow) dto.MovementWindowDTO {
	var w dto.MovementWindowDTO
	for _, m := range movements {
		w.Total++
		if m.Type == entity.MovementTypeEntry {
			w.EntriesCount++
			w.EntriesQty += m.Quantity
		} else {
			w.ExitsCount++
			w.ExitsQty += m.Quantity
		}
	}
	return w
}

// CalculateChange variación porcentual entre dos valores de ventana:
// ambos cero → 0; actual con previo cero → 100; resto → (actual−previo)/previo × 100.
func CalculateChange(current, previous int64) decimal.Decimal {
	if previous == 0 {
		if current == 0 {
			return decimal.Zero
		}
		return hundred
	}
	c := decimal.NewFromInt(current)
	p := decimal.NewFromInt(previous)
	return c.Sub(p).Div(p).Mul(hundred).Round(2)
}

// Trends compara la ventana actual contra la anterior.
func Trends(current, previous dto.MovementWindowDTO) dto.TrendsDTO {
	return dto.TrendsDTO{
		MovementsChangePct: CalculateChange(int64(current.Total), int64(previous.Total)),
		EntriesChangePct:   CalculateChange(current.EntriesQty, previous.EntriesQty),
		ExitsChangePct:     CalculateChange(current.ExitsQty, previous.ExitsQty),
	}
}

// TopMoved los 5 productos con más unidades movidas (entradas + salidas) en la ventana.
func TopMoved(movements []repository.MovementRow) []dto.TopMovedProductDTO {
	byProduct := make(map[string]*dto.TopMovedProductDTO)
	for _, m := range movements {
		agg, ok := byProduct[m.ProductID]
		if !ok {
			agg = &dto.TopMovedProductDTO{ProductID: m.ProductID, ProductName: m.ProductName}
			byProduct[m.ProductID] = agg
		}
		agg.TotalQty += m.Quantity
		if m.Type == entity.MovementTypeEntry {
			agg.EntriesQty += m.Quantity
		} else {
			agg.ExitsQty += m.Quantity
		}
	}
	out := make([]dto.TopMovedProductDTO, 0, len(byProduct))
	for _, agg := range byProduct {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalQty == out[j].TotalQty {
			return out[i].ProductName < out[j].ProductName
		}
		return out[i].TotalQty > out[j].TotalQty
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// CategoryValuation valoración de stock agrupada por categoría.
// Productos sin categoría se agrupan bajo el nombre resuelto por el repositorio.
func CategoryValuation(products []repository.ProductRow) []dto.CategoryValuationDTO {
	byCategory := make(map[string]*dto.CategoryValuationDTO)
	for _, p := range products {
		agg, ok := byCategory[p.CategoryName]
		if !ok {
			agg = &dto.CategoryValuationDTO{
				CategoryID:   p.CategoryID,
				CategoryName: p.CategoryName,
				StockValue:   decimal.Zero,
			}
			byCategory[p.CategoryName] = agg
		}
		agg.Products++
		agg.TotalStock += p.Stock
		agg.StockValue = agg.StockValue.Add(p.Price.Mul(decimal.NewFromInt(p.Stock)))
	}
	out := make([]dto.CategoryValuationDTO, 0, len(byCategory))
	for _, agg := range byCategory {
		agg.StockValue = agg.StockValue.Round(2)
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StockValue.GreaterThan(out[j].StockValue)
	})
	return out
}

// ReorderPredictions estima los días hasta alcanzar el umbral de reorden a
// partir del consumo promedio diario (salidas de la ventana / días de ventana).
// Devuelve hasta 5 productos con 0 < días < 15, los más urgentes primero.
// Sin salidas el producto recibe un centinela de 999 días y queda fuera.
func ReorderPredictions(products []repository.ProductRow, movements []repository.MovementRow, windowDays int64) []dto.ReorderPredictionDTO {
	exitsByProduct := make(map[string]int64)
	for _, m := range movements {
		if m.Type == entity.MovementTypeExit {
			exitsByProduct[m.ProductID] += m.Quantity
		}
	}

	days := decimal.NewFromInt(windowDays)
	var out []dto.ReorderPredictionDTO
	for _, p := range products {
		usage := decimal.NewFromInt(exitsByProduct[p.ProductID]).Div(days)
		until := decimal.NewFromInt(noUsageSentinel)
		if usage.GreaterThan(decimal.Zero) {
			until = decimal.NewFromInt(p.Stock - p.MinStock).Div(usage)
		}
		if until.GreaterThan(decimal.Zero) && until.LessThan(decimal.NewFromInt(reorderHorizonDays)) {
			out = append(out, dto.ReorderPredictionDTO{
				ProductID:        p.ProductID,
				ProductName:      p.Name,
				CurrentStock:     p.Stock,
				MinStock:         p.MinStock,
				AvgDailyUsage:    usage.Round(2),
				DaysUntilReorder: until.Round(2),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DaysUntilReorder.LessThan(out[j].DaysUntilReorder)
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// ROIStats calcula el retorno sobre el costo de las unidades salidas en la
// ventana, por producto. Cuando el producto no tiene costo registrado se asume
// el 50% del precio. Promedio simple sobre los productos con salidas; top 5
// por ROI descendente.
func ROIStats(products []repository.ProductRow, movements []repository.MovementRow) dto.ROIStatsDTO {
	exitsByProduct := make(map[string]int64)
	for _, m := range movements {
		if m.Type == entity.MovementTypeExit {
			exitsByProduct[m.ProductID] += m.Quantity
		}
	}

	var rois []dto.ProductROIDTO
	sum := decimal.Zero
	for _, p := range products {
		exits := exitsByProduct[p.ProductID]
		if exits == 0 {
			continue
		}
		cost := p.Cost
		if !cost.GreaterThan(decimal.Zero) {
			cost = p.Price.Mul(half)
		}
		qty := decimal.NewFromInt(exits)
		value := qty.Mul(p.Price)
		totalCost := qty.Mul(cost)

		roi := decimal.Zero
		if totalCost.GreaterThan(decimal.Zero) {
			roi = value.Sub(totalCost).Div(totalCost).Mul(hundred)
		}
		sum = sum.Add(roi)
		rois = append(rois, dto.ProductROIDTO{
			ProductID:      p.ProductID,
			ProductName:    p.Name,
			TotalExits:     exits,
			TotalExitValue: value.Round(2),
			ROIPct:         roi.Round(2),
		})
	}

	stats := dto.ROIStatsDTO{AvgROI: decimal.Zero, TopProducts: []dto.ProductROIDTO{}}
	if len(rois) > 0 {
		stats.AvgROI = sum.Div(decimal.NewFromInt(int64(len(rois)))).Round(2)
	}
	sort.Slice(rois, func(i, j int) bool {
		return rois[i].ROIPct.GreaterThan(rois[j].ROIPct)
	})
	if len(rois) > 5 {
		rois = rois[:5]
	}
	stats.TopProducts = append(stats.TopProducts, rois...)
	return stats
}
