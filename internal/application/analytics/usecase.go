// Package analytics contiene los casos de uso read-only de analítica:
// ingresos por categoría, tendencia mensual de inventario y resumen de
// ventas. Todo está delimitado por el usuario dueño.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/mistock-api/internal/application/dto"
	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

// Límites del parámetro months de la tendencia de inventario.
const (
	trendMinMonths     = 1
	trendMaxMonths     = 24
	trendDefaultMonths = 6
)

// AnalyticsUseCase agregaciones sobre el libro de movimientos y el historial
// de ventas. No accede a tablas directamente; delega en AnalyticsRepository.
type AnalyticsUseCase struct {
	repo repository.AnalyticsRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(repo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{repo: repo}
}

// CategoriesRevenue devuelve ingresos (Σ sale_price × cantidad), unidades
// vendidas e inventario actual por categoría. Las categorías sin ventas
// aparecen igualmente, con ingresos 0 y su inventario correcto.
func (uc *AnalyticsUseCase) CategoriesRevenue(ctx context.Context, userID string) ([]dto.CategoryRevenueDTO, error) {
	salesRows, err := uc.repo.GetCategorySales(ctx, userID)
	if err != nil {
		return nil, err
	}
	invRows, err := uc.repo.GetCategoryInventory(ctx, userID)
	if err != nil {
		return nil, err
	}

	inventory := make(map[string]int64, len(invRows))
	for _, r := range invRows {
		inventory[r.CategoryID] = r.Inventory
	}

	out := make([]dto.CategoryRevenueDTO, 0, len(invRows))
	seen := make(map[string]bool, len(salesRows))
	for _, r := range salesRows {
		seen[r.CategoryID] = true
		out = append(out, dto.CategoryRevenueDTO{
			CategoryID: r.CategoryID,
			Category:   r.Category,
			Revenue:    r.Revenue,
			SalesUnits: r.SalesUnits,
			Inventory:  inventory[r.CategoryID],
		})
	}
	// Categorías sin ventas: ingresos cero, inventario vivo
	for _, r := range invRows {
		if seen[r.CategoryID] {
			continue
		}
		out = append(out, dto.CategoryRevenueDTO{
			CategoryID: r.CategoryID,
			Category:   r.Category,
			Revenue:    decimal.Zero,
			SalesUnits: 0,
			Inventory:  r.Inventory,
		})
	}
	return out, nil
}

// InventoryTrend devuelve una foto por cada uno de los últimos months meses
// calendario (el más antiguo primero). months se acota a [1, 24]; 0 usa el
// valor por defecto (6).
//
// Por mes: valor e ítems al cierre usando el quantity_after del movimiento
// más reciente de cada producto hasta el corte (o la cantidad viva si el
// producto no tiene movimientos: aproximación asumida para productos
// creados después del corte), unidades vendidas estrictamente dentro del
// mes, y rotación = round(unidades / ítems × 100) si hay ítems, si no 0.
func (uc *AnalyticsUseCase) InventoryTrend(ctx context.Context, userID string, months int) ([]dto.InventoryTrendPointDTO, error) {
	if months == 0 {
		months = trendDefaultMonths
	}
	if months < trendMinMonths {
		months = trendMinMonths
	}
	if months > trendMaxMonths {
		months = trendMaxMonths
	}

	now := time.Now().UTC()
	out := make([]dto.InventoryTrendPointDTO, 0, months)

	for i := months - 1; i >= 0; i-- {
		year, month := now.Year(), int(now.Month())-i
		for month <= 0 {
			month += 12
			year--
		}
		monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

		totalValue, totalItems, err := uc.repo.GetInventorySnapshot(ctx, userID, monthEnd)
		if err != nil {
			return nil, err
		}
		unitsSold, err := uc.repo.GetUnitsSoldBetween(ctx, userID, monthStart, monthEnd)
		if err != nil {
			return nil, err
		}

		var turnover int64
		if totalItems > 0 {
			turnover = int64(math.Round(float64(unitsSold) / float64(totalItems) * 100))
		}

		out = append(out, dto.InventoryTrendPointDTO{
			YearMonth:    fmt.Sprintf("%d-%02d", year, month),
			TotalValue:   totalValue.Round(2),
			TotalItems:   totalItems,
			UnitsSold:    unitsSold,
			TurnoverRate: turnover,
		})
	}
	return out, nil
}

// SalesSummary devuelve ingreso total, unidades totales y la categoría con
// más unidades vendidas (empates resueltos por el orden de la consulta).
func (uc *AnalyticsUseCase) SalesSummary(ctx context.Context, userID string) (*dto.SalesSummaryDTO, error) {
	revenue, units, err := uc.repo.GetSalesTotals(ctx, userID)
	if err != nil {
		return nil, err
	}
	topCategory, err := uc.repo.GetTopCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.SalesSummaryDTO{
		TotalRevenue: revenue.Round(2),
		TotalUnits:   units,
		TopCategory:  topCategory,
	}, nil
}
