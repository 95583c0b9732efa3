package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CategorySalesResult resultado crudo de la consulta de ventas por categoría.
// Lo produce la DB; el use case lo convierte en DTO.
type CategorySalesResult struct {
	CategoryID string
	Category   string
	Revenue    decimal.Decimal // Σ sale_price * quantity
	SalesUnits int64
}

// CategoryInventoryResult inventario actual por categoría (cantidades vivas
// de products, no del libro de movimientos).
type CategoryInventoryResult struct {
	CategoryID string
	Category   string
	Inventory  int64
}

// AnalyticsRepository define las consultas de lectura para analítica.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetCategorySales devuelve ingresos y unidades vendidas agrupados por
	// categoría, solo para categorías con al menos una venta.
	GetCategorySales(ctx context.Context, userID string) ([]CategorySalesResult, error)

	// GetCategoryInventory devuelve TODAS las categorías del usuario con su
	// inventario actual (0 si no tienen productos).
	GetCategoryInventory(ctx context.Context, userID string) ([]CategoryInventoryResult, error)

	// GetInventorySnapshot devuelve valor total y cantidad total de ítems al
	// corte dado: por producto, el quantity_after del movimiento más reciente
	// con fecha <= cutoff; si el producto no tiene movimientos hasta el corte,
	// su cantidad viva actual (aproximación asumida para productos nuevos).
	GetInventorySnapshot(ctx context.Context, userID string, cutoff time.Time) (totalValue decimal.Decimal, totalItems int64, err error)

	// GetUnitsSoldBetween suma las unidades vendidas con sale_date en [from, to].
	GetUnitsSoldBetween(ctx context.Context, userID string, from, to time.Time) (int64, error)

	// GetSalesTotals devuelve ingreso total y unidades totales vendidas.
	GetSalesTotals(ctx context.Context, userID string) (revenue decimal.Decimal, units int64, err error)

	// GetTopCategory devuelve el nombre de la categoría con más unidades
	// vendidas, o "" si no hay ventas. Empates: orden de la consulta.
	GetTopCategory(ctx context.Context, userID string) (string, error)
}
