package dto

import "github.com/shopspring/decimal"

// CategoryRevenueDTO ingresos, unidades vendidas e inventario por categoría.
// Las categorías sin ventas aparecen con Revenue 0 pero inventario correcto.
type CategoryRevenueDTO struct {
	CategoryID string          `json:"category_id"`
	Category   string          `json:"category"`
	Revenue    decimal.Decimal `json:"revenue"`
	SalesUnits int64           `json:"salesUnits"`
	Inventory  int64           `json:"inventory"`
}

// InventoryTrendPointDTO foto mensual del inventario.
// TurnoverRate = round(UnitsSold / TotalItems * 100), 0 si no hay ítems.
type InventoryTrendPointDTO struct {
	YearMonth    string          `json:"yearMonth"` // formato YYYY-MM
	TotalValue   decimal.Decimal `json:"totalValue"`
	TotalItems   int64           `json:"totalItems"`
	UnitsSold    int64           `json:"unitsSold"`
	TurnoverRate int64           `json:"turnoverRate"`
}
