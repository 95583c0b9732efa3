package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest datos para registrar una venta individual.
// SaleDate nil = ahora; puede ser retroactiva para importaciones.
type RecordSaleRequest struct {
	Quantity int64      `json:"quantity"`
	SaleDate *time.Time `json:"sale_date"`
}

// SaleResponse representación de salida de una venta.
type SaleResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	SalePrice decimal.Decimal `json:"sale_price"`
	SaleDate  time.Time       `json:"sale_date"`
}

// ImportRowError error de una fila del CSV, con su número de línea
// (1-based, el encabezado cuenta como línea 1).
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// SalesImportResult resultado de una importación masiva de ventas.
// Las filas con error no abortan el lote: se acumulan aquí.
type SalesImportResult struct {
	Message      string           `json:"message"`
	SalesCreated int              `json:"sales_created"`
	Errors       []ImportRowError `json:"errors"`
	TotalRows    int              `json:"total_rows_processed"`
}

// SalesSummaryDTO resumen global de ventas del usuario.
type SalesSummaryDTO struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalUnits   int64           `json:"total_units"`
	TopCategory  string          `json:"top_category,omitempty"`
}
