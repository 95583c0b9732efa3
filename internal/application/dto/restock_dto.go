package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItem una orden dentro de un lote de creación.
type PurchaseOrderItem struct {
	ProductID       string `json:"product_id"`
	SupplierID      string `json:"supplier_id"`
	QuantityOrdered int64  `json:"quantity_ordered"`
	Notes           string `json:"notes"`
	NotifyByEmail   bool   `json:"notify_by_email"`
}

// PurchaseOrderBatchRequest lote de órdenes de compra (todo o nada).
type PurchaseOrderBatchRequest struct {
	Orders []PurchaseOrderItem `json:"orders"`
}

// PurchaseOrderPatch patch explícito de una orden: cada campo actualizable
// enumerado, nil = sin cambio.
type PurchaseOrderPatch struct {
	Status          *string `json:"status"`
	QuantityOrdered *int64  `json:"quantity_ordered"`
	Notes           *string `json:"notes"`
}

// PurchaseOrderResponse representación de salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	SupplierID      string    `json:"supplier_id,omitempty"`
	QuantityOrdered int64     `json:"quantity_ordered"`
	Status          string    `json:"status"`
	OrderDate       time.Time `json:"order_date"`
	Notes           string    `json:"notes,omitempty"`
	NotifyByEmail   bool      `json:"notify_by_email"`
	GroupID         string    `json:"group_id,omitempty"`
}

// RestockSummary métricas para el tablero de reposición.
type RestockSummary struct {
	PendingOrders     int64           `json:"pending_orders"`
	LowStockItems     int64           `json:"low_stock_items"`
	OutOfStockItems   int64           `json:"out_of_stock_items"`
	TotalPendingValue decimal.Decimal `json:"total_pending_value"`
}
