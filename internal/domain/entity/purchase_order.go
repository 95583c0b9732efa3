package entity

import "time"

// Estados de una orden de compra. pending es el estado inicial;
// completed y cancelled son terminales (no hay transición de salida).
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus indica si s es un estado conocido.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusCompleted || s == OrderStatusCancelled
}

// TerminalOrderStatus indica si s es un estado terminal.
func TerminalOrderStatus(s string) bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// PurchaseOrder es una orden de reposición de stock. GroupID agrupa las
// órdenes creadas en un mismo lote para transiciones masivas y para enviar
// una sola notificación de resumen.
type PurchaseOrder struct {
	ID              string
	UserID          string
	ProductID       string
	SupplierID      string // vacío si no tiene proveedor
	QuantityOrdered int64
	Status          string
	OrderDate       time.Time
	Notes           string
	NotifyByEmail   bool
	GroupID         string // vacío en órdenes creadas individualmente
}
