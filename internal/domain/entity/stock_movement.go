package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeSale       = "sale"       // venta
	MovementTypeRestock    = "restock"    // reposición por orden de compra
	MovementTypeAdjustment = "adjustment" // ajuste manual
)

// Tipos de referencia de un movimiento.
const (
	ReferenceTypeSale          = "sale"
	ReferenceTypePurchaseOrder = "purchase_order"
)

// StockMovement es un registro inmutable del libro de movimientos: la pista
// de auditoría autoritativa de cada cambio de cantidad de un producto.
// Invariante: QuantityAfter == QuantityBefore + QuantityChange, y
// QuantityBefore es la cantidad del producto al momento de escribir.
type StockMovement struct {
	ID              string
	ProductID       string
	UserID          string
	MovementType    string
	QuantityChange  int64 // delta con signo: negativo en ventas
	QuantityBefore  int64
	QuantityAfter   int64
	ReferenceID     string // vacío si no referencia otra entidad
	ReferenceType   string // sale | purchase_order
	Notes           string
	TransactionDate *time.Time // fecha de negocio, puede ser retroactiva
	CreatedAt       time.Time  // asignada por el servidor, independiente de TransactionDate
}
