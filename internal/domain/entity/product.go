package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de un usuario.
// Quantity solo se modifica a través del Ledger Writer: cada cambio deja
// un StockMovement correspondiente. Price es el precio de venta vigente.
type Product struct {
	ID                string
	UserID            string
	SKU               string // único por usuario
	Name              string
	Description       string
	CategoryID        string // vacío si no tiene categoría
	SupplierID        string // vacío si no tiene proveedor
	Price             decimal.Decimal
	Quantity          int64
	LowStockThreshold int64
	LastUpdated       time.Time
}
