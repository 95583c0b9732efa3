package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSale registra una venta. Inmutable una vez creada.
// SalePrice es una foto del precio del producto al momento de la venta,
// no el precio vigente.
type ProductSale struct {
	ID        string
	ProductID string
	UserID    string
	Quantity  int64
	SalePrice decimal.Decimal
	SaleDate  time.Time
}
