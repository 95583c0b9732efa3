package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mistock-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(order *entity.PurchaseOrder) error
	GetByOwner(id, userID string) (*entity.PurchaseOrder, error)
	// GetByOwnerForUpdate bloquea la fila de la orden dentro de la transacción
	// actual, para que dos completados concurrentes no apliquen el restock dos veces.
	GetByOwnerForUpdate(id, userID string) (*entity.PurchaseOrder, error)
	ListByOwner(userID, status string, limit, offset int) ([]*entity.PurchaseOrder, error)
	ListByGroupForUpdate(groupID, userID string) ([]*entity.PurchaseOrder, error)
	Update(order *entity.PurchaseOrder) error
	Delete(id string) error
	// PendingSummary devuelve la cantidad de órdenes pendientes y su valor
	// total al precio ACTUAL del producto (no una foto al crear la orden).
	PendingSummary(userID string) (count int64, totalValue decimal.Decimal, err error)
}
