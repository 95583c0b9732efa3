package ledger

import (
	"context"

	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: o se aplican todos los pasos (venta + movimiento + cantidad,
// completado de orden + reposición) o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.ProductSaleRepository,
		orderRepo repository.PurchaseOrderRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}
