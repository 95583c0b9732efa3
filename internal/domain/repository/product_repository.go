package repository

import (
	"time"

	"github.com/jhoicas/mistock-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// Los métodos *ByOwner filtran siempre por usuario: un producto ajeno se
// comporta como inexistente (nil, nil).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByOwner(id, userID string) (*entity.Product, error)
	// GetByOwnerForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de la
	// transacción actual. Es el paso previo obligatorio a cualquier escritura
	// de cantidad: evita lost updates entre ventas concurrentes.
	GetByOwnerForUpdate(id, userID string) (*entity.Product, error)
	GetBySKU(userID, sku string) (*entity.Product, error)
	ListByOwner(userID string, limit, offset int) ([]*entity.Product, error)
	// Update actualiza los datos del producto. No toca Quantity: eso es
	// exclusivo de UpdateQuantity vía el Ledger Writer.
	Update(product *entity.Product) error
	UpdateQuantity(productID string, quantity int64, at time.Time) error
	Delete(id string) error
	CountByCategory(categoryID string) (int64, error)
	CountBySupplier(supplierID string) (int64, error)
	// LowStockCount cuenta productos con 0 < quantity <= low_stock_threshold.
	LowStockCount(userID string) (int64, error)
	OutOfStockCount(userID string) (int64, error)
}
