package repository

import "github.com/jhoicas/mistock-api/internal/domain/entity"

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByOwner(id, userID string) (*entity.Supplier, error)
	GetByName(userID, name string) (*entity.Supplier, error)
	ListByOwner(userID string) ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id string) error
}
