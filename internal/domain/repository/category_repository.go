package repository

import "github.com/jhoicas/mistock-api/internal/domain/entity"

// CategoryRepository puerto de persistencia para categorías de productos.
type CategoryRepository interface {
	Create(category *entity.ProductCategory) error
	GetByOwner(id, userID string) (*entity.ProductCategory, error)
	GetByName(userID, name string) (*entity.ProductCategory, error)
	ListByOwner(userID string) ([]*entity.ProductCategory, error)
	Update(category *entity.ProductCategory) error
	Delete(id string) error
}
