package repository

import "github.com/jhoicas/mistock-api/internal/domain/entity"

// ProductSaleRepository puerto de persistencia para ventas (inmutables).
type ProductSaleRepository interface {
	Create(sale *entity.ProductSale) error
	ListByOwner(userID string, limit, offset int) ([]*entity.ProductSale, error)
	ListByProduct(productID, userID string) ([]*entity.ProductSale, error)
	CountByProduct(productID string) (int64, error)
}
