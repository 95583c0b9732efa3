package repository

import "github.com/jhoicas/mistock-api/internal/domain/entity"

// StockMovementRepository puerto del libro de movimientos (append-only:
// no hay Update ni Delete).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID, userID string, limit, offset int) ([]*entity.StockMovement, error)
	CountByProduct(productID string) (int64, error)
}
