package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/mistock-api/internal/domain/entity"
	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del puerto StockMovementRepository sobre
// PostgreSQL. El libro es append-only: no hay UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del libro de movimientos.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, user_id, movement_type, quantity_change, quantity_before, quantity_after, reference_id, reference_type, notes, transaction_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.UserID, movement.MovementType,
		movement.QuantityChange, movement.QuantityBefore, movement.QuantityAfter,
		movement.ReferenceID, movement.ReferenceType, movement.Notes,
		movement.TransactionDate, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista los movimientos de un producto del usuario, el más
// reciente primero.
func (r *StockMovementRepo) ListByProduct(productID, userID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, product_id, user_id, movement_type, quantity_change, quantity_before, quantity_after,
			COALESCE(reference_id, ''), COALESCE(reference_type, ''), notes, transaction_date, created_at
		FROM stock_movements
		WHERE product_id = $1 AND user_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, productID, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		err := rows.Scan(
			&m.ID, &m.ProductID, &m.UserID, &m.MovementType, &m.QuantityChange,
			&m.QuantityBefore, &m.QuantityAfter, &m.ReferenceID, &m.ReferenceType,
			&m.Notes, &m.TransactionDate, &m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// CountByProduct cuenta los movimientos de un producto (sin filtrar por
// usuario: se usa para decidir si el producto tiene historial).
func (r *StockMovementRepo) CountByProduct(productID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_movements WHERE product_id = $1`, productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return count, nil
}
