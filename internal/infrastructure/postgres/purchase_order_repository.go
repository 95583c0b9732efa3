package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mistock-api/internal/domain/entity"
	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre
// PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de órdenes de compra.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, user_id, product_id, COALESCE(supplier_id, ''),
	quantity_ordered, status, order_date, notes, notify_by_email, COALESCE(group_id, '')`

// Create persiste una orden de compra.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, user_id, product_id, supplier_id, quantity_ordered, status, order_date, notes, notify_by_email, group_id)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, NULLIF($10, ''))`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.UserID, order.ProductID, order.SupplierID,
		order.QuantityOrdered, order.Status, order.OrderDate, order.Notes,
		order.NotifyByEmail, order.GroupID,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByOwner obtiene una orden por ID y dueño. (nil, nil) si no existe o es ajena.
func (r *PurchaseOrderRepo) GetByOwner(id, userID string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 AND user_id = $2`
	return r.scanOne(query, id, userID)
}

// GetByOwnerForUpdate igual que GetByOwner pero bloquea la fila, para que
// dos transiciones concurrentes de la misma orden se serialicen.
func (r *PurchaseOrderRepo) GetByOwnerForUpdate(id, userID string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 AND user_id = $2 FOR UPDATE`
	return r.scanOne(query, id, userID)
}

// ListByOwner lista las órdenes del usuario, opcionalmente filtradas por
// estado, la más reciente primero.
func (r *PurchaseOrderRepo) ListByOwner(userID, status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + `
		FROM purchase_orders
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY order_date DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, userID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

// ListByGroupForUpdate lista y bloquea todas las órdenes de un lote del
// usuario, en orden estable por fecha de creación.
func (r *PurchaseOrderRepo) ListByGroupForUpdate(groupID, userID string) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + `
		FROM purchase_orders
		WHERE group_id = $1 AND user_id = $2
		ORDER BY order_date, id FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders by group: %w", err)
	}
	defer rows.Close()
	return scanOrders(rows)
}

// Update actualiza una orden existente.
func (r *PurchaseOrderRepo) Update(order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders SET quantity_ordered = $2, status = $3, notes = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.QuantityOrdered, order.Status, order.Notes,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	return nil
}

// Delete elimina una orden.
func (r *PurchaseOrderRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	return nil
}

// PendingSummary devuelve cuántas órdenes pendientes tiene el usuario y su
// valor total al precio actual del producto.
func (r *PurchaseOrderRepo) PendingSummary(userID string) (int64, decimal.Decimal, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(o.quantity_ordered * p.price), 0)
		FROM purchase_orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.user_id = $1 AND o.status = 'pending'`
	var count int64
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, userID).Scan(&count, &total)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("pending orders summary: %w", err)
	}
	return count, total, nil
}

func (r *PurchaseOrderRepo) scanOne(query string, args ...any) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&o.ID, &o.UserID, &o.ProductID, &o.SupplierID, &o.QuantityOrdered,
		&o.Status, &o.OrderDate, &o.Notes, &o.NotifyByEmail, &o.GroupID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &o, nil
}

func scanOrders(rows pgx.Rows) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		err := rows.Scan(
			&o.ID, &o.UserID, &o.ProductID, &o.SupplierID, &o.QuantityOrdered,
			&o.Status, &o.OrderDate, &o.Notes, &o.NotifyByEmail, &o.GroupID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}
