package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mistock-api/internal/domain/entity"
	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

var _ repository.ProductSaleRepository = (*ProductSaleRepo)(nil)

// ProductSaleRepo implementación del puerto ProductSaleRepository sobre
// PostgreSQL. Las ventas son inmutables: solo INSERT y SELECT.
type ProductSaleRepo struct {
	q Querier
}

// NewProductSaleRepository construye el adaptador de ventas.
func NewProductSaleRepository(q Querier) *ProductSaleRepo {
	return &ProductSaleRepo{q: q}
}

// Create persiste una venta.
func (r *ProductSaleRepo) Create(sale *entity.ProductSale) error {
	query := `
		INSERT INTO product_sales (id, product_id, user_id, quantity, sale_price, sale_date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ProductID, sale.UserID, sale.Quantity, sale.SalePrice, sale.SaleDate,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListByOwner lista las ventas del usuario, la más reciente primero.
func (r *ProductSaleRepo) ListByOwner(userID string, limit, offset int) ([]*entity.ProductSale, error) {
	query := `
		SELECT id, product_id, user_id, quantity, sale_price, sale_date
		FROM product_sales WHERE user_id = $1
		ORDER BY sale_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

// ListByProduct lista las ventas de un producto del usuario.
func (r *ProductSaleRepo) ListByProduct(productID, userID string) ([]*entity.ProductSale, error) {
	query := `
		SELECT id, product_id, user_id, quantity, sale_price, sale_date
		FROM product_sales WHERE product_id = $1 AND user_id = $2
		ORDER BY sale_date DESC`
	rows, err := r.q.Query(context.Background(), query, productID, userID)
	if err != nil {
		return nil, fmt.Errorf("list product sales: %w", err)
	}
	defer rows.Close()
	return scanSales(rows)
}

// CountByProduct cuenta las ventas de un producto.
func (r *ProductSaleRepo) CountByProduct(productID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM product_sales WHERE product_id = $1`, productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return count, nil
}

func scanSales(rows pgx.Rows) ([]*entity.ProductSale, error) {
	var out []*entity.ProductSale
	for rows.Next() {
		var s entity.ProductSale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.UserID, &s.Quantity, &s.SalePrice, &s.SaleDate); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
