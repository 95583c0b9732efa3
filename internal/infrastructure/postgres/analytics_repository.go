package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo implementación read-only del puerto AnalyticsRepository.
// Las agregaciones pesadas viven en SQL; el use case solo compone.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetCategorySales ingresos y unidades vendidas por categoría, solo
// categorías con ventas de productos categorizados.
func (r *AnalyticsRepo) GetCategorySales(ctx context.Context, userID string) ([]repository.CategorySalesResult, error) {
	query := `
		SELECT c.id, c.name, COALESCE(SUM(s.sale_price * s.quantity), 0), COALESCE(SUM(s.quantity), 0)
		FROM product_sales s
		JOIN products p ON p.id = s.product_id
		JOIN product_categories c ON c.id = p.category_id
		WHERE s.user_id = $1
		GROUP BY c.id, c.name
		ORDER BY c.name`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("category sales: %w", err)
	}
	defer rows.Close()

	var out []repository.CategorySalesResult
	for rows.Next() {
		var res repository.CategorySalesResult
		if err := rows.Scan(&res.CategoryID, &res.Category, &res.Revenue, &res.SalesUnits); err != nil {
			return nil, fmt.Errorf("scan category sales: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// GetCategoryInventory todas las categorías del usuario con su inventario
// vivo actual (0 si no tienen productos).
func (r *AnalyticsRepo) GetCategoryInventory(ctx context.Context, userID string) ([]repository.CategoryInventoryResult, error) {
	query := `
		SELECT c.id, c.name, COALESCE(SUM(p.quantity), 0)
		FROM product_categories c
		LEFT JOIN products p ON p.category_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id, c.name
		ORDER BY c.name`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("category inventory: %w", err)
	}
	defer rows.Close()

	var out []repository.CategoryInventoryResult
	for rows.Next() {
		var res repository.CategoryInventoryResult
		if err := rows.Scan(&res.CategoryID, &res.Category, &res.Inventory); err != nil {
			return nil, fmt.Errorf("scan category inventory: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// GetInventorySnapshot valor e ítems totales al corte: por producto, el
// quantity_after del movimiento más reciente hasta cutoff; sin movimientos,
// la cantidad viva del producto. La fecha efectiva de un movimiento es
// transaction_date si existe, si no created_at.
func (r *AnalyticsRepo) GetInventorySnapshot(ctx context.Context, userID string, cutoff time.Time) (decimal.Decimal, int64, error) {
	query := `
		WITH latest AS (
			SELECT m.product_id, m.quantity_after,
				row_number() OVER (
					PARTITION BY m.product_id
					ORDER BY COALESCE(m.transaction_date, m.created_at) DESC, m.created_at DESC
				) AS rn
			FROM stock_movements m
			WHERE m.user_id = $1 AND COALESCE(m.transaction_date, m.created_at) <= $2
		)
		SELECT COALESCE(SUM(COALESCE(l.quantity_after, p.quantity) * p.price), 0),
			COALESCE(SUM(COALESCE(l.quantity_after, p.quantity)), 0)
		FROM products p
		LEFT JOIN latest l ON l.product_id = p.id AND l.rn = 1
		WHERE p.user_id = $1`
	var totalValue decimal.Decimal
	var totalItems int64
	err := r.q.QueryRow(ctx, query, userID, cutoff).Scan(&totalValue, &totalItems)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("inventory snapshot: %w", err)
	}
	return totalValue, totalItems, nil
}

// GetUnitsSoldBetween unidades vendidas con sale_date en [from, to].
func (r *AnalyticsRepo) GetUnitsSoldBetween(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	var units int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM product_sales WHERE user_id = $1 AND sale_date BETWEEN $2 AND $3`,
		userID, from, to,
	).Scan(&units)
	if err != nil {
		return 0, fmt.Errorf("units sold: %w", err)
	}
	return units, nil
}

// GetSalesTotals ingreso total y unidades totales vendidas del usuario.
func (r *AnalyticsRepo) GetSalesTotals(ctx context.Context, userID string) (decimal.Decimal, int64, error) {
	var revenue decimal.Decimal
	var units int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(sale_price * quantity), 0), COALESCE(SUM(quantity), 0) FROM product_sales WHERE user_id = $1`,
		userID,
	).Scan(&revenue, &units)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("sales totals: %w", err)
	}
	return revenue, units, nil
}

// GetTopCategory nombre de la categoría con más unidades vendidas, "" si no
// hay ventas de productos categorizados.
func (r *AnalyticsRepo) GetTopCategory(ctx context.Context, userID string) (string, error) {
	query := `
		SELECT c.name
		FROM product_sales s
		JOIN products p ON p.id = s.product_id
		JOIN product_categories c ON c.id = p.category_id
		WHERE s.user_id = $1
		GROUP BY c.name
		ORDER BY SUM(s.quantity) DESC, c.name
		LIMIT 1`
	var name string
	err := r.q.QueryRow(ctx, query, userID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("top category: %w", err)
	}
	return name, nil
}
