package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mistock-api/internal/domain"
	"github.com/jhoicas/mistock-api/internal/domain/entity"
	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, user_id, sku, name, description,
	COALESCE(category_id, ''), COALESCE(supplier_id, ''),
	price, quantity, low_stock_threshold, last_updated`

// Create persiste un nuevo producto. category_id y supplier_id vacíos se
// guardan como NULL para no romper las FKs.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, user_id, sku, name, description, category_id, supplier_id, price, quantity, low_stock_threshold, last_updated)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.UserID, product.SKU, product.Name, product.Description,
		product.CategoryID, product.SupplierID, product.Price, product.Quantity,
		product.LowStockThreshold, product.LastUpdated,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByOwner obtiene un producto por ID y dueño. (nil, nil) si no existe o es ajeno.
func (r *ProductRepo) GetByOwner(id, userID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND user_id = $2`
	return r.scanOne(query, id, userID)
}

// GetByOwnerForUpdate igual que GetByOwner pero bloquea la fila
// (SELECT FOR UPDATE). Solo tiene sentido dentro de una transacción.
func (r *ProductRepo) GetByOwnerForUpdate(id, userID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND user_id = $2 FOR UPDATE`
	return r.scanOne(query, id, userID)
}

// GetBySKU obtiene un producto por dueño y SKU.
func (r *ProductRepo) GetBySKU(userID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND sku = $2`
	return r.scanOne(query, userID, sku)
}

// ListByOwner lista productos del usuario con paginación.
func (r *ProductRepo) ListByOwner(userID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products WHERE user_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update actualiza los datos del producto. No toca quantity: eso es
// exclusivo de UpdateQuantity.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, category_id = NULLIF($4, ''),
			supplier_id = NULLIF($5, ''), price = $6, low_stock_threshold = $7, last_updated = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.CategoryID,
		product.SupplierID, product.Price, product.LowStockThreshold, product.LastUpdated,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad del producto (usada por el escritor del
// libro de movimientos, con la fila ya bloqueada).
func (r *ProductRepo) UpdateQuantity(productID string, quantity int64, at time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, last_updated = $3 WHERE id = $1`,
		productID, quantity, at,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// Delete elimina un producto. Con historial referenciándolo la FK lo impide
// y se traduce a ErrConflict.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// CountByCategory cuenta los productos que referencian una categoría.
func (r *ProductRepo) CountByCategory(categoryID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by category: %w", err)
	}
	return count, nil
}

// CountBySupplier cuenta los productos que referencian un proveedor.
func (r *ProductRepo) CountBySupplier(supplierID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE supplier_id = $1`, supplierID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products by supplier: %w", err)
	}
	return count, nil
}

// LowStockCount cuenta productos con 0 < quantity <= low_stock_threshold.
func (r *ProductRepo) LowStockCount(userID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE user_id = $1 AND quantity > 0 AND quantity <= low_stock_threshold`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return count, nil
}

// OutOfStockCount cuenta productos con quantity = 0.
func (r *ProductRepo) OutOfStockCount(userID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE user_id = $1 AND quantity = 0`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count out of stock: %w", err)
	}
	return count, nil
}

func (r *ProductRepo) scanOne(query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.UserID, &p.SKU, &p.Name, &p.Description, &p.CategoryID,
		&p.SupplierID, &p.Price, &p.Quantity, &p.LowStockThreshold, &p.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}
