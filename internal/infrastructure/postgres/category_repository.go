package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mistock-api/internal/domain"
	"github.com/jhoicas/mistock-api/internal/domain/entity"
	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría.
func (r *CategoryRepo) Create(category *entity.ProductCategory) error {
	query := `
		INSERT INTO product_categories (id, user_id, name, description)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.UserID, category.Name, category.Description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByOwner obtiene una categoría por ID y dueño. (nil, nil) si no existe o es ajena.
func (r *CategoryRepo) GetByOwner(id, userID string) (*entity.ProductCategory, error) {
	query := `SELECT id, user_id, name, description FROM product_categories WHERE id = $1 AND user_id = $2`
	return r.scanOne(query, id, userID)
}

// GetByName obtiene una categoría por dueño y nombre.
func (r *CategoryRepo) GetByName(userID, name string) (*entity.ProductCategory, error) {
	query := `SELECT id, user_id, name, description FROM product_categories WHERE user_id = $1 AND name = $2`
	return r.scanOne(query, userID, name)
}

// ListByOwner lista las categorías del usuario por nombre.
func (r *CategoryRepo) ListByOwner(userID string) ([]*entity.ProductCategory, error) {
	query := `SELECT id, user_id, name, description FROM product_categories WHERE user_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductCategory
	for rows.Next() {
		var c entity.ProductCategory
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Update actualiza una categoría existente.
func (r *CategoryRepo) Update(category *entity.ProductCategory) error {
	query := `UPDATE product_categories SET name = $2, description = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete elimina una categoría. Con productos referenciándola la FK lo
// impide y se traduce a ErrConflict.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) scanOne(query string, args ...any) (*entity.ProductCategory, error) {
	var c entity.ProductCategory
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}
