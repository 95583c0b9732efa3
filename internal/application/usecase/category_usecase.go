package usecase

import (
	"github.com/google/uuid"

	"github.com/jhoicas/mistock-api/internal/domain"
	"github.com/jhoicas/mistock-api/internal/domain/entity"
	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías. Nombre único por
// usuario; no se puede borrar una categoría referenciada por productos.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	prodRepo repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, prodRepo repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, prodRepo: prodRepo}
}

// Create crea una categoría del usuario.
func (uc *CategoryUseCase) Create(userID string, c entity.ProductCategory) (*entity.ProductCategory, error) {
	if c.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(userID, c.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	c.ID = uuid.New().String()
	c.UserID = userID
	if err := uc.repo.Create(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID obtiene una categoría del usuario.
func (uc *CategoryUseCase) GetByID(userID, id string) (*entity.ProductCategory, error) {
	c, err := uc.repo.GetByOwner(id, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List lista las categorías del usuario.
func (uc *CategoryUseCase) List(userID string) ([]*entity.ProductCategory, error) {
	return uc.repo.ListByOwner(userID)
}

// Update actualiza una categoría. Renombrar a un nombre ya usado es ErrDuplicate.
func (uc *CategoryUseCase) Update(userID, id string, in entity.ProductCategory) (*entity.ProductCategory, error) {
	c, err := uc.repo.GetByOwner(id, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" && in.Name != c.Name {
		existing, err := uc.repo.GetByName(userID, in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		c.Name = in.Name
	}
	c.Description = in.Description
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete elimina una categoría sin productos asociados; si los tiene, ErrConflict.
func (uc *CategoryUseCase) Delete(userID, id string) error {
	c, err := uc.repo.GetByOwner(id, userID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	count, err := uc.prodRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}
