package usecase

import (
	"github.com/google/uuid"

	"github.com/jhoicas/mistock-api/internal/domain"
	"github.com/jhoicas/mistock-api/internal/domain/entity"
	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores. Nombre único por
// usuario; no se puede borrar un proveedor referenciado por productos.
type SupplierUseCase struct {
	repo     repository.SupplierRepository
	prodRepo repository.ProductRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, prodRepo repository.ProductRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, prodRepo: prodRepo}
}

// Create crea un proveedor del usuario.
func (uc *SupplierUseCase) Create(userID string, s entity.Supplier) (*entity.Supplier, error) {
	if s.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(userID, s.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	s.ID = uuid.New().String()
	s.UserID = userID
	if err := uc.repo.Create(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByID obtiene un proveedor del usuario.
func (uc *SupplierUseCase) GetByID(userID, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByOwner(id, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// List lista los proveedores del usuario.
func (uc *SupplierUseCase) List(userID string) ([]*entity.Supplier, error) {
	return uc.repo.ListByOwner(userID)
}

// Update actualiza un proveedor. Renombrar a un nombre ya usado es ErrDuplicate.
func (uc *SupplierUseCase) Update(userID, id string, in entity.Supplier) (*entity.Supplier, error) {
	s, err := uc.repo.GetByOwner(id, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" && in.Name != s.Name {
		existing, err := uc.repo.GetByName(userID, in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		s.Name = in.Name
	}
	s.Email = in.Email
	s.Phone = in.Phone
	s.Address = in.Address
	if err := uc.repo.Update(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Delete elimina un proveedor sin productos asociados; si los tiene, ErrConflict.
func (uc *SupplierUseCase) Delete(userID, id string) error {
	s, err := uc.repo.GetByOwner(id, userID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	count, err := uc.prodRepo.CountBySupplier(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}
