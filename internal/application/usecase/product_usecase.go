package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mistock-api/internal/application/dto"
	"github.com/jhoicas/mistock-api/internal/domain"
	"github.com/jhoicas/mistock-api/internal/domain/entity"
	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. La cantidad inicial se
// fija al crear; después de eso solo la cambia el Ledger Writer.
type ProductUseCase struct {
	repo         repository.ProductRepository
	movRepo      repository.StockMovementRepository
	saleRepo     repository.ProductSaleRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.ProductSaleRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) *ProductUseCase {
	return &ProductUseCase{
		repo:         repo,
		movRepo:      movRepo,
		saleRepo:     saleRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
	}
}

// Create crea un producto. SKU único por usuario; las referencias a
// categoría y proveedor deben pertenecer al mismo usuario.
func (uc *ProductUseCase) Create(userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) || in.Quantity < 0 || in.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetBySKU(userID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkRefs(userID, in.CategoryID, in.SupplierID); err != nil {
		return nil, err
	}
	product := &entity.Product{
		ID:                uuid.New().String(),
		UserID:            userID,
		SKU:               in.SKU,
		Name:              in.Name,
		Description:       in.Description,
		CategoryID:        in.CategoryID,
		SupplierID:        in.SupplierID,
		Price:             in.Price,
		Quantity:          in.Quantity,
		LowStockThreshold: in.LowStockThreshold,
		LastUpdated:       time.Now(),
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del usuario.
func (uc *ProductUseCase) GetByID(userID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByOwner(id, userID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista los productos del usuario con paginación.
func (uc *ProductUseCase) List(userID string, limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := uc.repo.ListByOwner(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update aplica un patch explícito. Quantity no es actualizable por aquí:
// se maneja vía el libro de movimientos.
func (uc *ProductUseCase) Update(userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByOwner(id, userID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.LowStockThreshold = *in.LowStockThreshold
	}
	var categoryID, supplierID string
	if in.CategoryID != nil {
		categoryID = *in.CategoryID
		product.CategoryID = *in.CategoryID
	}
	if in.SupplierID != nil {
		supplierID = *in.SupplierID
		product.SupplierID = *in.SupplierID
	}
	if err := uc.checkRefs(userID, categoryID, supplierID); err != nil {
		return nil, err
	}
	product.LastUpdated = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto sin historial. Si el producto tiene movimientos
// o ventas, borrar dejaría filas de auditoría huérfanas: ErrConflict
// (política cascade-forbid).
func (uc *ProductUseCase) Delete(userID, id string) error {
	product, err := uc.repo.GetByOwner(id, userID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	movements, err := uc.movRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	sales, err := uc.saleRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if movements > 0 || sales > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

// checkRefs valida que la categoría y el proveedor (si se indican)
// pertenezcan al usuario. Referencias ajenas se reportan como inexistentes.
func (uc *ProductUseCase) checkRefs(userID, categoryID, supplierID string) error {
	if categoryID != "" {
		category, err := uc.categoryRepo.GetByOwner(categoryID, userID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}
	}
	if supplierID != "" {
		supplier, err := uc.supplierRepo.GetByOwner(supplierID, userID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		CategoryID:        p.CategoryID,
		SupplierID:        p.SupplierID,
		Price:             p.Price,
		Quantity:          p.Quantity,
		LowStockThreshold: p.LowStockThreshold,
		LastUpdated:       p.LastUpdated,
	}
}
