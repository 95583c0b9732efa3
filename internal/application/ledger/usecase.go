package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/mistock-api/internal/application/dto"
	"github.com/jhoicas/mistock-api/internal/domain"
	"github.com/jhoicas/mistock-api/internal/domain/entity"
	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

// MovementUseCase operaciones del libro de movimientos expuestas a la API:
// ajustes manuales de stock y consulta del historial de un producto.
type MovementUseCase struct {
	txRunner TxRunner
	writer   *Writer
	movRepo  repository.StockMovementRepository // lecturas fuera de tx
	prodRepo repository.ProductRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	writer *Writer,
	movRepo repository.StockMovementRepository,
	prodRepo repository.ProductRepository,
) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, writer: writer, movRepo: movRepo, prodRepo: prodRepo}
}

// RegisterAdjustment registra un ajuste manual de stock (delta con signo).
// El producto se bloquea dentro de la tx; un delta que deje la cantidad
// negativa retorna ErrInvalidMovement.
func (uc *MovementUseCase) RegisterAdjustment(
	ctx context.Context,
	userID, productID string,
	change int64,
	notes string,
) (*dto.MovementResponse, error) {
	if productID == "" || change == 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.MovementResponse
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.ProductSaleRepository,
		_ repository.PurchaseOrderRepository,
		_ repository.SupplierRepository,
	) error {
		product, err := productRepo.GetByOwnerForUpdate(productID, userID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		mov, err := uc.writer.RecordInTx(movRepo, productRepo, product, MovementInput{
			UserID:         userID,
			MovementType:   entity.MovementTypeAdjustment,
			QuantityChange: change,
			Notes:          notes,
			Now:            time.Now(),
		})
		if err != nil {
			return err
		}
		out = ToMovementResponse(mov)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// History lista los movimientos de un producto del usuario, más reciente primero.
func (uc *MovementUseCase) History(ctx context.Context, userID, productID string, limit, offset int) ([]*dto.MovementResponse, error) {
	product, err := uc.prodRepo.GetByOwner(productID, userID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movRepo.ListByProduct(productID, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// ToMovementResponse convierte la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		MovementType:    m.MovementType,
		QuantityChange:  m.QuantityChange,
		QuantityBefore:  m.QuantityBefore,
		QuantityAfter:   m.QuantityAfter,
		ReferenceID:     m.ReferenceID,
		ReferenceType:   m.ReferenceType,
		Notes:           m.Notes,
		TransactionDate: m.TransactionDate,
		CreatedAt:       m.CreatedAt,
	}
}
