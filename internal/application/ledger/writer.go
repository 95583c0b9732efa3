// Package ledger contiene el Ledger Writer: el ÚNICO punto del sistema que
// muta la cantidad de un producto. Todo flujo de nivel superior (venta,
// reposición, ajuste) pasa por aquí, de modo que cada cambio de cantidad
// tiene su fila de auditoría correspondiente en stock_movements.
package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mistock-api/internal/domain"
	"github.com/jhoicas/mistock-api/internal/domain/entity"
	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

// MovementInput entrada para registrar un movimiento en el libro.
type MovementInput struct {
	UserID          string
	MovementType    string
	QuantityChange  int64      // delta con signo
	ReferenceID     string     // opcional: id de la venta u orden que origina el movimiento
	ReferenceType   string     // opcional: sale | purchase_order
	Notes           string
	TransactionDate *time.Time // opcional: fecha de negocio retroactiva
	Now             time.Time  // instante del servidor, compartido por toda la tx
}

// Writer registra movimientos inmutables y actualiza la cantidad del
// producto como una sola unidad atómica (los repos que recibe deben estar
// atados a la misma transacción).
type Writer struct{}

// NewWriter construye el escritor del libro.
func NewWriter() *Writer {
	return &Writer{}
}

// RecordInTx captura la cantidad actual del producto como quantity_before,
// calcula quantity_after y falla con ErrInvalidMovement si el resultado
// sería negativo (el caller ya validó disponibilidad donde aplica; aquí se
// reafirma el invariante). Inserta el movimiento y actualiza la cantidad y
// el last_updated del producto en la misma transacción.
//
// El caller debe haber obtenido product con GetByOwnerForUpdate dentro de
// la tx: el bloqueo de fila garantiza que quantity_before no quede obsoleto
// por una mutación concurrente no vista.
func (w *Writer) RecordInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	in MovementInput,
) (*entity.StockMovement, error) {
	switch in.MovementType {
	case entity.MovementTypeSale, entity.MovementTypeRestock, entity.MovementTypeAdjustment:
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.QuantityChange == 0 {
		return nil, domain.ErrInvalidInput
	}

	before := product.Quantity
	after := before + in.QuantityChange
	if after < 0 {
		return nil, domain.ErrInvalidMovement
	}

	mov := &entity.StockMovement{
		ID:              uuid.New().String(),
		ProductID:       product.ID,
		UserID:          in.UserID,
		MovementType:    in.MovementType,
		QuantityChange:  in.QuantityChange,
		QuantityBefore:  before,
		QuantityAfter:   after,
		ReferenceID:     in.ReferenceID,
		ReferenceType:   in.ReferenceType,
		Notes:           in.Notes,
		TransactionDate: in.TransactionDate,
		CreatedAt:       in.Now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	if err := productRepo.UpdateQuantity(product.ID, after, in.Now); err != nil {
		return nil, err
	}
	product.Quantity = after
	product.LastUpdated = in.Now
	return mov, nil
}
