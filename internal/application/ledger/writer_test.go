package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mistock-api/internal/application/apptest"
	"github.com/jhoicas/mistock-api/internal/domain"
	"github.com/jhoicas/mistock-api/internal/domain/entity"
)

func nuevoProducto(store *apptest.Store, id, userID string, qty int64) *entity.Product {
	p := &entity.Product{
		ID:       id,
		UserID:   userID,
		SKU:      "SKU-" + id,
		Name:     "Producto " + id,
		Price:    decimal.NewFromInt(100),
		Quantity: qty,
	}
	store.Products[id] = p
	return p
}

func TestRecordInTx_InvarianteAntesDespues(t *testing.T) {
	store := apptest.NewStore()
	nuevoProducto(store, "p1", "u1", 10)
	movRepo := &apptest.MovementRepo{S: store}
	prodRepo := &apptest.ProductRepo{S: store}

	product, err := prodRepo.GetByOwnerForUpdate("p1", "u1")
	require.NoError(t, err)

	now := time.Now()
	mov, err := NewWriter().RecordInTx(movRepo, prodRepo, product, MovementInput{
		UserID:         "u1",
		MovementType:   entity.MovementTypeSale,
		QuantityChange: -4,
		Now:            now,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), mov.QuantityBefore, "before debe ser la cantidad al momento de escribir")
	assert.Equal(t, int64(6), mov.QuantityAfter, "after = before + change")
	assert.Equal(t, mov.QuantityAfter, mov.QuantityBefore+mov.QuantityChange)
	assert.Equal(t, int64(6), product.Quantity, "la entidad en memoria se actualiza")
	assert.Equal(t, int64(6), store.Products["p1"].Quantity, "la cantidad persistida se actualiza")
	require.Len(t, store.Movements, 1)
}

func TestRecordInTx_RechazaCantidadNegativa(t *testing.T) {
	store := apptest.NewStore()
	nuevoProducto(store, "p1", "u1", 3)
	movRepo := &apptest.MovementRepo{S: store}
	prodRepo := &apptest.ProductRepo{S: store}

	product, _ := prodRepo.GetByOwnerForUpdate("p1", "u1")
	_, err := NewWriter().RecordInTx(movRepo, prodRepo, product, MovementInput{
		UserID:         "u1",
		MovementType:   entity.MovementTypeSale,
		QuantityChange: -5,
		Now:            time.Now(),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidMovement)
	assert.Empty(t, store.Movements, "un movimiento rechazado no deja fila")
	assert.Equal(t, int64(3), store.Products["p1"].Quantity, "la cantidad no cambia")
}

func TestRecordInTx_RechazaEntradaInvalida(t *testing.T) {
	store := apptest.NewStore()
	nuevoProducto(store, "p1", "u1", 10)
	movRepo := &apptest.MovementRepo{S: store}
	prodRepo := &apptest.ProductRepo{S: store}
	product, _ := prodRepo.GetByOwnerForUpdate("p1", "u1")

	_, err := NewWriter().RecordInTx(movRepo, prodRepo, product, MovementInput{
		UserID: "u1", MovementType: "transfer", QuantityChange: 1, Now: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = NewWriter().RecordInTx(movRepo, prodRepo, product, MovementInput{
		UserID: "u1", MovementType: entity.MovementTypeAdjustment, QuantityChange: 0, Now: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "delta cero")
}

func TestRegisterAdjustment_BloqueaYRegistra(t *testing.T) {
	store := apptest.NewStore()
	nuevoProducto(store, "p1", "u1", 8)
	uc := NewMovementUseCase(&apptest.TxRunner{S: store}, NewWriter(),
		&apptest.MovementRepo{S: store}, &apptest.ProductRepo{S: store})

	out, err := uc.RegisterAdjustment(context.Background(), "u1", "p1", -3, "merma")
	require.NoError(t, err)

	assert.Equal(t, entity.MovementTypeAdjustment, out.MovementType)
	assert.Equal(t, int64(8), out.QuantityBefore)
	assert.Equal(t, int64(5), out.QuantityAfter)
	assert.Equal(t, int64(5), store.Products["p1"].Quantity)
}

func TestRegisterAdjustment_ProductoAjenoEsInexistente(t *testing.T) {
	store := apptest.NewStore()
	nuevoProducto(store, "p1", "u1", 8)
	uc := NewMovementUseCase(&apptest.TxRunner{S: store}, NewWriter(),
		&apptest.MovementRepo{S: store}, &apptest.ProductRepo{S: store})

	_, err := uc.RegisterAdjustment(context.Background(), "u2", "p1", 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound, "propiedad ajena se reporta como inexistente")
	assert.Empty(t, store.Movements)
}

func TestHistory_ProductoInexistente(t *testing.T) {
	store := apptest.NewStore()
	uc := NewMovementUseCase(&apptest.TxRunner{S: store}, NewWriter(),
		&apptest.MovementRepo{S: store}, &apptest.ProductRepo{S: store})

	_, err := uc.History(context.Background(), "u1", "nope", 20, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
