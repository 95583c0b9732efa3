package sales

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mistock-api/internal/application/apptest"
	"github.com/jhoicas/mistock-api/internal/application/dto"
	"github.com/jhoicas/mistock-api/internal/application/ledger"
	"github.com/jhoicas/mistock-api/internal/domain"
	"github.com/jhoicas/mistock-api/internal/domain/entity"
)

func nuevoCasoDeUso(store *apptest.Store) *SaleUseCase {
	return NewSaleUseCase(&apptest.TxRunner{S: store}, ledger.NewWriter(),
		&apptest.SaleRepo{S: store}, &apptest.ProductRepo{S: store})
}

func sembrarProducto(store *apptest.Store, id, userID, sku string, qty int64, price int64) {
	store.Products[id] = &entity.Product{
		ID:       id,
		UserID:   userID,
		SKU:      sku,
		Name:     "Producto " + sku,
		Price:    decimal.NewFromInt(price),
		Quantity: qty,
	}
}

func TestRecordSale_Exitosa(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", "ABC", 10, 250)
	uc := nuevoCasoDeUso(store)

	out, err := uc.RecordSale(context.Background(), "u1", "p1", dto.RecordSaleRequest{Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, int64(3), out.Quantity)
	assert.True(t, out.SalePrice.Equal(decimal.NewFromInt(250)), "el precio es foto del producto")
	assert.Equal(t, int64(7), store.Products["p1"].Quantity, "el stock se descuenta")

	require.Len(t, store.Movements, 1)
	mov := store.Movements[0]
	assert.Equal(t, entity.MovementTypeSale, mov.MovementType)
	assert.Equal(t, int64(-3), mov.QuantityChange)
	assert.Equal(t, int64(10), mov.QuantityBefore)
	assert.Equal(t, int64(7), mov.QuantityAfter)
	assert.Equal(t, out.ID, mov.ReferenceID, "el movimiento referencia la venta")
	assert.Equal(t, entity.ReferenceTypeSale, mov.ReferenceType)
}

func TestRecordSale_PrecioNoSigueCambiosPosteriores(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", "ABC", 10, 100)
	uc := nuevoCasoDeUso(store)

	out, err := uc.RecordSale(context.Background(), "u1", "p1", dto.RecordSaleRequest{Quantity: 1})
	require.NoError(t, err)

	store.Products["p1"].Price = decimal.NewFromInt(999)
	assert.True(t, out.SalePrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, store.Sales[0].SalePrice.Equal(decimal.NewFromInt(100)))
}

func TestRecordSale_StockInsuficiente(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", "ABC", 2, 100)
	uc := nuevoCasoDeUso(store)

	_, err := uc.RecordSale(context.Background(), "u1", "p1", dto.RecordSaleRequest{Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, store.Sales, "nada se persiste")
	assert.Empty(t, store.Movements)
	assert.Equal(t, int64(2), store.Products["p1"].Quantity)
}

func TestRecordSale_ProductoAjenoOInexistente(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", "ABC", 10, 100)
	uc := nuevoCasoDeUso(store)

	_, err := uc.RecordSale(context.Background(), "u2", "p1", dto.RecordSaleRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RecordSale(context.Background(), "u1", "nope", dto.RecordSaleRequest{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordSale_CantidadInvalida(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", "ABC", 10, 100)
	uc := nuevoCasoDeUso(store)

	_, err := uc.RecordSale(context.Background(), "u1", "p1", dto.RecordSaleRequest{Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RecordSale(context.Background(), "u1", "p1", dto.RecordSaleRequest{Quantity: -2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordSale_FechaRetroactiva(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", "ABC", 10, 100)
	uc := nuevoCasoDeUso(store)

	past := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	out, err := uc.RecordSale(context.Background(), "u1", "p1", dto.RecordSaleRequest{Quantity: 1, SaleDate: &past})
	require.NoError(t, err)

	assert.True(t, out.SaleDate.Equal(past))
	require.Len(t, store.Movements, 1)
	require.NotNil(t, store.Movements[0].TransactionDate)
	assert.True(t, store.Movements[0].TransactionDate.Equal(past), "la fecha de negocio viaja al movimiento")
	assert.False(t, store.Movements[0].CreatedAt.Equal(past), "created_at sigue siendo del servidor")
}
