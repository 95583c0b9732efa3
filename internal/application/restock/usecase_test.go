package restock

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

// notifierSpy captura las notificaciones encoladas.
type notifierSpy struct {
	calls [][]*entity.PurchaseOrder
	to    []string
}

func (n *notifierSpy) EnqueueOrderSummary(recipient, displayName string, orders []*entity.PurchaseOrder) {
	n.to = append(n.to, recipient)
	n.calls = append(n.calls, orders)
}

func armarCasoDeUso(store *apptest.Store, notifier Notifier) *PurchaseOrderUseCase {
	return NewPurchaseOrderUseCase(&apptest.TxRunner{S: store}, ledger.NewWriter(),
		&apptest.OrderRepo{S: store}, &apptest.ProductRepo{S: store},
		&apptest.UserRepo{S: store}, notifier)
}

func sembrarProducto(store *apptest.Store, id, userID string, qty, threshold int64, price int64) {
	store.Products[id] = &entity.Product{
		ID:                id,
		UserID:            userID,
		SKU:               "SKU-" + id,
		Name:              "Producto " + id,
		Price:             decimal.NewFromInt(price),
		Quantity:          qty,
		LowStockThreshold: threshold,
	}
}

func sembrarOrden(store *apptest.Store, id, userID, productID, status string, qty int64, groupID string) {
	store.Orders[id] = &entity.PurchaseOrder{
		ID:              id,
		UserID:          userID,
		ProductID:       productID,
		QuantityOrdered: qty,
		Status:          status,
		OrderDate:       time.Now(),
		GroupID:         groupID,
	}
}

func strPtr(s string) *string { return &s }
func i64Ptr(n int64) *int64   { return &n }

func TestCreateBatch_GroupIDCompartidoYNotificacionUnica(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", 5, 2, 100)
	sembrarProducto(store, "p2", "u1", 3, 2, 100)
	store.Users["u1"] = &entity.User{ID: "u1", FullName: "Ana", Email: "ana@test.com"}
	spy := &notifierSpy{}
	uc := armarCasoDeUso(store, spy)

	out, err := uc.CreateBatch(context.Background(), "u1", dto.PurchaseOrderBatchRequest{Orders: []dto.PurchaseOrderItem{
		{ProductID: "p1", QuantityOrdered: 10, NotifyByEmail: true},
		{ProductID: "p2", QuantityOrdered: 20, NotifyByEmail: true},
		{ProductID: "p1", QuantityOrdered: 5},
	}})
	require.NoError(t, err)
	require.Len(t, out, 3)

	groupID := out[0].GroupID
	assert.NotEmpty(t, groupID)
	for _, o := range out {
		assert.Equal(t, groupID, o.GroupID, "todas las órdenes comparten group_id")
		assert.Equal(t, entity.OrderStatusPending, o.Status)
	}

	require.Len(t, spy.calls, 1, "un solo resumen por lote, no un correo por orden")
	assert.Len(t, spy.calls[0], 2, "solo las órdenes con notify_by_email")
	assert.Equal(t, "ana@test.com", spy.to[0])
	assert.Empty(t, store.Movements, "crear órdenes no toca el inventario")
}

func TestCreateBatch_TodoONada(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", 5, 2, 100)
	uc := armarCasoDeUso(store, &notifierSpy{})

	_, err := uc.CreateBatch(context.Background(), "u1", dto.PurchaseOrderBatchRequest{Orders: []dto.PurchaseOrderItem{
		{ProductID: "p1", QuantityOrdered: 10},
		{ProductID: "fantasma", QuantityOrdered: 5},
	}})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.Orders, "una referencia inválida revierte el lote completo")
}

func TestCreateBatch_CantidadInvalida(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", 5, 2, 100)
	uc := armarCasoDeUso(store, &notifierSpy{})

	_, err := uc.CreateBatch(context.Background(), "u1", dto.PurchaseOrderBatchRequest{Orders: []dto.PurchaseOrderItem{
		{ProductID: "p1", QuantityOrdered: 0},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateBatch(context.Background(), "u1", dto.PurchaseOrderBatchRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "lote vacío")
}

func TestUpdateOrder_CompletarAplicaReposicion(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", 5, 2, 100)
	sembrarOrden(store, "o1", "u1", "p1", entity.OrderStatusPending, 10, "")
	uc := armarCasoDeUso(store, &notifierSpy{})

	out, err := uc.UpdateOrder(context.Background(), "u1", "o1", dto.PurchaseOrderPatch{Status: strPtr(entity.OrderStatusCompleted)})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, out.Status)
	assert.Equal(t, int64(15), store.Products["p1"].Quantity, "5 + 10 del restock")
	require.Len(t, store.Movements, 1)
	mov := store.Movements[0]
	assert.Equal(t, entity.MovementTypeRestock, mov.MovementType)
	assert.Equal(t, int64(10), mov.QuantityChange)
	assert.Equal(t, int64(5), mov.QuantityBefore)
	assert.Equal(t, int64(15), mov.QuantityAfter)
	assert.Equal(t, "o1", mov.ReferenceID)
	assert.Equal(t, entity.ReferenceTypePurchaseOrder, mov.ReferenceType)
}

func TestUpdateOrder_RecompletarNoDuplicaReposicion(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", 5, 2, 100)
	sembrarOrden(store, "o1", "u1", "p1", entity.OrderStatusPending, 10, "")
	uc := armarCasoDeUso(store, &notifierSpy{})

	_, err := uc.UpdateOrder(context.Background(), "u1", "o1", dto.PurchaseOrderPatch{Status: strPtr(entity.OrderStatusCompleted)})
	require.NoError(t, err)

	// Mismo estado otra vez: no-op, no re-aplica
	out, err := uc.UpdateOrder(context.Background(), "u1", "o1", dto.PurchaseOrderPatch{Status: strPtr(entity.OrderStatusCompleted)})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, out.Status)
	assert.Equal(t, int64(15), store.Products["p1"].Quantity, "la cantidad no vuelve a subir")
	assert.Len(t, store.Movements, 1, "no hay segundo movimiento de reposición")
}

func TestUpdateOrder_SalirDeEstadoTerminalEsConflicto(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", 5, 2, 100)
	sembrarOrden(store, "o1", "u1", "p1", entity.OrderStatusCancelled, 10, "")
	uc := armarCasoDeUso(store, &notifierSpy{})

	_, err := uc.UpdateOrder(context.Background(), "u1", "o1", dto.PurchaseOrderPatch{Status: strPtr(entity.OrderStatusPending)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.UpdateOrder(context.Background(), "u1", "o1", dto.PurchaseOrderPatch{Status: strPtr(entity.OrderStatusCompleted)})
	assert.ErrorIs(t, err, domain.ErrConflict, "cancelada no puede completarse")
	assert.Empty(t, store.Movements)
}

func TestUpdateOrder_CantidadSoloEnPendiente(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", 5, 2, 100)
	sembrarOrden(store, "o1", "u1", "p1", entity.OrderStatusCompleted, 10, "")
	uc := armarCasoDeUso(store, &notifierSpy{})

	_, err := uc.UpdateOrder(context.Background(), "u1", "o1", dto.PurchaseOrderPatch{QuantityOrdered: i64Ptr(99)})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Las notas sí se pueden tocar en cualquier estado
	out, err := uc.UpdateOrder(context.Background(), "u1", "o1", dto.PurchaseOrderPatch{Notes: strPtr("llegó completa")})
	require.NoError(t, err)
	assert.Equal(t, "llegó completa", out.Notes)
}

func TestUpdateOrder_PatchInvalido(t *testing.T) {
	store := apptest.NewStore()
	uc := armarCasoDeUso(store, &notifierSpy{})

	_, err := uc.UpdateOrder(context.Background(), "u1", "o1", dto.PurchaseOrderPatch{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "patch vacío")

	_, err = uc.UpdateOrder(context.Background(), "u1", "o1", dto.PurchaseOrderPatch{Status: strPtr("enviada")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado desconocido")

	_, err = uc.UpdateOrder(context.Background(), "u1", "o1", dto.PurchaseOrderPatch{QuantityOrdered: i64Ptr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateGroup_CompletaTodasYSaltaLasYaCompletadas(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", 0, 2, 100)
	sembrarProducto(store, "p2", "u1", 7, 2, 100)
	sembrarOrden(store, "o1", "u1", "p1", entity.OrderStatusPending, 4, "g1")
	sembrarOrden(store, "o2", "u1", "p2", entity.OrderStatusCompleted, 9, "g1")
	uc := armarCasoDeUso(store, &notifierSpy{})

	out, err := uc.UpdateGroup(context.Background(), "u1", "g1", dto.PurchaseOrderPatch{Status: strPtr(entity.OrderStatusCompleted)})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, int64(4), store.Products["p1"].Quantity, "la pendiente aplica su reposición")
	assert.Equal(t, int64(7), store.Products["p2"].Quantity, "la ya completada no re-aplica")
	assert.Len(t, store.Movements, 1)
	assert.Contains(t, store.Movements[0].Notes, "g1", "las notas identifican el grupo")
}

func TestUpdateGroup_GrupoInexistente(t *testing.T) {
	store := apptest.NewStore()
	uc := armarCasoDeUso(store, &notifierSpy{})

	_, err := uc.UpdateGroup(context.Background(), "u1", "nope", dto.PurchaseOrderPatch{Status: strPtr(entity.OrderStatusCancelled)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteOrder_CompletadaEsConflicto(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", 5, 2, 100)
	sembrarOrden(store, "o1", "u1", "p1", entity.OrderStatusCompleted, 10, "")
	sembrarOrden(store, "o2", "u1", "p1", entity.OrderStatusPending, 3, "")
	uc := armarCasoDeUso(store, &notifierSpy{})

	err := uc.DeleteOrder(context.Background(), "u1", "o1")
	assert.ErrorIs(t, err, domain.ErrConflict, "una orden completada ya escribió en el libro")
	assert.Contains(t, store.Orders, "o1")

	require.NoError(t, uc.DeleteOrder(context.Background(), "u1", "o2"))
	assert.NotContains(t, store.Orders, "o2")
}

func TestSummary_MetricasDelTablero(t *testing.T) {
	store := apptest.NewStore()
	sembrarProducto(store, "p1", "u1", 0, 5, 100)  // agotado
	sembrarProducto(store, "p2", "u1", 3, 5, 200)  // stock bajo
	sembrarProducto(store, "p3", "u1", 50, 5, 10)  // sano
	sembrarOrden(store, "o1", "u1", "p1", entity.OrderStatusPending, 4, "")
	sembrarOrden(store, "o2", "u1", "p2", entity.OrderStatusPending, 2, "")
	sembrarOrden(store, "o3", "u1", "p3", entity.OrderStatusCancelled, 9, "")
	uc := armarCasoDeUso(store, &notifierSpy{})

	out, err := uc.Summary(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, int64(2), out.PendingOrders)
	assert.Equal(t, int64(1), out.LowStockItems)
	assert.Equal(t, int64(1), out.OutOfStockItems)
	// 4*100 + 2*200 al precio actual
	assert.True(t, out.TotalPendingValue.Equal(decimal.NewFromInt(800)), "valor al precio vigente, se obtuvo %s", out.TotalPendingValue)
}

func TestListOrders_EstadoInvalido(t *testing.T) {
	store := apptest.NewStore()
	uc := armarCasoDeUso(store, &notifierSpy{})

	_, err := uc.ListOrders(context.Background(), "u1", "enviada", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
