// Package restock contiene el motor de órdenes de compra: creación por
// lotes con group_id compartido, transiciones de estado que disparan la
// reposición vía el Ledger Writer, y el resumen del tablero de reposición.
package restock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/mistock-api/internal/application/dto"
	"github.com/jhoicas/mistock-api/internal/application/ledger"
	"github.com/jhoicas/mistock-api/internal/domain"
	"github.com/jhoicas/mistock-api/internal/domain/entity"
	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

// PurchaseOrderUseCase ciclo de vida de órdenes: pending → completed | cancelled.
// Los estados terminales están congelados; re-completar una orden completada
// nunca vuelve a aplicar la reposición.
type PurchaseOrderUseCase struct {
	txRunner  ledger.TxRunner
	writer    *ledger.Writer
	orderRepo repository.PurchaseOrderRepository // lecturas fuera de tx
	prodRepo  repository.ProductRepository
	userRepo  repository.UserRepository
	notifier  Notifier
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	txRunner ledger.TxRunner,
	writer *ledger.Writer,
	orderRepo repository.PurchaseOrderRepository,
	prodRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner:  txRunner,
		writer:    writer,
		orderRepo: orderRepo,
		prodRepo:  prodRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// CreateBatch crea varias órdenes en una transacción con un group_id nuevo
// compartido. A diferencia del import CSV de ventas (mejor esfuerzo por
// fila), el lote de órdenes es todo o nada: una sola referencia inválida
// aborta el lote completo sin persistir nada.
//
// Tras el commit, las órdenes con notify_by_email se agregan en UNA sola
// notificación de resumen encolada al worker de email; un fallo de la
// notificación jamás afecta las órdenes ya confirmadas.
func (uc *PurchaseOrderUseCase) CreateBatch(ctx context.Context, userID string, in dto.PurchaseOrderBatchRequest) ([]*dto.PurchaseOrderResponse, error) {
	if len(in.Orders) == 0 {
		return nil, domain.ErrInvalidInput
	}

	groupID := uuid.New().String()
	now := time.Now()
	created := make([]*entity.PurchaseOrder, 0, len(in.Orders))

	err := uc.txRunner.Run(ctx, func(
		_ repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.ProductSaleRepository,
		orderRepo repository.PurchaseOrderRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		for _, item := range in.Orders {
			if item.QuantityOrdered <= 0 {
				return domain.ErrInvalidInput
			}
			product, err := productRepo.GetByOwner(item.ProductID, userID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if item.SupplierID != "" {
				supplier, err := supplierRepo.GetByOwner(item.SupplierID, userID)
				if err != nil {
					return err
				}
				if supplier == nil {
					return domain.ErrNotFound
				}
			}
			order := &entity.PurchaseOrder{
				ID:              uuid.New().String(),
				UserID:          userID,
				ProductID:       item.ProductID,
				SupplierID:      item.SupplierID,
				QuantityOrdered: item.QuantityOrdered,
				Status:          entity.OrderStatusPending,
				OrderDate:       now,
				Notes:           item.Notes,
				NotifyByEmail:   item.NotifyByEmail,
				GroupID:         groupID,
			}
			if err := orderRepo.Create(order); err != nil {
				return err
			}
			created = append(created, order)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifyAfterCommit(userID, created)

	out := make([]*dto.PurchaseOrderResponse, 0, len(created))
	for _, o := range created {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// notifyAfterCommit encola un único resumen para las órdenes que pidieron
// notificación. Cualquier problema se ignora: la creación ya está confirmada.
func (uc *PurchaseOrderUseCase) notifyAfterCommit(userID string, orders []*entity.PurchaseOrder) {
	var notify []*entity.PurchaseOrder
	for _, o := range orders {
		if o.NotifyByEmail {
			notify = append(notify, o)
		}
	}
	if len(notify) == 0 || uc.notifier == nil {
		return
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil || user == nil || user.Email == "" {
		return
	}
	uc.notifier.EnqueueOrderSummary(user.Email, user.FullName, notify)
}

// UpdateOrder aplica un patch a una orden. La transición a completed registra
// la reposición (+quantity_ordered) en el libro dentro de la misma tx que el
// cambio de estado. Salir de un estado terminal retorna ErrConflict.
func (uc *PurchaseOrderUseCase) UpdateOrder(ctx context.Context, userID, orderID string, patch dto.PurchaseOrderPatch) (*dto.PurchaseOrderResponse, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	var out *dto.PurchaseOrderResponse
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.ProductSaleRepository,
		orderRepo repository.PurchaseOrderRepository,
		_ repository.SupplierRepository,
	) error {
		order, err := orderRepo.GetByOwnerForUpdate(orderID, userID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if err := uc.applyPatch(movRepo, productRepo, orderRepo, order, patch, userID, ""); err != nil {
			return err
		}
		out = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateGroup aplica el mismo patch a todas las órdenes del grupo en una
// transacción. La reposición se registra POR ORDEN: cada movimiento captura
// el antes/después propio de esa orden, no un agregado del grupo. Las
// órdenes que ya están en el estado pedido se dejan como están (el completado
// de grupo es idempotente); una orden terminal con un estado distinto pedido
// aborta el grupo completo con ErrConflict.
func (uc *PurchaseOrderUseCase) UpdateGroup(ctx context.Context, userID, groupID string, patch dto.PurchaseOrderPatch) ([]*dto.PurchaseOrderResponse, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	var out []*dto.PurchaseOrderResponse
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.ProductSaleRepository,
		orderRepo repository.PurchaseOrderRepository,
		_ repository.SupplierRepository,
	) error {
		orders, err := orderRepo.ListByGroupForUpdate(groupID, userID)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return domain.ErrNotFound
		}
		out = make([]*dto.PurchaseOrderResponse, 0, len(orders))
		for _, order := range orders {
			if err := uc.applyPatch(movRepo, productRepo, orderRepo, order, patch, userID, groupID); err != nil {
				return err
			}
			out = append(out, toOrderResponse(order))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func validatePatch(patch dto.PurchaseOrderPatch) error {
	if patch.Status == nil && patch.QuantityOrdered == nil && patch.Notes == nil {
		return domain.ErrInvalidInput
	}
	if patch.Status != nil && !entity.ValidOrderStatus(*patch.Status) {
		return domain.ErrInvalidInput
	}
	if patch.QuantityOrdered != nil && *patch.QuantityOrdered <= 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// applyPatch muta la orden dentro de la tx y registra la reposición cuando la
// transición resultante es a completed. Una orden ya en el estado pedido no
// vuelve a transicionar (y por tanto no re-aplica reposición).
func (uc *PurchaseOrderUseCase) applyPatch(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
	order *entity.PurchaseOrder,
	patch dto.PurchaseOrderPatch,
	userID, groupID string,
) error {
	if patch.QuantityOrdered != nil && *patch.QuantityOrdered != order.QuantityOrdered {
		if order.Status != entity.OrderStatusPending {
			return domain.ErrConflict
		}
		order.QuantityOrdered = *patch.QuantityOrdered
	}
	if patch.Notes != nil {
		order.Notes = *patch.Notes
	}

	completing := false
	if patch.Status != nil && *patch.Status != order.Status {
		if entity.TerminalOrderStatus(order.Status) {
			return domain.ErrConflict
		}
		order.Status = *patch.Status
		completing = order.Status == entity.OrderStatusCompleted
	}

	if err := orderRepo.Update(order); err != nil {
		return err
	}
	if !completing {
		return nil
	}

	product, err := productRepo.GetByOwnerForUpdate(order.ProductID, userID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	notes := fmt.Sprintf("Reposición por orden de compra #%s", order.ID)
	if groupID != "" {
		notes = fmt.Sprintf("Reposición por orden de compra #%s (grupo %s)", order.ID, groupID)
	}
	_, err = uc.writer.RecordInTx(movRepo, productRepo, product, ledger.MovementInput{
		UserID:         userID,
		MovementType:   entity.MovementTypeRestock,
		QuantityChange: order.QuantityOrdered,
		ReferenceID:    order.ID,
		ReferenceType:  entity.ReferenceTypePurchaseOrder,
		Notes:          notes,
		Now:            time.Now(),
	})
	return err
}

// GetOrder obtiene una orden del usuario.
func (uc *PurchaseOrderUseCase) GetOrder(ctx context.Context, userID, orderID string) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.orderRepo.GetByOwner(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// ListOrders lista las órdenes del usuario, opcionalmente filtradas por estado.
func (uc *PurchaseOrderUseCase) ListOrders(ctx context.Context, userID, status string, limit, offset int) ([]*dto.PurchaseOrderResponse, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	orders, err := uc.orderRepo.ListByOwner(userID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// DeleteOrder elimina una orden que aún no ha generado reposición.
// Una orden completada ya escribió en el libro: borrarla dejaría un
// movimiento referenciando una orden inexistente, así que es ErrConflict.
func (uc *PurchaseOrderUseCase) DeleteOrder(ctx context.Context, userID, orderID string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		_ repository.ProductSaleRepository,
		orderRepo repository.PurchaseOrderRepository,
		_ repository.SupplierRepository,
	) error {
		order, err := orderRepo.GetByOwnerForUpdate(orderID, userID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusCompleted {
			return domain.ErrConflict
		}
		return orderRepo.Delete(order.ID)
	})
}

// Summary métricas del tablero de reposición: órdenes pendientes y su valor
// al precio ACTUAL de cada producto, productos con stock bajo y agotados.
func (uc *PurchaseOrderUseCase) Summary(ctx context.Context, userID string) (*dto.RestockSummary, error) {
	pendingCount, pendingValue, err := uc.orderRepo.PendingSummary(userID)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.prodRepo.LowStockCount(userID)
	if err != nil {
		return nil, err
	}
	outOfStock, err := uc.prodRepo.OutOfStockCount(userID)
	if err != nil {
		return nil, err
	}
	return &dto.RestockSummary{
		PendingOrders:     pendingCount,
		LowStockItems:     lowStock,
		OutOfStockItems:   outOfStock,
		TotalPendingValue: pendingValue,
	}, nil
}

func toOrderResponse(o *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	return &dto.PurchaseOrderResponse{
		ID:              o.ID,
		ProductID:       o.ProductID,
		SupplierID:      o.SupplierID,
		QuantityOrdered: o.QuantityOrdered,
		Status:          o.Status,
		OrderDate:       o.OrderDate,
		Notes:           o.Notes,
		NotifyByEmail:   o.NotifyByEmail,
		GroupID:         o.GroupID,
	}
}
