package restock

import "github.com/jhoicas/mistock-api/internal/domain/entity"

// Notifier encola el resumen de órdenes de un lote para entrega por email.
// El contrato es fire-and-forget: encolar después del commit, nunca bloquear
// la respuesta ni propagar fallos de entrega (a lo sumo una vez).
type Notifier interface {
	EnqueueOrderSummary(recipient, displayName string, orders []*entity.PurchaseOrder)
}
