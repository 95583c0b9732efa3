package dto

import "time"

// AdjustmentRequest ajuste manual de stock: delta con signo distinto de cero.
type AdjustmentRequest struct {
	QuantityChange int64  `json:"quantity_change"`
	Notes          string `json:"notes"`
}

// MovementResponse representación de salida de un movimiento del libro.
type MovementResponse struct {
	ID              string     `json:"id"`
	ProductID       string     `json:"product_id"`
	MovementType    string     `json:"movement_type"`
	QuantityChange  int64      `json:"quantity_change"`
	QuantityBefore  int64      `json:"quantity_before"`
	QuantityAfter   int64      `json:"quantity_after"`
	ReferenceID     string     `json:"reference_id,omitempty"`
	ReferenceType   string     `json:"reference_type,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	TransactionDate *time.Time `json:"transaction_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
