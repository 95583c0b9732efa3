// Package sales contiene el procesador de ventas: venta individual e
// importación masiva desde filas CSV, siempre a través del Ledger Writer.
package sales

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

// SaleUseCase registra ventas de forma transaccional: la fila de venta y su
// movimiento de stock se confirman o se revierten juntos.
type SaleUseCase struct {
	txRunner ledger.TxRunner
	writer   *ledger.Writer
	saleRepo repository.ProductSaleRepository // lecturas fuera de tx
	prodRepo repository.ProductRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner ledger.TxRunner,
	writer *ledger.Writer,
	saleRepo repository.ProductSaleRepository,
	prodRepo repository.ProductRepository,
) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, writer: writer, saleRepo: saleRepo, prodRepo: prodRepo}
}

// RecordSale valida y confirma una venta contra el stock disponible.
// El precio de venta es una foto del precio actual del producto, nunca lo
// aporta el caller. Si el paso del libro falla, la venta también se revierte.
func (uc *SaleUseCase) RecordSale(ctx context.Context, userID, productID string, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if productID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.SaleResponse
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.ProductSaleRepository,
		_ repository.PurchaseOrderRepository,
		_ repository.SupplierRepository,
	) error {
		now := time.Now()
		sale, err := recordOne(movRepo, productRepo, saleRepo, uc.writer, userID, productID, in.Quantity, in.SaleDate, now,
			fmt.Sprintf("Venta de %d unidades", in.Quantity))
		if err != nil {
			return err
		}
		out = toSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// recordOne bloquea el producto, verifica propiedad y stock, inserta la venta
// y registra el movimiento. Compartido entre la venta individual y el import.
func recordOne(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.ProductSaleRepository,
	writer *ledger.Writer,
	userID, productID string,
	quantity int64,
	saleDate *time.Time,
	now time.Time,
	notes string,
) (*entity.ProductSale, error) {
	product, err := productRepo.GetByOwnerForUpdate(productID, userID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.Quantity < quantity {
		return nil, domain.ErrInsufficientStock
	}

	date := now
	if saleDate != nil {
		date = *saleDate
	}
	sale := &entity.ProductSale{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		UserID:    userID,
		Quantity:  quantity,
		SalePrice: product.Price, // foto del precio vigente
		SaleDate:  date,
	}
	if err := saleRepo.Create(sale); err != nil {
		return nil, err
	}

	if _, err := writer.RecordInTx(movRepo, productRepo, product, ledger.MovementInput{
		UserID:          userID,
		MovementType:    entity.MovementTypeSale,
		QuantityChange:  -quantity,
		ReferenceID:     sale.ID,
		ReferenceType:   entity.ReferenceTypeSale,
		Notes:           notes,
		TransactionDate: saleDate,
		Now:             now,
	}); err != nil {
		return nil, err
	}
	return sale, nil
}

// ListSales lista las ventas del usuario, más reciente primero.
func (uc *SaleUseCase) ListSales(ctx context.Context, userID string, limit, offset int) ([]*dto.SaleResponse, error) {
	sales, err := uc.saleRepo.ListByOwner(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// ListProductSales lista las ventas de un producto del usuario.
func (uc *SaleUseCase) ListProductSales(ctx context.Context, userID, productID string) ([]*dto.SaleResponse, error) {
	product, err := uc.prodRepo.GetByOwner(productID, userID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	sales, err := uc.saleRepo.ListByProduct(productID, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

func toSaleResponse(s *entity.ProductSale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:        s.ID,
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		SalePrice: s.SalePrice,
		SaleDate:  s.SaleDate,
	}
}
