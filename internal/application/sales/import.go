package sales

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/mistock-api/internal/application/csvrow"
	"github.com/jhoicas/mistock-api/internal/application/dto"
	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

// Alias de encabezado aceptados para la columna SKU.
var skuHeaderAliases = []string{"sku", "SKU", "Sku", "sku_id", "SKU_ID", "product_sku", "productSKU"}

// Formatos de fecha de respaldo cuando el valor no es ISO-8601.
var fallbackDateFormats = []string{"2006-01-02", "01/02/2006", "02/01/2006"}

// ImportSales procesa filas de ventas en un solo lote transaccional.
//
// Resolución del producto por fila: columna SKU (varios alias de encabezado)
// → defaultProductID del request → defaultSKU del request → error de fila.
// Orden de validación: identificador, presencia de quantity, entero positivo,
// fecha opcional, existencia del producto, stock suficiente.
//
// Una fila inválida se registra en Errors con su número de línea 1-based y el
// proceso continúa: una fila mala nunca aborta el lote. Todas las filas
// válidas se confirman en UNA transacción; si la transacción misma falla, el
// lote completo se revierte y se reporta como un único error fatal.
func (uc *SaleUseCase) ImportSales(
	ctx context.Context,
	userID string,
	rows []csvrow.Row,
	defaultProductID, defaultSKU string,
) (*dto.SalesImportResult, error) {
	result := &dto.SalesImportResult{
		Errors:    []dto.ImportRowError{},
		TotalRows: len(rows),
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.ProductSaleRepository,
		_ repository.PurchaseOrderRepository,
		_ repository.SupplierRepository,
	) error {
		addError := func(line int, format string, args ...any) {
			result.Errors = append(result.Errors, dto.ImportRowError{
				Row:     line,
				Message: fmt.Sprintf(format, args...),
			})
		}

		for _, row := range rows {
			// 1. Identificador del producto
			productID := ""
			if rowSKU := row.Get(skuHeaderAliases...); rowSKU != "" {
				p, err := productRepo.GetBySKU(userID, rowSKU)
				if err != nil {
					return err
				}
				if p == nil {
					addError(row.Line, "producto con SKU '%s' no existe para el usuario", rowSKU)
					continue
				}
				productID = p.ID
			} else if defaultProductID != "" {
				productID = defaultProductID
			} else if defaultSKU != "" {
				p, err := productRepo.GetBySKU(userID, defaultSKU)
				if err != nil {
					return err
				}
				if p == nil {
					addError(row.Line, "producto con SKU '%s' no existe para el usuario (sku del formulario)", defaultSKU)
					continue
				}
				productID = p.ID
			} else {
				addError(row.Line, "sin SKU en el CSV y sin product_id/sku en el request")
				continue
			}

			// 2. Cantidad
			qtyRaw := row.Get("quantity")
			if qtyRaw == "" {
				addError(row.Line, "falta la columna 'quantity'")
				continue
			}
			quantity, err := strconv.ParseInt(qtyRaw, 10, 64)
			if err != nil {
				addError(row.Line, "cantidad inválida '%s': debe ser un número", qtyRaw)
				continue
			}
			if quantity <= 0 {
				addError(row.Line, "la cantidad debe ser positiva, se recibió %d", quantity)
				continue
			}

			// 3. Fecha opcional
			var saleDate *time.Time
			if dateRaw := row.Get("sale_date", "date"); dateRaw != "" {
				parsed, ok := parseSaleDate(dateRaw)
				if !ok {
					addError(row.Line, "formato de fecha inválido '%s', use YYYY-MM-DD", dateRaw)
					continue
				}
				saleDate = &parsed
			}

			// 4. Producto y stock (bloqueo de fila dentro de la tx del lote)
			product, err := productRepo.GetByOwnerForUpdate(productID, userID)
			if err != nil {
				return err
			}
			if product == nil {
				addError(row.Line, "producto con ID %s no existe", productID)
				continue
			}
			if product.Quantity < quantity {
				addError(row.Line, "stock insuficiente (disponible: %d, solicitado: %d)", product.Quantity, quantity)
				continue
			}

			// Un fallo aquí ya no es de validación: aborta y revierte el lote
			if _, err := recordOne(movRepo, productRepo, saleRepo, uc.writer, userID, productID, quantity, saleDate, time.Now(),
				fmt.Sprintf("Venta importada por CSV: %d unidades", quantity)); err != nil {
				return err
			}
			result.SalesCreated++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("procesar CSV: %w", err)
	}

	result.Message = fmt.Sprintf("Se importaron %d ventas", result.SalesCreated)
	return result, nil
}

// parseSaleDate intenta ISO-8601 primero (con o sin hora, la Z se normaliza)
// y luego la lista fija de formatos comunes.
func parseSaleDate(s string) (time.Time, bool) {
	iso := strings.Replace(s, "Z", "+00:00", 1)
	for _, layout := range []string{"2006-01-02T15:04:05-07:00", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, true
		}
	}
	for _, layout := range fallbackDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
