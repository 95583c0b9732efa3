package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mistock-api/internal/application/analytics"
	"github.com/jhoicas/mistock-api/internal/application/csvrow"
	"github.com/jhoicas/mistock-api/internal/application/dto"
	"github.com/jhoicas/mistock-api/internal/application/sales"
)

// SalesHandler maneja ventas individuales, importación CSV y resumen (protegido).
type SalesHandler struct {
	uc          *sales.SaleUseCase
	analyticsUC *analytics.AnalyticsUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *sales.SaleUseCase, analyticsUC *analytics.AnalyticsUseCase) *SalesHandler {
	return &SalesHandler{uc: uc, analyticsUC: analyticsUC}
}

// RecordSale godoc
// @Summary      Registrar una venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.RecordSaleRequest  true  "Cantidad y fecha opcional"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/sales [post]
func (h *SalesHandler) RecordSale(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordSale(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListProductSales godoc
// @Summary      Ventas de un producto
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/sales [get]
func (h *SalesHandler) ListProductSales(c *fiber.Ctx) error {
	out, err := h.uc.ListProductSales(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListSales godoc
// @Summary      Listar ventas del usuario
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SalesHandler) ListSales(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.ListSales(c.Context(), GetUserID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ImportSales godoc
// @Summary      Importar ventas desde CSV
// @Description  Multipart con campo file (CSV) y opcionalmente product_id o
// @Description  sku por defecto para filas sin identificador propio.
// @Tags         sales
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData  file    true   "Archivo CSV"
// @Param        product_id  formData  string  false  "Producto por defecto"
// @Param        sku         formData  string  false  "SKU por defecto"
// @Success      200  {object}  dto.SalesImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales/import [post]
func (h *SalesHandler) ImportSales(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo CSV requerido (campo file)"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	rows, err := csvrow.Read(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_CSV", Message: err.Error()})
	}

	out, err := h.uc.ImportSales(c.Context(), GetUserID(c), rows, c.FormValue("product_id"), c.FormValue("sku"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesSummary godoc
// @Summary      Resumen global de ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesSummaryDTO
// @Router       /api/sales/summary [get]
func (h *SalesHandler) SalesSummary(c *fiber.Ctx) error {
	out, err := h.analyticsUC.SalesSummary(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
