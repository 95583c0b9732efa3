package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mistock-api/internal/application/apptest"
	"github.com/jhoicas/mistock-api/internal/application/dto"
	"github.com/jhoicas/mistock-api/internal/domain"
	"github.com/jhoicas/mistock-api/internal/domain/entity"
)

func nuevoProductUseCase(store *apptest.Store) *ProductUseCase {
	return NewProductUseCase(
		&apptest.ProductRepo{S: store},
		&apptest.MovementRepo{S: store},
		&apptest.SaleRepo{S: store},
		&apptest.CategoryRepo{S: store},
		&apptest.SupplierRepo{S: store},
	)
}

func TestProductCreate_Exitoso(t *testing.T) {
	store := apptest.NewStore()
	store.Categories["c1"] = &entity.ProductCategory{ID: "c1", UserID: "u1", Name: "Bebidas"}
	uc := nuevoProductUseCase(store)

	out, err := uc.Create("u1", dto.CreateProductRequest{
		SKU:               "ABC-1",
		Name:              "Agua mineral",
		CategoryID:        "c1",
		Price:             decimal.RequireFromString("12.50"),
		Quantity:          30,
		LowStockThreshold: 5,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, int64(30), out.Quantity, "la cantidad inicial se fija al crear")
	require.Contains(t, store.Products, out.ID)
	assert.Empty(t, store.Movements, "la cantidad inicial no genera movimiento")
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	store := apptest.NewStore()
	store.Products["p1"] = &entity.Product{ID: "p1", UserID: "u1", SKU: "ABC-1", Name: "Existente"}
	uc := nuevoProductUseCase(store)

	_, err := uc.Create("u1", dto.CreateProductRequest{SKU: "ABC-1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El mismo SKU de otro usuario no choca
	_, err = uc.Create("u2", dto.CreateProductRequest{SKU: "ABC-1", Name: "Otro"})
	assert.NoError(t, err)
}

func TestProductCreate_EntradaInvalida(t *testing.T) {
	uc := nuevoProductUseCase(apptest.NewStore())

	_, err := uc.Create("u1", dto.CreateProductRequest{Name: "Sin SKU"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create("u1", dto.CreateProductRequest{SKU: "A", Name: "B", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create("u1", dto.CreateProductRequest{SKU: "A", Name: "B", Quantity: -3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_ReferenciaAjena(t *testing.T) {
	store := apptest.NewStore()
	store.Categories["c1"] = &entity.ProductCategory{ID: "c1", UserID: "otro", Name: "Bebidas"}
	uc := nuevoProductUseCase(store)

	_, err := uc.Create("u1", dto.CreateProductRequest{SKU: "A", Name: "B", CategoryID: "c1"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "categoría de otro usuario se reporta como inexistente")
}

func TestProductUpdate_PatchParcial(t *testing.T) {
	store := apptest.NewStore()
	store.Products["p1"] = &entity.Product{
		ID: "p1", UserID: "u1", SKU: "ABC", Name: "Original",
		Price: decimal.NewFromInt(100), Quantity: 7, LowStockThreshold: 2,
		LastUpdated: time.Now().Add(-time.Hour),
	}
	uc := nuevoProductUseCase(store)

	nuevoNombre := "Renombrado"
	nuevoPrecio := decimal.NewFromInt(150)
	out, err := uc.Update("u1", "p1", dto.UpdateProductRequest{Name: &nuevoNombre, Price: &nuevoPrecio})
	require.NoError(t, err)

	assert.Equal(t, "Renombrado", out.Name)
	assert.True(t, out.Price.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, int64(7), out.Quantity, "la cantidad no se toca por esta vía")
	assert.Equal(t, int64(2), out.LowStockThreshold, "los campos no enviados quedan igual")
}

func TestProductUpdate_NombreVacio(t *testing.T) {
	store := apptest.NewStore()
	store.Products["p1"] = &entity.Product{ID: "p1", UserID: "u1", SKU: "ABC", Name: "Original"}
	uc := nuevoProductUseCase(store)

	vacio := ""
	_, err := uc.Update("u1", "p1", dto.UpdateProductRequest{Name: &vacio})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductDelete_ConHistorialEsConflicto(t *testing.T) {
	store := apptest.NewStore()
	store.Products["p1"] = &entity.Product{ID: "p1", UserID: "u1", SKU: "ABC", Name: "Con historia"}
	store.Movements = append(store.Movements, &entity.StockMovement{ID: "m1", ProductID: "p1", UserID: "u1"})
	uc := nuevoProductUseCase(store)

	err := uc.Delete("u1", "p1")
	assert.ErrorIs(t, err, domain.ErrConflict, "los movimientos no pueden quedar huérfanos")
	assert.Contains(t, store.Products, "p1")
}

func TestProductDelete_ConVentasEsConflicto(t *testing.T) {
	store := apptest.NewStore()
	store.Products["p1"] = &entity.Product{ID: "p1", UserID: "u1", SKU: "ABC", Name: "Vendido"}
	store.Sales = append(store.Sales, &entity.ProductSale{ID: "s1", ProductID: "p1", UserID: "u1"})
	uc := nuevoProductUseCase(store)

	assert.ErrorIs(t, uc.Delete("u1", "p1"), domain.ErrConflict)
}

func TestProductDelete_SinHistorial(t *testing.T) {
	store := apptest.NewStore()
	store.Products["p1"] = &entity.Product{ID: "p1", UserID: "u1", SKU: "ABC", Name: "Limpio"}
	uc := nuevoProductUseCase(store)

	require.NoError(t, uc.Delete("u1", "p1"))
	assert.NotContains(t, store.Products, "p1")
}

func TestProductGetByID_AjenoEsInexistente(t *testing.T) {
	store := apptest.NewStore()
	store.Products["p1"] = &entity.Product{ID: "p1", UserID: "u1", SKU: "ABC", Name: "Privado"}
	uc := nuevoProductUseCase(store)

	_, err := uc.GetByID("u2", "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
