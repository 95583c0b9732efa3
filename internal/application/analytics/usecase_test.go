package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mistock-api/internal/domain/repository"
)

// repoStub devuelve resultados enlatados y cuenta las llamadas a snapshot.
type repoStub struct {
	sales     []repository.CategorySalesResult
	inventory []repository.CategoryInventoryResult

	snapshotValue decimal.Decimal
	snapshotItems int64
	snapshotCalls []time.Time

	unitsByMonth map[string]int64

	totalRevenue decimal.Decimal
	totalUnits   int64
	topCategory  string
}

func (r *repoStub) GetCategorySales(ctx context.Context, userID string) ([]repository.CategorySalesResult, error) {
	return r.sales, nil
}

func (r *repoStub) GetCategoryInventory(ctx context.Context, userID string) ([]repository.CategoryInventoryResult, error) {
	return r.inventory, nil
}

func (r *repoStub) GetInventorySnapshot(ctx context.Context, userID string, cutoff time.Time) (decimal.Decimal, int64, error) {
	r.snapshotCalls = append(r.snapshotCalls, cutoff)
	return r.snapshotValue, r.snapshotItems, nil
}

func (r *repoStub) GetUnitsSoldBetween(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	return r.unitsByMonth[from.Format("2006-01")], nil
}

func (r *repoStub) GetSalesTotals(ctx context.Context, userID string) (decimal.Decimal, int64, error) {
	return r.totalRevenue, r.totalUnits, nil
}

func (r *repoStub) GetTopCategory(ctx context.Context, userID string) (string, error) {
	return r.topCategory, nil
}

func TestCategoriesRevenue_IncluyeCategoriasSinVentas(t *testing.T) {
	stub := &repoStub{
		sales: []repository.CategorySalesResult{
			{CategoryID: "c1", Category: "Bebidas", Revenue: decimal.NewFromInt(500), SalesUnits: 20},
		},
		inventory: []repository.CategoryInventoryResult{
			{CategoryID: "c1", Category: "Bebidas", Inventory: 30},
			{CategoryID: "c2", Category: "Snacks", Inventory: 12},
			{CategoryID: "c3", Category: "Limpieza", Inventory: 0},
		},
	}
	uc := NewAnalyticsUseCase(stub)

	out, err := uc.CategoriesRevenue(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "c1", out[0].CategoryID)
	assert.True(t, out[0].Revenue.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, int64(20), out[0].SalesUnits)
	assert.Equal(t, int64(30), out[0].Inventory, "el inventario viene de la consulta de categorías")

	// Sin ventas: ingresos cero pero presentes con su inventario
	assert.Equal(t, "c2", out[1].CategoryID)
	assert.True(t, out[1].Revenue.Equal(decimal.Zero))
	assert.Equal(t, int64(0), out[1].SalesUnits)
	assert.Equal(t, int64(12), out[1].Inventory)
	assert.Equal(t, int64(0), out[2].Inventory, "categoría vacía con inventario 0")
}

func TestCategoriesRevenue_SinDatos(t *testing.T) {
	uc := NewAnalyticsUseCase(&repoStub{})
	out, err := uc.CategoriesRevenue(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NotNil(t, out, "lista vacía, no nil")
}

func TestInventoryTrend_AcotaMeses(t *testing.T) {
	casos := []struct {
		meses  int
		puntos int
	}{
		{0, 6},
		{1, 1},
		{12, 12},
		{100, 24},
		{-5, 1},
	}
	for _, c := range casos {
		t.Run(fmt.Sprintf("meses=%d", c.meses), func(t *testing.T) {
			stub := &repoStub{snapshotValue: decimal.Zero}
			uc := NewAnalyticsUseCase(stub)
			out, err := uc.InventoryTrend(context.Background(), "u1", c.meses)
			require.NoError(t, err)
			assert.Len(t, out, c.puntos)
		})
	}
}

func TestInventoryTrend_OrdenYFormatoDeMes(t *testing.T) {
	stub := &repoStub{snapshotValue: decimal.NewFromInt(1000), snapshotItems: 10}
	uc := NewAnalyticsUseCase(stub)

	out, err := uc.InventoryTrend(context.Background(), "u1", 3)
	require.NoError(t, err)
	require.Len(t, out, 3)

	now := time.Now().UTC()
	for i, p := range out {
		// El más antiguo primero; el último punto es el mes en curso
		offset := -(2 - i)
		want := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
		assert.Equal(t, want.Format("2006-01"), p.YearMonth)
	}

	require.Len(t, stub.snapshotCalls, 3)
	// Cada corte es el último segundo del mes
	last := stub.snapshotCalls[2]
	assert.Equal(t, 23, last.Hour())
	assert.Equal(t, 59, last.Minute())
	assert.Equal(t, 59, last.Second())
}

func TestInventoryTrend_Rotacion(t *testing.T) {
	now := time.Now().UTC()
	mesActual := now.Format("2006-01")

	stub := &repoStub{
		snapshotValue: decimal.NewFromInt(5000),
		snapshotItems: 40,
		unitsByMonth:  map[string]int64{mesActual: 13},
	}
	uc := NewAnalyticsUseCase(stub)

	out, err := uc.InventoryTrend(context.Background(), "u1", 1)
	require.NoError(t, err)
	require.Len(t, out, 1)

	p := out[0]
	assert.Equal(t, int64(13), p.UnitsSold)
	assert.Equal(t, int64(40), p.TotalItems)
	// round(13/40*100) = round(32.5) = 33
	assert.Equal(t, int64(33), p.TurnoverRate)
	assert.True(t, p.TotalValue.Equal(decimal.NewFromInt(5000)))
}

func TestInventoryTrend_RotacionCeroSinItems(t *testing.T) {
	now := time.Now().UTC()
	stub := &repoStub{
		snapshotValue: decimal.Zero,
		snapshotItems: 0,
		unitsByMonth:  map[string]int64{now.Format("2006-01"): 7},
	}
	uc := NewAnalyticsUseCase(stub)

	out, err := uc.InventoryTrend(context.Background(), "u1", 1)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(0), out[0].TurnoverRate, "sin ítems no hay división")
	assert.Equal(t, int64(7), out[0].UnitsSold)
}

func TestSalesSummary(t *testing.T) {
	stub := &repoStub{
		totalRevenue: decimal.RequireFromString("1234.567"),
		totalUnits:   89,
		topCategory:  "Bebidas",
	}
	uc := NewAnalyticsUseCase(stub)

	out, err := uc.SalesSummary(context.Background(), "u1")
	require.NoError(t, err)

	assert.True(t, out.TotalRevenue.Equal(decimal.RequireFromString("1234.57")), "el ingreso se redondea a 2 decimales")
	assert.Equal(t, int64(89), out.TotalUnits)
	assert.Equal(t, "Bebidas", out.TopCategory)
}

func TestSalesSummary_SinVentas(t *testing.T) {
	uc := NewAnalyticsUseCase(&repoStub{totalRevenue: decimal.Zero})

	out, err := uc.SalesSummary(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, out.TotalRevenue.Equal(decimal.Zero))
	assert.Equal(t, "", out.TopCategory)
}
