package csvrow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_NumeraLineasYDescartaVacias(t *testing.T) {
	csv := "sku,quantity\nABC,2\n,\nDEF,5\n"
	rows, err := Read(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, rows, 2, "la fila en blanco se descarta")
	assert.Equal(t, 2, rows[0].Line, "el encabezado cuenta como línea 1")
	assert.Equal(t, 4, rows[1].Line, "la fila descartada conserva la numeración original")
	assert.Equal(t, "DEF", rows[1].Get("sku"))
}

func TestRead_SinEncabezado(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestRead_FilasCortas(t *testing.T) {
	csv := "sku,quantity,sale_date\nABC,2\n"
	rows, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Get("sale_date"), "columna faltante se trata como ausente")
}

func TestGet_AliasYEspacios(t *testing.T) {
	row := Row{Line: 2, Values: map[string]string{"SKU": "  ABC  ", "sku": ""}}
	assert.Equal(t, "ABC", row.Get("sku", "SKU"), "toma el primer valor no vacío y recorta espacios")
	assert.Equal(t, "", row.Get("quantity"))
}
