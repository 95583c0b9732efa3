// Package csvrow define la fuente de filas tabulares que consume la
// importación masiva: pares (número de línea, columna → valor). El motor de
// ventas trata las filas como un iterable opaco; la mecánica de parseo CSV
// vive en Read.
package csvrow

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ErrMissingHeader el archivo no tiene fila de encabezado.
var ErrMissingHeader = errors.New("el archivo CSV debe tener una fila de encabezado")

// Row es una fila con su número de línea original (1-based; el encabezado
// cuenta como línea 1, la primera fila de datos es la 2).
type Row struct {
	Line   int
	Values map[string]string
}

// Get devuelve el primer valor no vacío entre las claves dadas, con espacios
// recortados. Los valores en blanco se normalizan a "ausente" ("").
func (r Row) Get(keys ...string) string {
	for _, k := range keys {
		if v, ok := r.Values[k]; ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// Read parsea un CSV completo a filas normalizadas. Las claves se recortan;
// las filas vacías se descartan. Columnas de más que el encabezado se ignoran.
func Read(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerar filas cortas; se validan por columna
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingHeader
		}
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		values := make(map[string]string, len(header))
		empty := true
		for i, key := range header {
			if key == "" {
				continue
			}
			var v string
			if i < len(record) {
				v = strings.TrimSpace(record[i])
			}
			values[key] = v
			if v != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, Row{Line: line, Values: values})
	}
	return rows, nil
}
