package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/gestao-api/internal/application/dto"
)

// columnas esperadas en la planilla; el orden del encabezado es libre.
var catalogColumns = []string{"name", "type", "unit", "quantity", "price", "minStock", "description"}

// readCatalog lee la planilla de materiales exportada como CSV con separador ';'.
// Las exportaciones de planillas en Windows suelen venir en ISO-8859-1.
func readCatalog(r io.Reader, latin1 bool) ([]dto.CreateMaterialRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range catalogColumns[:3] {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("columna obligatoria ausente: %s", c)
		}
	}

	field := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	number := func(rec []string, col string) dto.Number {
		if v := field(rec, col); v != "" {
			return dto.NumberOf(v)
		}
		return dto.Number{}
	}

	var out []dto.CreateMaterialRequest
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if field(rec, "name") == "" {
			continue // filas vacías al final de la planilla
		}
		out = append(out, dto.CreateMaterialRequest{
			Name:        field(rec, "name"),
			Type:        field(rec, "type"),
			Unit:        field(rec, "unit"),
			Description: field(rec, "description"),
			Quantity:    number(rec, "quantity"),
			Price:       number(rec, "price"),
			MinStock:    number(rec, "minStock"),
		})
	}
	return out, nil
}
