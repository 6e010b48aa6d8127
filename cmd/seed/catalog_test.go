package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadCatalog(t *testing.T) {
	csv := "name;type;unit;quantity;price;minStock\n" +
		"MDF Branco 15mm;Chapa;chapa;8;189,90;10\n" +
		";;;;;\n" +
		"Dobradiça Caneco;Ferragem;un;120;4.5;\n"

	rows, err := readCatalog(strings.NewReader(csv), false)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "MDF Branco 15mm", rows[0].Name)
	assert.Equal(t, "189.90", rows[0].Price.Raw())
	assert.Equal(t, "10", rows[0].MinStock.Raw())
	assert.False(t, rows[1].MinStock.IsSet(), "celda vacía queda ausente")
}

func TestReadCatalog_Latin1(t *testing.T) {
	utf8 := "name;type;unit\nDobradiça;Ferragem;un\n"
	enc, err := charmap.ISO8859_1.NewEncoder().String(utf8)
	require.NoError(t, err)

	rows, err := readCatalog(bytes.NewBufferString(enc), true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Dobradiça", rows[0].Name)
}

func TestReadCatalog_ColumnaObligatoria(t *testing.T) {
	_, err := readCatalog(strings.NewReader("name;unit\nX;un\n"), false)
	assert.ErrorContains(t, err, "type")
}
