// Package pdf genera el documento imprimible del presupuesto (orçamento).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa                 │  N° Orçamento + Data      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nome + contato                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Qtd | Descrição (+ materiais) | Unitário | Subtotal │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + Observações                                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestao-api/internal/application/orcamento"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
)

var _ orcamento.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 72, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implementa orcamento.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	empresa string
}

// NewMarotoPDFGenerator construye el generador; empresa aparece en el encabezado.
func NewMarotoPDFGenerator(empresa string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{empresa: empresa}
}

// GenerateOrcamento genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOrcamento(o *entity.Orcamento) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orçamento "+o.Numero, true).
		WithAuthor(g.empresa, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.empresa, o))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(o.Cliente))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, it := range o.Itens {
		m.AddRows(itemRows(it)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(o.ValorTotal))
	if o.Observacoes != "" {
		m.AddRows(observacoesRow(o.Observacoes))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(empresa string, o *entity.Orcamento) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(empresa, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Status: "+o.Status, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("ORÇAMENTO", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(o.Numero, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Data: "+o.Data.Format("02/01/2006"), props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func clienteRow(c *entity.Contato) core.Row {
	nome, contato := "-", ""
	if c != nil {
		nome = c.Nome
		contato = fmt.Sprintf("E-mail: %s   |   Tel: %s", nonEmpty(c.Email, "-"), nonEmpty(c.Telefone, "-"))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nome, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(contato, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 1, align.Center),
		h("Descrição", 6, align.Left),
		h("Unitário", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// itemRows una fila por ítem y una línea gris por material previsto.
func itemRows(it entity.OrcamentoItem) []core.Row {
	rows := []core.Row{row.New(7).Add(
		col.New(1).Add(text.New(formatQty(it.Quantidade), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(6).Add(text.New(it.Descricao, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(formatBRL(it.ValorUnitario), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(formatBRL(it.Quantidade.Mul(it.ValorUnitario)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)}
	for _, m := range it.Materiais {
		nome, unidade := m.MaterialID, ""
		if m.Material != nil {
			nome, unidade = m.Material.Name, m.Material.Unit
		}
		rows = append(rows, row.New(5).Add(
			col.New(1),
			col.New(11).Add(text.New(
				strings.TrimSpace(fmt.Sprintf("• %s: %s %s", nome, formatQty(m.Quantidade), unidade)),
				props.Text{Size: 7, Color: colorGray, Left: 3},
			)),
		))
	}
	return rows
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3, Right: 2})),
		col.New(3).Add(text.New(formatBRL(total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 3, Right: 1})),
	)
}

func observacoesRow(obs string) core.Row {
	return row.New(20).Add(col.New(12).Add(
		text.New("OBSERVAÇÕES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		text.New(obs, props.Text{Size: 8, Top: 7, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatBRL formato monetario brasileño. Ej: 1234567.5 → "R$ 1.234.567,50"
func formatBRL(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "R$ " + groupThousands(intPart) + "," + frac
}

// formatQty cantidad sin ceros sobrantes y con coma decimal. Ej: 2.500 → "2,5"
func formatQty(d decimal.Decimal) string {
	return strings.Replace(d.String(), ".", ",", 1)
}

// groupThousands inserta puntos de miles. Ej: "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
