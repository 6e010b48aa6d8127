package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	Fields    map[string]string `json:"fields,omitempty"`
	Shortages []domain.Shortage `json:"shortages,omitempty"`
}

// ListFilter filtros opcionales de los listados.
type ListFilter struct {
	Q        string `query:"q"`
	Type     string `query:"type"`
	Status   string `query:"status"`
	LowStock bool   `query:"lowStock"`
}

// Number campo numérico de entrada: acepta número JSON o texto ("12.5", "12,5").
// Solo guarda el texto; la conversión y sus errores ocurren en la validación.
type Number struct {
	raw string
	set bool
}

// NumberOf construye un Number a partir de su texto.
func NumberOf(raw string) Number {
	return Number{raw: raw, set: true}
}

// UnmarshalJSON nunca falla: lo que no sea número queda como texto y se rechaza al validar.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = Number{}
		return nil
	}
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			raw = s
		}
	}
	*n = Number{raw: strings.TrimSpace(raw), set: true}
	return nil
}

// MarshalJSON emite el texto tal cual si es un número JSON válido, si no como string.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	if json.Valid([]byte(n.raw)) && n.raw != "" && (n.raw[0] == '-' || (n.raw[0] >= '0' && n.raw[0] <= '9')) {
		return []byte(n.raw), nil
	}
	return json.Marshal(n.raw)
}

// IsSet indica si el campo vino en el payload (null cuenta como ausente).
func (n Number) IsSet() bool { return n.set }

// Raw texto recibido, con coma decimal convertida a punto cuando no hay punto.
func (n Number) Raw() string {
	if strings.Contains(n.raw, ",") && !strings.Contains(n.raw, ".") {
		return strings.Replace(n.raw, ",", ".", 1)
	}
	return n.raw
}

// ContatoResponse cliente o vendedor embebido.
type ContatoResponse struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Email    string `json:"email,omitempty"`
	Telefone string `json:"telefone,omitempty"`
}

// ContatoFrom mapea la vista reducida; nil si no hay datos.
func ContatoFrom(c *entity.Contato) *ContatoResponse {
	if c == nil {
		return nil
	}
	return &ContatoResponse{ID: c.ID, Nome: c.Nome, Email: c.Email, Telefone: c.Telefone}
}
