// Package validation acumula errores por campo y convierte la entrada textual en valores tipados.
// Todas las validaciones ocurren antes de cualquier mutación.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/domain"
)

// limite absoluto para cualquier número de entrada (NUMERIC(14,x) en la base).
var limite = decimal.New(1, 12)

const maxInt = 1_000_000_000

// Cotas del texto numérico. Comparar o redondear decimales con exponentes enormes cuesta
// tiempo proporcional al exponente, así que se rechazan antes de cualquier operación.
const (
	maxNumberLen = 32
	maxExponent  = 18
)

// Rule restricciones de un campo decimal. Todos los números del dominio son >= 0.
type Rule struct {
	Required bool
	Positive bool            // > 0 en lugar de >= 0
	Max      decimal.Decimal // cero = sin máximo
	Places   int32           // cero = sin límite de decimales
}

// Reglas de uso frecuente.
var (
	Money    = Rule{Required: true, Places: 2}
	Quantity = Rule{Required: true, Positive: true, Places: 3}
	Stock    = Rule{Required: true, Places: 3}
	Percent  = Rule{Required: true, Max: decimal.NewFromInt(100), Places: 2}
)

// Optional devuelve la misma regla sin obligatoriedad.
func (r Rule) Optional() Rule {
	r.Required = false
	return r
}

// Errors colector de errores por campo; conserva el primer mensaje de cada campo.
type Errors struct {
	fields map[string]string
}

// New crea un colector vacío.
func New() *Errors {
	return &Errors{fields: make(map[string]string)}
}

// Add registra un error de campo.
func (e *Errors) Add(field, msg string) {
	if _, ok := e.fields[field]; !ok {
		e.fields[field] = msg
	}
}

// Has indica si el campo ya tiene error.
func (e *Errors) Has(field string) bool {
	_, ok := e.fields[field]
	return ok
}

// Err devuelve nil o *domain.ValidationError.
func (e *Errors) Err() error {
	if len(e.fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return &domain.ValidationError{Fields: out}
}

// Required texto obligatorio (se devuelve recortado).
func (e *Errors) Required(field, v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		e.Add(field, "campo obrigatório")
	}
	return v
}

// Email valida el formato si no está vacío.
func (e *Errors) Email(field, v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !govalidator.IsEmail(v) {
		e.Add(field, "e-mail inválido")
	}
	return v
}

// OneOf valida contra los valores permitidos (sin distinguir mayúsculas) y devuelve la forma canónica.
func (e *Errors) OneOf(field, v string, allowed []string) string {
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if strings.EqualFold(a, v) {
			return a
		}
	}
	e.Add(field, fmt.Sprintf("valor inválido, use um de: %s", strings.Join(allowed, ", ")))
	return v
}

// ID referencia obligatoria con formato UUID.
func (e *Errors) ID(field, v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		e.Add(field, "campo obrigatório")
		return v
	}
	if !ValidID(v) {
		e.Add(field, "id inválido")
	}
	return v
}

// Decimal convierte n según la regla. Con error devuelve cero y registra el campo.
func (e *Errors) Decimal(field string, n dto.Number, r Rule) decimal.Decimal {
	if !n.IsSet() || n.Raw() == "" {
		if r.Required {
			e.Add(field, "campo obrigatório")
		}
		return decimal.Zero
	}
	d, ok := e.parse(field, n)
	if !ok {
		return decimal.Zero
	}
	switch {
	case d.Abs().GreaterThanOrEqual(limite):
		e.Add(field, "valor fora do intervalo permitido")
	case d.IsNegative():
		e.Add(field, "não pode ser negativo")
	case r.Positive && d.IsZero():
		e.Add(field, "deve ser maior que zero")
	case !r.Max.IsZero() && d.GreaterThan(r.Max):
		e.Add(field, "deve ser no máximo "+r.Max.String())
	case r.Places > 0 && !d.Equal(d.Round(r.Places)):
		e.Add(field, fmt.Sprintf("máximo de %d casas decimais", r.Places))
	default:
		return d
	}
	return decimal.Zero
}

// Int convierte n en entero >= min. "3.0" se acepta; "3.5" no.
func (e *Errors) Int(field string, n dto.Number, required bool, min int) int {
	if !n.IsSet() || n.Raw() == "" {
		if required {
			e.Add(field, "campo obrigatório")
		}
		return 0
	}
	d, ok := e.parse(field, n)
	if !ok {
		return 0
	}
	if !d.IsInteger() {
		e.Add(field, "deve ser um número inteiro")
		return 0
	}
	if d.GreaterThan(decimal.NewFromInt(maxInt)) {
		e.Add(field, "valor fora do intervalo permitido")
		return 0
	}
	if d.LessThan(decimal.NewFromInt(int64(min))) {
		e.Add(field, fmt.Sprintf("deve ser no mínimo %d", min))
		return 0
	}
	return int(d.IntPart())
}

// parse texto numérico acotado en longitud y exponente.
func (e *Errors) parse(field string, n dto.Number) (decimal.Decimal, bool) {
	raw := n.Raw()
	if len(raw) > maxNumberLen {
		e.Add(field, "valor fora do intervalo permitido")
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		e.Add(field, "número inválido")
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		e.Add(field, "valor fora do intervalo permitido")
		return decimal.Zero, false
	}
	return d, true
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// Date acepta RFC3339 o AAAA-MM-DD; vacío devuelve def.
func (e *Errors) Date(field, v string, def time.Time) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC()
		}
	}
	e.Add(field, "data inválida")
	return def
}

// Total rechaza totales calculados que no caben en la columna NUMERIC(14,2),
// aunque cada línea por separado sea válida.
func Total(field string, total decimal.Decimal) error {
	if total.Abs().GreaterThanOrEqual(limite) {
		return domain.Invalid(field, "total fora do intervalo permitido")
	}
	return nil
}

// ValidID indica si id tiene formato UUID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
