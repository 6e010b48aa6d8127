package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso não encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflito com o estado atual")
	ErrInUse             = errors.New("recurso referenciado por outros registros")
	ErrInsufficientStock = errors.New("estoque insuficiente")
)

// ValidationError lista los campos rechazados. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError de un solo campo.
func Invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Shortage faltante de un producto en una venta.
type Shortage struct {
	ProdutoID  string `json:"produtoId"`
	Nome       string `json:"nome"`
	Disponivel int    `json:"disponivel"`
	Solicitado int    `json:"solicitado"`
}

// InsufficientStockError agrupa todos los productos sin estoque suficiente.
type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (disponível %d, solicitado %d)", s.Nome, s.Disponivel, s.Solicitado))
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientStock.Error(), strings.Join(parts, ", "))
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NotFound envuelve ErrNotFound con el recurso que falta.
func NotFound(recurso, id string) error {
	return fmt.Errorf("%s %s: %w", recurso, id, ErrNotFound)
}
