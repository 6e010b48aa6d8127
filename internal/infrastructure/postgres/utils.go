package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/gestao-api/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeOutOfRange    = "22003"
	codeForeignKey    = "23503"
	codeUnique        = "23505"
	codeCheck         = "23514"
	codeSerialization = "40001"
	codeDeadlock      = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// writeError traduce errores de INSERT/UPDATE. FK en escritura = referencia inexistente;
// desbordamiento numérico = entrada fuera de la precisión de la columna.
func writeError(op string, err error) error {
	switch pgCode(err) {
	case codeOutOfRange:
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
	case codeForeignKey:
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case codeUnique, codeCheck, codeSerialization, codeDeadlock:
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// deleteError traduce errores de DELETE. FK en borrado = fila referenciada (RESTRICT).
func deleteError(op string, err error) error {
	switch pgCode(err) {
	case codeForeignKey:
		return fmt.Errorf("%s: %w", op, domain.ErrInUse)
	case codeSerialization, codeDeadlock:
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// readError envuelve errores de lectura; deadlocks y serialización son reintentables.
func readError(op string, err error) error {
	switch pgCode(err) {
	case codeSerialization, codeDeadlock:
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func affected(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
