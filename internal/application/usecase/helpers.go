package usecase

import (
	"errors"
	"time"

	"github.com/jhoicas/gestao-api/internal/application/validation"
	"github.com/jhoicas/gestao-api/internal/domain"
)

// checkID un id con formato inválido nunca existe: se reporta como no encontrado.
func checkID(recurso, id string) error {
	if !validation.ValidID(id) {
		return domain.NotFound(recurso, id)
	}
	return nil
}

// wrapNotFound agrega el recurso al ErrNotFound devuelto por el repositorio.
func wrapNotFound(err error, recurso, id string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound(recurso, id)
	}
	return err
}

func now() time.Time { return time.Now().UTC() }
