// Package events define los eventos de dominio publicados después del commit.
package events

import (
	"context"
	"time"

	"github.com/jhoicas/gestao-api/pkg/logger"
)

// Tipos de evento.
const (
	VendaCriada          = "venda.criada"
	VendaExcluida        = "venda.excluida"
	MaterialEstoqueBaixo = "material.estoque_baixo"
)

const publishTimeout = 2 * time.Second

// Event mensaje publicado en la cola.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// New construye un evento con la hora actual.
func New(typ string, payload any) Event {
	return Event{Type: typ, OccurredAt: time.Now().UTC(), Payload: payload}
}

// Publisher puerto de salida hacia el broker.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Nop descarta los eventos (sin broker configurado).
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Emit publica sin propagar el error: la operación ya fue confirmada, solo se registra en el log.
// Usa un contexto desacoplado de la cancelación de la petición.
func Emit(ctx context.Context, p Publisher, log *logger.Logger, ev Event) {
	if p == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := p.Publish(pctx, ev); err != nil && log != nil {
		log.Warn().Err(err).Str("event", ev.Type).Msg("publicar evento")
	}
}
