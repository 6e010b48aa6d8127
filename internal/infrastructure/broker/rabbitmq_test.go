package broker

import (
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-api/internal/application/events"
	"github.com/jhoicas/gestao-api/pkg/logger"
)

func TestEncode(t *testing.T) {
	ev := events.Event{
		Type:       events.VendaCriada,
		OccurredAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Payload:    map[string]any{"id": "v1", "total": "0.50"},
	}

	msg, err := encode(ev)
	require.NoError(t, err)

	assert.Equal(t, contentTypeJSON, msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, events.VendaCriada, msg.Type)
	assert.Equal(t, events.VendaCriada, msg.Headers["event"])

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, "venda.criada", got["type"])
	assert.Equal(t, "2026-03-10T12:00:00Z", got["occurredAt"])
	assert.Equal(t, "0.50", got["payload"].(map[string]any)["total"])
}

func TestEncode_PayloadInvalido(t *testing.T) {
	_, err := encode(events.Event{Type: "x", Payload: make(chan int)})
	assert.Error(t, err)
}

// ackSpy registra los acks que el consumer envía al broker.
type ackSpy struct {
	acked []uint64
}

func (a *ackSpy) Ack(tag uint64, _ bool) error {
	a.acked = append(a.acked, tag)
	return nil
}
func (a *ackSpy) Nack(uint64, bool, bool) error { return nil }
func (a *ackSpy) Reject(uint64, bool) error     { return nil }

func TestDeliver_AckDespuesDelHandler(t *testing.T) {
	spy := &ackSpy{}
	c := &Consumer{log: logger.Nop()}

	var ackedAntes int
	c.deliver(amqp.Delivery{Acknowledger: spy, DeliveryTag: 7, Body: []byte(`{"type":"venda.criada"}`)}, func(b []byte) {
		ackedAntes = len(spy.acked)
		assert.JSONEq(t, `{"type":"venda.criada"}`, string(b))
	})

	assert.Equal(t, 0, ackedAntes)
	assert.Equal(t, []uint64{7}, spy.acked)
}
