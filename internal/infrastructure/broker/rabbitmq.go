// Package broker publica y consume los eventos de dominio en RabbitMQ.
package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/gestao-api/internal/application/events"
	"github.com/jhoicas/gestao-api/pkg/logger"
)

const contentTypeJSON = "application/json"

var _ events.Publisher = (*Publisher)(nil)

// Publisher envía eventos a una cola durable vía el exchange por defecto.
type Publisher struct {
	mu    sync.Mutex // el canal no admite publicaciones concurrentes
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewPublisher abre conexión y canal, y declara la cola.
func NewPublisher(uri, queue string) (*Publisher, error) {
	conn, ch, err := open(uri, queue)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, queue: queue}, nil
}

// Publish serializa el evento en JSON y lo publica como mensaje persistente.
func (p *Publisher) Publish(ctx context.Context, ev events.Event) error {
	msg, err := encode(ev)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("broker: publicar %s: %w", ev.Type, err)
	}
	return nil
}

// Close cierra canal y conexión.
func (p *Publisher) Close() error {
	var errCh, errConn error
	if p.ch != nil {
		errCh = p.ch.Close()
	}
	if p.conn != nil {
		errConn = p.conn.Close()
	}
	return errors.Join(errCh, errConn)
}

func encode(ev events.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("broker: serializar %s: %w", ev.Type, err)
	}
	return amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.OccurredAt,
		Type:         ev.Type,
		Body:         body,
		Headers:      amqp.Table{"event": ev.Type},
	}, nil
}

// Consumer lee la cola y entrega cada cuerpo a un handler.
type Consumer struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	queue    string
	prefetch int
	log      *logger.Logger
}

// NewConsumer abre conexión y canal con prefetch limitado.
func NewConsumer(uri, queue string, prefetch int, log *logger.Logger) (*Consumer, error) {
	if log == nil {
		log = logger.Nop()
	}
	conn, ch, err := open(uri, queue)
	if err != nil {
		return nil, err
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("broker: qos: %w", err)
	}
	return &Consumer{conn: conn, ch: ch, queue: queue, prefetch: prefetch, log: log.Named("broker.consumer")}, nil
}

// Run consume hasta que ctx se cancele o el broker cierre el canal. El ack es manual y se envía
// después de handle, así el prefetch limita los mensajes en vuelo.
func (c *Consumer) Run(ctx context.Context, handle func([]byte)) error {
	deliveries, err := c.ch.ConsumeWithContext(ctx, c.queue, "gestao-notifier", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("broker: consumir %s: %w", c.queue, err)
	}
	c.log.Info().Str("queue", c.queue).Int("prefetch", c.prefetch).Msg("consumer iniciado")
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("broker: canal de entregas cerrado")
			}
			c.deliver(d, handle)
		}
	}
}

func (c *Consumer) deliver(d amqp.Delivery, handle func([]byte)) {
	handle(d.Body)
	if err := d.Ack(false); err != nil {
		c.log.Warn().Err(err).Uint64("delivery_tag", d.DeliveryTag).Msg("ack falló")
	}
}

// Close cierra canal y conexión.
func (c *Consumer) Close() error {
	return errors.Join(c.ch.Close(), c.conn.Close())
}

func open(uri, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.DialConfig(uri, amqp.Config{Dial: amqp.DefaultDial(5 * time.Second)})
	if err != nil {
		return nil, nil, fmt.Errorf("broker: conectar: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("broker: canal: %w", err)
	}
	// durable, sin auto-delete, no exclusiva
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("broker: declarar cola %s: %w", queue, err)
	}
	return conn, ch, nil
}
