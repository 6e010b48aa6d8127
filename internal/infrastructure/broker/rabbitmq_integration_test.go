//go:build integration

package broker

// go test -tags=integration ./internal/infrastructure/broker -count=1

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/gestao-api/internal/application/events"
)

func TestRabbitMQ_PublicaYConsume(t *testing.T) {
	ctx := context.Background()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "rabbitmq:3.13",
			ExposedPorts: []string{"5672/tcp"},
			WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)
	uri := fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
	queue := "gestao_test"

	pub, err := NewPublisher(uri, queue)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	cons, err := NewConsumer(uri, queue, 10, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cons.Close() })

	got := make(chan []byte, 1)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = cons.Run(runCtx, func(b []byte) { got <- b }) }()

	require.NoError(t, pub.Publish(ctx, events.New(events.VendaExcluida, map[string]string{"id": "v1"})))

	select {
	case b := <-got:
		var ev map[string]any
		require.NoError(t, json.Unmarshal(b, &ev))
		assert.Equal(t, events.VendaExcluida, ev["type"])
	case <-time.After(10 * time.Second):
		t.Fatal("timeout esperando mensagem")
	}
}
