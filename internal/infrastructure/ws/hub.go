// Package ws reparte los eventos de dominio entre los clientes websocket conectados.
package ws

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/gestao-api/pkg/logger"
)

// Client conexión registrada en el hub. Send lo cierra el hub al desregistrar.
type Client struct {
	ID   string
	Send chan []byte
}

// Hub mantiene el conjunto de clientes; solo la goroutine de Run modifica el mapa.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client
	register chan *Client
	unreg    chan *Client
	sendAll  chan []byte

	log     *logger.Logger
	stop    chan struct{}
	stopped chan struct{}

	nextID atomic.Uint64
}

func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:  make(map[string]*Client),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		sendAll:  make(chan []byte, 1024),
		log:      log.Named("ws.hub"),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (h *Hub) newID() string {
	return fmt.Sprintf("c%d", h.nextID.Add(1))
}

func (h *Hub) Run() {
	h.log.Debug().Msg("hub iniciado")
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			if c.ID == "" {
				c.ID = h.newID()
			}
			h.mu.Lock()
			h.clients[c.ID] = c
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info().Str("id", c.ID).Int("total", total).Msg("cliente conectado")

		case c := <-h.unreg:
			if h.remove(c.ID) {
				h.log.Info().Str("id", c.ID).Int("total", h.Count()).Msg("cliente desconectado")
			}

		case msg := <-h.sendAll:
			var slow []string
			h.mu.RLock()
			for id, c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					slow = append(slow, id)
				}
			}
			h.mu.RUnlock()
			// cliente lento: se descarta para no bloquear al resto
			for _, id := range slow {
				if h.remove(id) {
					h.log.Warn().Str("id", id).Msg("cliente lento descartado")
				}
			}

		case <-h.stop:
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			h.log.Debug().Msg("hub detenido")
			return
		}
	}
}

func (h *Hub) remove(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[id]
	if !ok {
		return false
	}
	delete(h.clients, id)
	close(c.Send)
	return true
}

// Stop cierra todos los clientes y espera a que Run termine.
func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

// Count clientes conectados.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unreg <- c }
func (h *Hub) Broadcast(b []byte)   { h.sendAll <- b }
