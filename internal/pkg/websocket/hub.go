package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Evento is a domain event rebroadcast to connected clients.
type Evento struct {
	// Tipo names the event, e.g. "materia.creada" or "historial.actualizado"
	Tipo string `json:"tipo"`

	// Payload carries the event body, serialized as-is
	Payload interface{} `json:"payload,omitempty"`

	// Timestamp is when the event was published
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and fans domain events out
// to all of them. It is the only WebSocket-facing component services
// talk to; they publish events and never see individual connections.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Inbound events to broadcast
	broadcast chan *Evento

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Evento, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case evento := <-h.broadcast:
			h.broadcastEvento(evento)
		}
	}
}

// Publish queues a domain event for broadcast. It never blocks the
// caller beyond the buffered channel.
func (h *Hub) Publish(tipo string, payload interface{}) {
	evento := &Evento{Tipo: tipo, Payload: payload, Timestamp: time.Now()}
	select {
	case h.broadcast <- evento:
	default:
		h.logger.Warn().Str("tipo", tipo).Msg("Event broadcast buffer full, dropping event")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("WebSocket client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		h.logger.Info().
			Int64("userID", client.userID).
			Msg("WebSocket client unregistered")
	}
}

func (h *Hub) broadcastEvento(evento *Evento) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(evento)
	if err != nil {
		h.logger.Error().Err(err).Str("tipo", evento.Tipo).Msg("Failed to marshal event for broadcast")
		return
	}

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// Slow client: drop the event for this connection rather
			// than blocking the hub loop.
			h.logger.Warn().Int64("userID", client.userID).Msg("Dropping event for slow client")
		}
	}

	h.logger.Debug().
		Str("tipo", evento.Tipo).
		Int("clientCount", len(h.clients)).
		Msg("Event broadcast to clients")
}
