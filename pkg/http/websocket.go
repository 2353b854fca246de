package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ShanawazS-bit/AI-Honeypot/pkg/pipeline"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 54 * time.Second
	clientBuffer   = 32
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsClient is one connected live-event subscriber.
type wsClient struct {
	conn *websocket.Conn
	send chan pipeline.ChunkEvent
}

// EventHub broadcasts per-chunk pipeline events to websocket clients so
// an operator dashboard can watch risk evolve in real time.
type EventHub struct {
	logger     *logrus.Logger
	clients    map[*wsClient]bool
	register   chan *wsClient
	unregister chan *wsClient
	broadcast  chan pipeline.ChunkEvent
	running    bool
	mu         sync.RWMutex
}

// NewEventHub creates a hub; call Run to start it.
func NewEventHub(logger *logrus.Logger) *EventHub {
	return &EventHub{
		logger:     logger,
		clients:    make(map[*wsClient]bool),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		broadcast:  make(chan pipeline.ChunkEvent, clientBuffer),
	}
}

// Run processes hub events until ctx is cancelled.
func (h *EventHub) Run(ctx context.Context) {
	h.mu.Lock()
	h.running = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.running = false
		for client := range h.clients {
			close(client.send)
			client.conn.Close()
			delete(h.clients, client)
		}
		h.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.WithField("clients", h.ClientCount()).Debug("Websocket client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if h.clients[client] {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
		case event := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- event:
				default:
					// Slow consumer, skip this event for it.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// ClientCount returns the number of connected subscribers.
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Observer returns a pipeline observer feeding this hub.
func (h *EventHub) Observer() pipeline.ChunkObserver {
	return func(event pipeline.ChunkEvent) {
		h.mu.RLock()
		running := h.running
		h.mu.RUnlock()
		if !running {
			return
		}
		select {
		case h.broadcast <- event:
		default:
			// Hub backlogged; live telemetry is best-effort.
		}
	}
}

// ServeWS upgrades an HTTP request into a live event subscription.
func (h *EventHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Error("Websocket upgrade failed")
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan pipeline.ChunkEvent, clientBuffer),
	}
	h.register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *EventHub) writePump(client *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case event, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *EventHub) readPump(client *wsClient) {
	defer func() {
		h.unregister <- client
		client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}
