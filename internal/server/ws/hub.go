package ws

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/bitenow/bitenow/internal/domain/model"
	"github.com/bitenow/bitenow/internal/notifier"
)

const writeWait = 10 * time.Second

// envelope is the wire frame pushed to connected clients.
type envelope struct {
	Event string      `json:"event"`
	Order model.Order `json:"order"`
}

// Hub fans order change events out to websocket clients. It subscribes to
// the broadcaster once and pushes every event to all open connections.
type Hub struct {
	changes  *notifier.Broadcaster
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	conns   map[*websocket.Conn]struct{}
	started bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewHub creates a hub over the given broadcaster.
func NewHub(changes *notifier.Broadcaster, logger *slog.Logger) *Hub {
	return &Hub{
		changes: changes,
		logger:  logger,
		conns:   make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Start launches the pump goroutine that forwards broadcaster events to
// connected clients.
func (h *Hub) Start(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.started {
		return
	}
	h.started = true

	ctx, h.cancel = context.WithCancel(ctx)
	h.done = make(chan struct{})

	events, unsubscribe := h.changes.Subscribe()
	go h.pump(ctx, events, unsubscribe)
}

func (h *Hub) pump(ctx context.Context, events <-chan model.Order, unsubscribe func()) {
	defer close(h.done)
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-events:
			if !ok {
				return
			}
			h.broadcast(order)
		}
	}
}

func (h *Hub) broadcast(order model.Order) {
	frame := envelope{Event: "orderUpdated", Order: order}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(frame); err != nil {
			h.logger.Debug("websocket write failed, dropping client", slog.String("error", err.Error()))
			h.drop(conn)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// Stop terminates the pump and closes every open connection.
func (h *Hub) Stop() {
	h.mu.Lock()
	if !h.started {
		h.mu.Unlock()
		return
	}
	h.started = false
	cancel := h.cancel
	done := h.done
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.conns = make(map[*websocket.Conn]struct{})
	h.mu.Unlock()

	cancel()
	<-done
	for _, conn := range conns {
		_ = conn.Close()
	}
}

// ClientCount reports the number of open connections.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Handler upgrades the request and registers the connection with the hub.
func (h *Hub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.logger.Debug("websocket upgrade failed", slog.String("error", err.Error()))
			return
		}

		h.mu.Lock()
		h.conns[conn] = struct{}{}
		h.mu.Unlock()

		// Reader goroutine: discard inbound frames, detect disconnect.
		go func() {
			defer h.drop(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
