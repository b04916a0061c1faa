package spectate

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Read-only feed, any page may watch
	},
}

const writeWait = 2 * time.Second

// GameConfig is sent once to every new spectator
type GameConfig struct {
	GridSize   int   `json:"gridSize"`
	TickMillis int64 `json:"tickMillis"`
}

// ServerMessage is the envelope for everything written to a spectator
type ServerMessage struct {
	Type   string         `json:"type"`
	Config *GameConfig    `json:"config,omitempty"`
	State  *game.Snapshot `json:"state,omitempty"`
}

// Hub fans frame snapshots out to websocket spectators. Observe never
// blocks the game loop: a client that falls behind loses frames.
type Hub struct {
	config GameConfig
	logger *log.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	last    *game.Snapshot
	closed  bool
	done    chan struct{}
	conns   sync.WaitGroup
}

type client struct {
	conn *websocket.Conn
	send chan ServerMessage
}

// NewHub creates a hub for a board of the given size
func NewHub(gridSize int, tick time.Duration, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		config: GameConfig{
			GridSize:   gridSize,
			TickMillis: tick.Milliseconds(),
		},
		logger:  logger,
		clients: make(map[*client]struct{}),
		done:    make(chan struct{}),
	}
}

// Observe queues a snapshot for every connected spectator
func (h *Hub) Observe(snap game.Snapshot) {
	msg := ServerMessage{Type: "state", State: &snap}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = &snap
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// Channel full, drop frame to protect game loop performance
		}
	}
}

// Clients returns the number of connected spectators
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams frames until the peer leaves
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Println("spectate: upgrade error:", err)
		return
	}
	defer conn.Close()

	h.logger.Println("spectate: new connection from", r.RemoteAddr)

	c := &client{
		conn: conn,
		send: make(chan ServerMessage, config.SpectateSendBuffer),
	}
	// Send initial config, then the latest frame so the view is not blank
	c.send <- ServerMessage{Type: "config", Config: &h.config}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		return
	}
	if h.last != nil {
		c.send <- ServerMessage{Type: "state", State: h.last}
	}
	h.clients[c] = struct{}{}
	h.conns.Add(1)
	h.mu.Unlock()
	defer h.conns.Done()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		h.logger.Println("spectate: connection closed", r.RemoteAddr)
	}()

	// Spectators only listen; reading detects the close
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Println("spectate: write error:", err)
				return
			}
		case <-closed:
			return
		case <-h.done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

// Close disconnects every spectator with a going-away close frame and
// refuses new ones. It returns once all connection handlers have exited.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		h.conns.Wait()
		return
	}
	h.closed = true
	close(h.done)
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for c := range h.clients {
		c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		c.conn.Close()
		delete(h.clients, c)
	}
	h.mu.Unlock()

	h.conns.Wait()
}

// Handler returns a mux serving the feed on config.SpectatePath
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(config.SpectatePath, h)
	return mux
}
