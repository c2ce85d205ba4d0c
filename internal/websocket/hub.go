package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Vileyy/admin-halora-app/internal/logger"
	"github.com/Vileyy/admin-halora-app/internal/middleware"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 256
)

var connectedClients = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "halora_ws_clients",
	Help: "Consoles connected to the live feed.",
})

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// consoles are native apps without a stable Origin
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the envelope of every live feed frame.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Client represents a single connected WebSocket client
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	adminID string
}

type frame struct {
	event   string
	payload []byte
}

// Hub maintains the set of active clients and broadcasts messages to the clients.
// It remembers the last frame of every event and replays them to new clients.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan frame
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// owned by Run
	latest map[string][]byte
	events []string
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan frame, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		latest:     make(map[string][]byte),
	}
}

// Run dispatches registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	log := logger.WithModule("websocket")
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			connectedClients.Inc()
			for _, event := range h.events {
				client.send <- h.latest[event]
			}
			log.WithField("admin_id", client.adminID).Info("console connected")
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.WithField("admin_id", client.adminID).Info("console disconnected")
			}
		case f := <-h.broadcast:
			if _, seen := h.latest[f.event]; !seen {
				h.events = append(h.events, f.event)
			}
			h.latest[f.event] = f.payload
			for client := range h.clients {
				select {
				case client.send <- f.payload:
				default:
					// slow consumer
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	connectedClients.Dec()
}

// Publish encodes an event and queues it for every connected client. Events
// are discarded when the hub has stopped or its queue is full.
func (h *Hub) Publish(event string, data interface{}) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		logger.WithModule("websocket").WithError(err).WithField("event", event).Error("failed to encode event")
		return
	}

	select {
	case <-h.done:
	case h.broadcast <- frame{event: event, payload: payload}:
	default:
		logger.WithModule("websocket").WithField("event", event).Warn("broadcast queue full, event dropped")
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only drains control frames; consoles never send data.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.WithModule("websocket").WithError(err).Warn("unexpected close")
			}
			return
		}
	}
}

// ServeWs upgrades an admin connection. The access token travels in the
// token query parameter since websocket clients cannot set headers.
func ServeWs(hub *Hub, c *gin.Context) {
	log := logger.WithContext(c.Request.Context()).WithField("module", "websocket")

	tokenString := c.Query("token")
	if tokenString == "" {
		log.Warn("connection rejected: missing token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := middleware.ParseToken(tokenString)
	if err != nil {
		log.WithError(err).Warn("connection rejected: invalid token")
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if role, _ := claims["role"].(string); role != "admin" {
		log.Warn("connection rejected: not an admin")
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("upgrade failed")
		return
	}

	sub, _ := claims["sub"].(string)
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, sendBuffer), adminID: sub}
	select {
	case hub.register <- client:
	case <-hub.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
