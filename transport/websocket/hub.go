package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// Client is one websocket subscriber of a game room.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	gameID string
}

type broadcast struct {
	gameID  string
	payload []byte
}

// Hub keeps a room of clients per game id and fans published snapshots out
// to them. Delivery is best-effort: a client that cannot keep up is
// dropped and recovers by pulling state.
type Hub struct {
	logger *slog.Logger

	rooms map[string]map[*Client]bool

	broadcasts chan broadcast
	register   chan *Client
	unregister chan *Client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger.With("component", "ws-hub"),
		rooms:      make(map[string]map[*Client]bool),
		broadcasts: make(chan broadcast),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run owns the room bookkeeping until the context is done.
func (that *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-that.register:
			that.registerClient(client)
		case client := <-that.unregister:
			that.unregisterClient(client)
		case msg := <-that.broadcasts:
			that.broadcastToRoom(msg)
		}
	}
}

// Broadcast hands a published snapshot to every subscriber of the game.
func (that *Hub) Broadcast(gameID string, payload []byte) {
	that.broadcasts <- broadcast{gameID: gameID, payload: payload}
}

// ServeWS upgrades the request and joins the client to the game's room.
func (that *Hub) ServeWS(w http.ResponseWriter, r *http.Request, gameID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		that.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:    that,
		conn:   conn,
		send:   make(chan []byte, 256),
		gameID: gameID,
	}

	that.register <- client

	go client.writePump()
	go client.readPump()
}

func (that *Hub) registerClient(client *Client) {
	if that.rooms[client.gameID] == nil {
		that.rooms[client.gameID] = make(map[*Client]bool)
	}
	that.rooms[client.gameID][client] = true

	that.logger.Info("client joined game room", "gameID", client.gameID, "clients", len(that.rooms[client.gameID]))
}

func (that *Hub) unregisterClient(client *Client) {
	clients, ok := that.rooms[client.gameID]
	if !ok {
		return
	}

	if _, ok = clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)

	if len(clients) == 0 {
		delete(that.rooms, client.gameID)
	}

	that.logger.Info("client left game room", "gameID", client.gameID, "clients", len(clients))
}

func (that *Hub) broadcastToRoom(msg broadcast) {
	for client := range that.rooms[msg.gameID] {
		select {
		case client.send <- msg.payload:
		default:
			// slow consumer, drop it; the poll path resynchronises
			that.unregisterClient(client)
		}
	}
}

// readPump drains the connection; incoming frames are ignored, clients
// talk to the server over HTTP.
func (that *Client) readPump() {
	defer func() {
		that.hub.unregister <- that
		that.conn.Close()
	}()

	that.conn.SetReadLimit(maxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := that.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump pumps snapshots from the hub to the connection and keeps it
// alive with pings.
func (that *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		that.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
