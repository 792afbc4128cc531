package realtime

import (
	"context"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Hub subscribes to every raffle draw channel and relays payloads
// verbatim to the websocket clients watching that raffle.
type Hub struct {
	rdb *redis.Client

	clients    map[string]map[*Client]bool // raffle ID -> watchers
	register   chan *Client
	unregister chan *Client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		rdb:        rdb,
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run(ctx context.Context) {
	sub := h.rdb.PSubscribe(ctx, drawChannelPattern)
	defer sub.Close()

	messages := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			watchers, ok := h.clients[client.raffleID]
			if !ok {
				watchers = make(map[*Client]bool)
				h.clients[client.raffleID] = watchers
			}
			watchers[client] = true
		case client := <-h.unregister:
			if watchers, ok := h.clients[client.raffleID]; ok {
				if _, ok := watchers[client]; ok {
					delete(watchers, client)
					close(client.send)
					if len(watchers) == 0 {
						delete(h.clients, client.raffleID)
					}
				}
			}
		case msg, ok := <-messages:
			if !ok {
				return
			}

			raffleID, ok := raffleIDFromChannel(msg.Channel)
			if !ok {
				zap.L().Warn("ignoring message on unexpected channel", zap.String("channel", msg.Channel))
				continue
			}

			for client := range h.clients[raffleID] {
				select {
				case client.send <- []byte(msg.Payload):
				default:
					// Slow client, drop it.
					close(client.send)
					delete(h.clients[raffleID], client)
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	raffleID string
}

func NewClient(hub *Hub, conn *websocket.Conn, raffleID string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		raffleID: raffleID,
	}
}

func (c *Client) WritePump() {
	defer func() {
		c.conn.Close()
	}()
	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}

	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ReadPump discards inbound frames; viewers are read-only. It exists to
// notice the close handshake and unregister the client.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Debug("websocket closed unexpectedly", zap.Error(err))
			}
			break
		}
	}
}
