// Package live pushes fixture updates to websocket subscribers. Each
// competition has its own room; finishing a match broadcasts the result
// and the dependency cascade so bracket views update without polling.
package live

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Event is the wire format for room broadcasts.
type Event struct {
	Type          string      `json:"type"`
	CompetitionID int         `json:"competition_id"`
	Payload       interface{} `json:"payload"`
}

const (
	EventMatchFinished   = "MATCH_FINISHED"
	EventBracketResolved = "BRACKET_RESOLVED"
	EventGroupQualified  = "GROUP_QUALIFIED"
)

type Client struct {
	hub           *Hub
	conn          *websocket.Conn
	send          chan []byte
	competitionID int

	mu     sync.Mutex
	closed bool
}

func NewClient(hub *Hub, conn *websocket.Conn, competitionID int) *Client {
	return &Client{
		hub:           hub,
		conn:          conn,
		send:          make(chan []byte, 256),
		competitionID: competitionID,
	}
}

type Hub struct {
	register   chan *Client
	unregister chan *Client

	mu    sync.RWMutex
	rooms map[int]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[int]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			room := h.rooms[client.competitionID]
			if room == nil {
				room = make(map[*Client]bool)
				h.rooms[client.competitionID] = room
			}
			room[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.competitionID]; ok {
				if room[client] {
					delete(room, client)
					client.closeSend()
					if len(room) == 0 {
						delete(h.rooms, client.competitionID)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an event to every client subscribed to the event's
// competition. Slow clients are skipped rather than blocking the hub.
func (h *Hub) Broadcast(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("live: failed to marshal event for competition %d: %v", event.CompetitionID, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[event.CompetitionID] {
		client.mu.Lock()
		if !client.closed {
			select {
			case client.send <- payload:
			default:
			}
		}
		client.mu.Unlock()
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	if !c.closed {
		close(c.send)
		c.closed = true
	}
	c.mu.Unlock()
}

// ReadPump drains (and ignores) inbound frames until the peer goes
// away, keeping pong handling alive.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("live: client error in competition %d room: %v", c.competitionID, err)
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Register enqueues a client into its competition room.
func (h *Hub) Register(client *Client) {
	h.register <- client
}
