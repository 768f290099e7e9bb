package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Client represents a WebSocket client
type Client struct {
	ID   uint
	Role models.Role
	Conn *websocket.Conn
	Send chan []byte
	Hub  *Hub
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mutex      sync.RWMutex
}

// BookingEvent is pushed to dashboards when a booking changes state
type BookingEvent struct {
	Type      string `json:"type"`
	BookingID uint   `json:"bookingId"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// TaskEvent is pushed to the staff pool when the task queue changes
type TaskEvent struct {
	Type      string `json:"type"`
	TaskID    uint   `json:"taskId"`
	TaskType  string `json:"taskType"`
	BookingID uint   `json:"bookingId"`
	Status    string `json:"status"`
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Client %d connected", client.ID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()
			log.Printf("Client %d disconnected", client.ID)

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				h.deliver(client, message)
			}
			h.mutex.Unlock()
		}
	}
}

// deliver queues a message on a client, dropping the client if its buffer is
// full. Dropping mutates the client set, so callers must hold the write lock.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		close(client.Send)
		delete(h.clients, client)
	}
}

// SendToUser sends a message to a specific user
func (h *Hub) SendToUser(userID uint, message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if client.ID == userID {
			h.deliver(client, message)
		}
	}
}

// SendToRole sends a message to all connected users with a given role
func (h *Hub) SendToRole(role models.Role, message []byte) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.clients {
		if client.Role == role {
			h.deliver(client, message)
		}
	}
}

// NotifyBookingUpdate pushes a booking event to the customer and staff pool
func (h *Hub) NotifyBookingUpdate(customerID uint, event BookingEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal booking event: %v", err)
		return
	}
	h.SendToUser(customerID, data)
	h.SendToRole(models.RoleStaff, data)
}

// NotifyTaskUpdate pushes a task event to the staff pool
func (h *Hub) NotifyTaskUpdate(event TaskEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal task event: %v", err)
		return
	}
	h.SendToRole(models.RoleStaff, data)
}

// GetConnectedClients returns the number of connected clients
func (h *Hub) GetConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// HandleWebSocket handles WebSocket connections
func HandleWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, role models.Role) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		ID:   userID,
		Role: role,
		Conn: conn,
		Send: make(chan []byte, 256),
		Hub:  hub,
	}

	client.Hub.register <- client

	// Start goroutines for reading and writing
	go client.writePump()
	go client.readPump()
}

// readPump drains the connection so close frames are noticed. Dashboard
// clients only listen; inbound messages are ignored.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("WebSocket write error: %v", err)
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
