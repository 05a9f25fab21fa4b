package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wricardo/martian-robots/game/service"
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

	// Outbound messages buffered per client.
	sendBuffer = 256

	// AllRuns subscribes a client to the events of every run
	AllRuns = "*"

	EventRobotFinished = "robot_finished"
	EventRunCompleted  = "run_completed"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message represents a WebSocket message
type Message struct {
	RunID string      `json:"run_id"`
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Client represents a WebSocket client
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	topic string
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients by run ID, or AllRuns
	topics map[string]map[*Client]bool

	// Outbound messages for clients
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	done chan struct{}
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		topics:     make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop; it returns after Stop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case <-h.done:
			for _, clients := range h.topics {
				for client := range clients {
					h.unregisterClient(client)
				}
			}
			return
		}
	}
}

// Stop ends the event loop and disconnects every client
func (h *Hub) Stop() {
	close(h.done)
}

// ServeWS handles WebSocket requests from clients. An empty runID
// subscribes to every run.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, runID string) {
	if runID == "" {
		runID = AllRuns
	}
	h.serve(w, r, runID, nil)
}

// ServeRunWS subscribes a client to a run that has already completed. The
// run's robot_finished and run_completed events are queued before the client
// joins, so it receives the same sequence a live subscriber would have seen.
func (h *Hub) ServeRunWS(w http.ResponseWriter, r *http.Request, run *service.RunInfo) {
	var backlog [][]byte
	for _, message := range runMessages(run) {
		data, err := json.Marshal(message)
		if err != nil {
			log.Printf("Failed to marshal replay message: %v", err)
			continue
		}
		backlog = append(backlog, data)
	}
	h.serve(w, r, run.ID, backlog)
}

func (h *Hub) serve(w http.ResponseWriter, r *http.Request, topic string, backlog [][]byte) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, sendBuffer+len(backlog)),
		topic: strings.ToLower(topic),
	}
	for _, data := range backlog {
		client.send <- data
	}

	select {
	case client.hub.register <- client:
	case <-client.hub.done:
		conn.Close()
		return
	}

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// BroadcastRun publishes one robot_finished event per robot, in run order,
// followed by a run_completed event carrying the whole run.
func (h *Hub) BroadcastRun(run *service.RunInfo) {
	for _, message := range runMessages(run) {
		select {
		case h.broadcast <- message:
		case <-h.done:
			return
		}
	}
}

func runMessages(run *service.RunInfo) []*Message {
	messages := make([]*Message, 0, len(run.Robots)+1)
	for _, robot := range run.Robots {
		messages = append(messages, &Message{RunID: run.ID, Event: EventRobotFinished, Data: robot})
	}
	return append(messages, &Message{RunID: run.ID, Event: EventRunCompleted, Data: run})
}

// BroadcastEvent sends a custom event to the clients of a run
func (h *Hub) BroadcastEvent(runID string, event string, data interface{}) {
	message := &Message{
		RunID: runID,
		Event: event,
		Data:  data,
	}

	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// registerClient adds a client to a topic
func (h *Hub) registerClient(client *Client) {
	if h.topics[client.topic] == nil {
		h.topics[client.topic] = make(map[*Client]bool)
	}
	h.topics[client.topic][client] = true

	log.Printf("Client registered for run %s (total clients: %d)",
		client.topic, len(h.topics[client.topic]))
}

// unregisterClient removes a client from its topic
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.topics[client.topic]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			// Clean up empty topics
			if len(clients) == 0 {
				delete(h.topics, client.topic)
			}

			log.Printf("Client unregistered from run %s (remaining clients: %d)",
				client.topic, len(clients))
		}
	}
}

// broadcastMessage sends a message to the run's clients and to AllRuns clients
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal broadcast message: %v", err)
		return
	}

	topic := strings.ToLower(message.RunID)
	h.deliver(topic, data)
	if topic != AllRuns {
		h.deliver(AllRuns, data)
	}
}

func (h *Hub) deliver(topic string, data []byte) {
	for client := range h.topics[topic] {
		select {
		case client.send <- data:
		default:
			// Client's send channel is full, close it
			h.unregisterClient(client)
		}
	}
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// Incoming messages are ignored; reading keeps the connection alive
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
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
				// The hub closed the channel
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
