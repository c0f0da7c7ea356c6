package websockets

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Pending pushes are buffered so a busy hub never back-pressures the
	// notification fan-out; overflow is dropped.
	sendQueueSize = 256

	writeWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewWebSocketManager initializes a WebSocketManager
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[*websocket.Conn]*Client),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn),
		send:       make(chan DirectMessage, sendQueueSize),
	}
}

// Run starts the WebSocket manager
func (manager *WebSocketManager) Run() {
	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			manager.clients[client.Conn] = client
			manager.mu.Unlock()

		case conn := <-manager.unregister:
			manager.mu.Lock()
			if client, exists := manager.clients[conn]; exists {
				delete(manager.clients, conn)
				conn.Close()
				log.Printf("Client %s disconnected", client.UserID)
			}
			manager.mu.Unlock()

		case direct := <-manager.send:
			manager.mu.Lock()
			for conn, client := range manager.clients {
				if client.UserID != direct.ReceiverID {
					continue
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, direct.Message); err != nil {
					conn.Close()
					delete(manager.clients, conn)
				}
			}
			manager.mu.Unlock()
		}
	}
}

// HandleConnection upgrades the request and holds the socket open for the
// given user until the peer closes it. Pushes flow one way, server to
// client; anything the client writes is discarded.
func (manager *WebSocketManager) HandleConnection(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket Upgrade Error:", err)
		return
	}

	manager.register <- &Client{Conn: conn, UserID: userID}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			manager.unregister <- conn
			break
		}
	}
}

// SendToUser pushes a typed payload to every open socket of one user.
// Delivery is best-effort; an unreachable user is not an error.
func (manager *WebSocketManager) SendToUser(userID, msgType string, data interface{}) {
	payload, err := json.Marshal(Envelope{Type: msgType, Data: data})
	if err != nil {
		log.Println("failed to marshal websocket payload:", err)
		return
	}
	select {
	case manager.send <- DirectMessage{ReceiverID: userID, Message: payload}:
	default:
		log.Println("websocket send queue full, dropping push for", userID)
	}
}
