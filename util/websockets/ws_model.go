package websockets

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Message types pushed to clients
const (
	MsgTypeNotification = "notification"
)

// Client represents one open socket for an authenticated user. A user may
// hold several (multiple tabs); each registers its own client.
type Client struct {
	Conn   *websocket.Conn
	UserID string
}

type WebSocketManager struct {
	clients    map[*websocket.Conn]*Client
	register   chan *Client
	unregister chan *websocket.Conn
	send       chan DirectMessage
	mu         sync.Mutex
}

// DirectMessage is a payload addressed to every open socket of one user.
type DirectMessage struct {
	ReceiverID string `json:"receiver_id"`
	Message    []byte `json:"message"`
}

// Envelope is the frame written to clients.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}
