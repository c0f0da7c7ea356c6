package websockets

import (
	"encoding/json"
	"testing"
)

// SendToUser must never block the caller, even with no hub draining the
// queue: once the buffer is full, further pushes are dropped.
func TestSendToUserNeverBlocks(t *testing.T) {
	manager := NewWebSocketManager()

	for i := 0; i < sendQueueSize+10; i++ {
		manager.SendToUser("user-1", MsgTypeNotification, map[string]string{"message": "hi"})
	}

	if got := len(manager.send); got != sendQueueSize {
		t.Errorf("queued pushes = %d, want full buffer of %d", got, sendQueueSize)
	}
}

func TestSendToUserEnvelope(t *testing.T) {
	manager := NewWebSocketManager()
	manager.SendToUser("user-1", MsgTypeNotification, map[string]string{"message": "hi"})

	direct := <-manager.send
	if direct.ReceiverID != "user-1" {
		t.Errorf("receiver = %q, want user-1", direct.ReceiverID)
	}

	var envelope Envelope
	if err := json.Unmarshal(direct.Message, &envelope); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if envelope.Type != MsgTypeNotification {
		t.Errorf("envelope type = %q, want %q", envelope.Type, MsgTypeNotification)
	}
}
