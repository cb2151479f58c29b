package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubBroadcastsToConnectedClient(t *testing.T) {
	hub := NewHub(nil)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, "admin-1")
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Count() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client was not registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Publish("order.created", map[string]string{"_id": "o1"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		t.Fatalf("decode event failed: %v", err)
	}
	if event.Type != "order.created" {
		t.Fatalf("unexpected event type: %s", event.Type)
	}
}

func TestHubRejectsUnknownOrigin(t *testing.T) {
	hub := NewHub([]string{"https://admin.foodie.test"})
	req := httptest.NewRequest(http.MethodGet, "/api/admin/events", nil)
	req.Header.Set("Origin", "https://evil.test")
	if hub.upgrader.CheckOrigin(req) {
		t.Fatalf("unexpected origin should be rejected")
	}
	req.Header.Set("Origin", "https://admin.foodie.test")
	if !hub.upgrader.CheckOrigin(req) {
		t.Fatalf("configured origin should be accepted")
	}
}

func TestNilHubPublishIsSafe(t *testing.T) {
	var hub *Hub
	hub.Publish("message.created", nil)
	NopPublisher{}.Publish("x", nil)
}
