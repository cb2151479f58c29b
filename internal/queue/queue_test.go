package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/foodie-next/internal/config"
)

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client := NewClient(&config.QueueConfig{Enabled: false})
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueMessageReplyEmail(context.Background(), MessageReplyEmailPayload{MessageID: "m1"}); err != nil {
		t.Fatalf("disabled enqueue should be a no-op: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}
}

func TestTaskPayloadEncoding(t *testing.T) {
	task, err := NewOrderStatusNotifyTask(OrderNotifyPayload{OrderID: "o1", Status: "completed"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskOrderStatusNotify {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	var payload OrderNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload.OrderID != "o1" || payload.Status != "completed" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr: %s", opt.Addr)
	}
	if cfg.Concurrency != 5 || cfg.Queues[CriticalQueue] == 0 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}
