package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/foodie-next/internal/config"
	"github.com/foodie-next/internal/models"
	"github.com/foodie-next/internal/queue"
	"github.com/foodie-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *repository.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.Product{}, &models.Order{}, &models.Message{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return repository.NewGormStore(db, 5*time.Second)
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{AllowRegistration: true},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 6},
		},
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png failed: %v", err)
	}
	return buf.Bytes()
}

func bytesPayload(contentType string, data []byte) ImagePayload {
	return ImagePayload{
		Present:      true,
		DeclaredType: contentType,
		Size:         int64(len(data)),
		open: func() ([]byte, error) {
			return data, nil
		},
	}
}

type recordedEvent struct {
	Type string
	Data interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *fakePublisher) Publish(eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: eventType, Data: data})
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.Type)
	}
	return out
}

type fakeNotifier struct {
	created []queue.OrderNotifyPayload
	status  []queue.OrderNotifyPayload
	replies []queue.MessageReplyEmailPayload
}

func (n *fakeNotifier) EnqueueOrderCreatedNotify(_ context.Context, payload queue.OrderNotifyPayload) error {
	n.created = append(n.created, payload)
	return nil
}

func (n *fakeNotifier) EnqueueOrderStatusNotify(_ context.Context, payload queue.OrderNotifyPayload) error {
	n.status = append(n.status, payload)
	return nil
}

func (n *fakeNotifier) EnqueueMessageReplyEmail(_ context.Context, payload queue.MessageReplyEmailPayload) error {
	n.replies = append(n.replies, payload)
	return nil
}

type memoryDenylist struct {
	revoked map[string]time.Duration
	err     error
}

func newMemoryDenylist() *memoryDenylist {
	return &memoryDenylist{revoked: make(map[string]time.Duration)}
}

func (d *memoryDenylist) RevokeToken(_ context.Context, jti string, ttl time.Duration) error {
	if d.err != nil {
		return d.err
	}
	d.revoked[jti] = ttl
	return nil
}

func (d *memoryDenylist) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.revoked[jti]
	return ok, nil
}

var errRedisDown = errors.New("redis: connection refused")

func base64PNG(t *testing.T) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(pngBytes(t))
}
