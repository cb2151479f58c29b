package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/models"
	"github.com/foodie-next/internal/queue"
	"github.com/foodie-next/internal/repository"
	"github.com/foodie-next/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

type fakeMailer struct {
	enabled bool
	err     error
	replies []string
	notices []bool
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) SendMessageReply(message *models.Message) error {
	m.replies = append(m.replies, message.ID)
	return m.err
}

func (m *fakeMailer) SendOrderNotice(order *models.Order, created bool) error {
	m.notices = append(m.notices, created)
	return m.err
}

func setupConsumer(t *testing.T, mailer *fakeMailer) (*Consumer, *repository.Store) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.Message{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	store := repository.NewGormStore(db, 5*time.Second)
	return &Consumer{Messages: store.Messages, Orders: store.Orders, Mailer: mailer, NotifyStatusEmail: true}, store
}

func replyTask(t *testing.T, id string) *asynq.Task {
	t.Helper()
	task, err := queue.NewMessageReplyEmailTask(queue.MessageReplyEmailPayload{MessageID: id})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	return task
}

func TestHandleMessageReplyEmailSendsReply(t *testing.T) {
	mailer := &fakeMailer{enabled: true}
	consumer, store := setupConsumer(t, mailer)
	ctx := context.Background()

	message := &models.Message{Name: "Bo", Email: "bo@example.com", Phone: "1", Subject: "Hi", Message: "Hello"}
	if err := store.Messages.Create(ctx, message); err != nil {
		t.Fatalf("create message failed: %v", err)
	}
	if err := consumer.handleMessageReplyEmail(ctx, replyTask(t, message.ID)); err != nil {
		t.Fatalf("unreplied message should be skipped, got %v", err)
	}
	if len(mailer.replies) != 0 {
		t.Fatalf("no mail expected before reply")
	}

	if _, err := store.Messages.SaveReply(ctx, message.ID, "Thanks!", time.Now()); err != nil {
		t.Fatalf("save reply failed: %v", err)
	}
	if err := consumer.handleMessageReplyEmail(ctx, replyTask(t, message.ID)); err != nil {
		t.Fatalf("send reply failed: %v", err)
	}
	if len(mailer.replies) != 1 || mailer.replies[0] != message.ID {
		t.Fatalf("unexpected replies: %v", mailer.replies)
	}
}

func TestHandleMessageReplyEmailSkipsWhenDisabled(t *testing.T) {
	mailer := &fakeMailer{enabled: false}
	consumer, _ := setupConsumer(t, mailer)
	if err := consumer.handleMessageReplyEmail(context.Background(), replyTask(t, "missing")); err != nil {
		t.Fatalf("disabled mailer should skip, got %v", err)
	}
	if len(mailer.replies) != 0 {
		t.Fatalf("disabled mailer should not send")
	}
}

func TestHandleMessageReplyEmailBadPayloadSkipsRetry(t *testing.T) {
	consumer, _ := setupConsumer(t, &fakeMailer{enabled: true})
	err := consumer.handleMessageReplyEmail(context.Background(), asynq.NewTask(queue.TaskMessageReplyEmail, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload should skip retry, got %v", err)
	}
}

func TestOrderNotifyHandlers(t *testing.T) {
	mailer := &fakeMailer{enabled: true}
	consumer, store := setupConsumer(t, mailer)
	ctx := context.Background()

	order := &models.Order{Name: "Ann", Phone: "1", Items: "Soup", Address: "Main St", Status: constants.OrderStatusPending}
	if err := store.Orders.Create(ctx, order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	created, _ := queue.NewOrderCreatedNotifyTask(queue.OrderNotifyPayload{OrderID: order.ID})
	if err := consumer.handleOrderCreatedNotify(ctx, created); err != nil {
		t.Fatalf("created notify failed: %v", err)
	}

	stale, _ := queue.NewOrderStatusNotifyTask(queue.OrderNotifyPayload{OrderID: order.ID, Status: constants.OrderStatusCompleted})
	if err := consumer.handleOrderStatusNotify(ctx, stale); err != nil {
		t.Fatalf("stale notify failed: %v", err)
	}
	current, _ := queue.NewOrderStatusNotifyTask(queue.OrderNotifyPayload{OrderID: order.ID, Status: constants.OrderStatusPending})
	if err := consumer.handleOrderStatusNotify(ctx, current); err != nil {
		t.Fatalf("status notify failed: %v", err)
	}

	if len(mailer.notices) != 2 || mailer.notices[0] != true || mailer.notices[1] != false {
		t.Fatalf("unexpected notices: %v", mailer.notices)
	}

	consumer.NotifyStatusEmail = false
	if err := consumer.handleOrderStatusNotify(ctx, current); err != nil {
		t.Fatalf("disabled status notify failed: %v", err)
	}
	if len(mailer.notices) != 2 {
		t.Fatalf("status notify should be off, got %v", mailer.notices)
	}
}

func TestOrderNotifyErrors(t *testing.T) {
	mailer := &fakeMailer{enabled: true, err: service.ErrEmailServiceNotConfigured}
	consumer, store := setupConsumer(t, mailer)
	ctx := context.Background()

	order := &models.Order{Name: "Ann", Phone: "1", Items: "Soup", Address: "Main St", Status: constants.OrderStatusPending}
	if err := store.Orders.Create(ctx, order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	task, _ := queue.NewOrderCreatedNotifyTask(queue.OrderNotifyPayload{OrderID: order.ID})
	if err := consumer.handleOrderCreatedNotify(ctx, task); err != nil {
		t.Fatalf("missing notify_to should be skipped, got %v", err)
	}

	mailer.err = fmt.Errorf("wrap: %w", service.ErrEmailRecipientRejected)
	if err := consumer.handleOrderCreatedNotify(ctx, task); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("rejected recipient should skip retry, got %v", err)
	}

	mailer.err = errors.New("smtp timeout")
	if err := consumer.handleOrderCreatedNotify(ctx, task); err == nil || errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("transient error should be retried, got %v", err)
	}
}
