package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/foodie-next/internal/logger"
	"github.com/foodie-next/internal/models"
	"github.com/foodie-next/internal/provider"
	"github.com/foodie-next/internal/queue"
	"github.com/foodie-next/internal/repository"
	"github.com/foodie-next/internal/service"

	"github.com/hibiken/asynq"
)

// Mailer 任务使用的邮件发送能力
type Mailer interface {
	Enabled() bool
	SendMessageReply(message *models.Message) error
	SendOrderNotice(order *models.Order, created bool) error
}

// Consumer 异步任务消费者
type Consumer struct {
	Messages          repository.MessageRepository
	Orders            repository.OrderRepository
	Mailer            Mailer
	NotifyStatusEmail bool
}

// NewConsumer 从容器创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Messages:          c.Store.Messages,
		Orders:            c.Store.Orders,
		Mailer:            c.EmailService,
		NotifyStatusEmail: c.Config.Order.NotifyStatusEmail,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskMessageReplyEmail, c.handleMessageReplyEmail)
	mux.HandleFunc(queue.TaskOrderCreatedNotify, c.handleOrderCreatedNotify)
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.handleOrderStatusNotify)
}

func (c *Consumer) handleMessageReplyEmail(ctx context.Context, task *asynq.Task) error {
	var payload queue.MessageReplyEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_message_reply_unmarshal_failed", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	messageID := strings.TrimSpace(payload.MessageID)
	if messageID == "" {
		logger.Debugw("worker_message_reply_skip_invalid_payload")
		return nil
	}
	if !c.mailerEnabled() {
		logger.Debugw("worker_message_reply_skip_email_disabled", "message_id", messageID)
		return nil
	}
	message, err := c.Messages.GetByID(ctx, messageID)
	if err != nil {
		logger.Warnw("worker_message_reply_fetch_failed", "message_id", messageID, "error", err)
		return err
	}
	if message == nil || message.Reply == nil || strings.TrimSpace(*message.Reply) == "" {
		logger.Debugw("worker_message_reply_skip_no_reply", "message_id", messageID)
		return nil
	}
	if err := c.Mailer.SendMessageReply(message); err != nil {
		logger.Warnw("worker_message_reply_send_failed", "message_id", messageID, "error", err)
		return retryable(err)
	}
	logger.Infow("worker_message_reply_sent", "message_id", messageID)
	return nil
}

func (c *Consumer) handleOrderCreatedNotify(ctx context.Context, task *asynq.Task) error {
	return c.notifyOrder(ctx, task, true)
}

func (c *Consumer) handleOrderStatusNotify(ctx context.Context, task *asynq.Task) error {
	if !c.NotifyStatusEmail {
		return nil
	}
	return c.notifyOrder(ctx, task, false)
}

func (c *Consumer) notifyOrder(ctx context.Context, task *asynq.Task, created bool) error {
	var payload queue.OrderNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_notify_unmarshal_failed", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	orderID := strings.TrimSpace(payload.OrderID)
	if orderID == "" {
		logger.Debugw("worker_order_notify_skip_invalid_payload")
		return nil
	}
	if !c.mailerEnabled() {
		logger.Debugw("worker_order_notify_skip_email_disabled", "order_id", orderID)
		return nil
	}
	order, err := c.Orders.GetByID(ctx, orderID)
	if err != nil {
		logger.Warnw("worker_order_notify_fetch_failed", "order_id", orderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_notify_skip_order_not_found", "order_id", orderID)
		return nil
	}
	// 状态已再次变化时由后续任务通知
	if !created && payload.Status != "" && payload.Status != order.Status {
		logger.Debugw("worker_order_notify_skip_stale", "order_id", orderID, "status", payload.Status, "current", order.Status)
		return nil
	}
	if err := c.Mailer.SendOrderNotice(order, created); err != nil {
		if errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_order_notify_skip_no_receiver", "order_id", orderID)
			return nil
		}
		logger.Warnw("worker_order_notify_send_failed", "order_id", orderID, "created", created, "error", err)
		return retryable(err)
	}
	logger.Infow("worker_order_notify_sent", "order_id", orderID, "created", created)
	return nil
}

func (c *Consumer) mailerEnabled() bool {
	return c.Mailer != nil && c.Mailer.Enabled()
}

// retryable 收件人类错误重试也无法恢复
func retryable(err error) error {
	if errors.Is(err, service.ErrInvalidEmail) || errors.Is(err, service.ErrEmailRecipientRejected) {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return err
}
