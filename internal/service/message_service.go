package service

import (
	"context"
	"strings"
	"time"

	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/logger"
	"github.com/foodie-next/internal/models"
	"github.com/foodie-next/internal/queue"
	"github.com/foodie-next/internal/realtime"
	"github.com/foodie-next/internal/repository"
)

// ReplyNotifier 留言回复邮件入队
type ReplyNotifier interface {
	EnqueueMessageReplyEmail(ctx context.Context, payload queue.MessageReplyEmailPayload) error
}

// MessageService 联系留言服务
type MessageService struct {
	repo     repository.MessageRepository
	events   realtime.Publisher
	notifier ReplyNotifier
}

// NewMessageService 创建留言服务
func NewMessageService(repo repository.MessageRepository, events realtime.Publisher, notifier ReplyNotifier) *MessageService {
	if events == nil {
		events = realtime.NopPublisher{}
	}
	return &MessageService{repo: repo, events: events, notifier: notifier}
}

// CreateMessageInput 留言参数
type CreateMessageInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// MessageList 留言列表与统计
type MessageList struct {
	Messages []models.Message
	Stats    models.MessageStats
}

// Create 提交联系表单
func (s *MessageService) Create(ctx context.Context, input CreateMessageInput) (*models.Message, error) {
	message := &models.Message{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
		Status:  constants.MessageStatusUnread,
	}
	if message.Name == "" || message.Email == "" || message.Phone == "" || message.Subject == "" || message.Message == "" {
		return nil, ErrMessageFields
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, err
	}
	logger.Infow("message_created", "message_id", message.ID)
	s.events.Publish(constants.EventMessageCreated, message)
	return message, nil
}

// List 留言列表，附带各状态数量
func (s *MessageService) List(ctx context.Context, status string, page, pageSize int) (*MessageList, error) {
	filter := repository.MessageListFilter{Page: page, PageSize: pageSize}
	if status = strings.ToLower(strings.TrimSpace(status)); status != "" {
		switch status {
		case constants.MessageStatusUnread, constants.MessageStatusRead, constants.MessageStatusReplied:
			filter.Status = status
		default:
			return nil, ErrInvalidStatus
		}
	}
	messages, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &MessageList{Messages: messages, Stats: stats}, nil
}

// Get 获取留言详情，未读留言会被标记为已读
func (s *MessageService) Get(ctx context.Context, id string) (*models.Message, error) {
	message, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if message.Status == constants.MessageStatusUnread {
		if err := s.repo.MarkRead(ctx, message.ID); err != nil {
			return nil, err
		}
		message.Status = constants.MessageStatusRead
	}
	return message, nil
}

// Reply 回复留言，可直接从未读回复
func (s *MessageService) Reply(ctx context.Context, id, reply string) (*models.Message, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, ErrReplyEmpty
	}
	id = strings.TrimSpace(id)
	found, err := s.repo.SaveReply(ctx, id, reply, time.Now())
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrMessageNotFound
	}
	message, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.Infow("message_replied", "message_id", message.ID)

	s.events.Publish(constants.EventMessageReplied, message)
	if s.notifier != nil {
		if err := s.notifier.EnqueueMessageReplyEmail(ctx, queue.MessageReplyEmailPayload{MessageID: message.ID}); err != nil {
			logger.Warnw("message_reply_email_enqueue_failed", "message_id", message.ID, "error", err)
		}
	}
	return message, nil
}

// MarkAsRead 标记已读，已读或已回复的留言保持不变
func (s *MessageService) MarkAsRead(ctx context.Context, id string) (*models.Message, error) {
	return s.Get(ctx, id)
}

// Delete 删除留言并返回被删除的记录
func (s *MessageService) Delete(ctx context.Context, id string) (*models.Message, error) {
	message, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	found, err := s.repo.Delete(ctx, message.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrMessageNotFound
	}
	logger.Infow("message_deleted", "message_id", message.ID)
	return message, nil
}

func (s *MessageService) find(ctx context.Context, id string) (*models.Message, error) {
	message, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}
	return message, nil
}
