package queue

import (
	"encoding/json"

	"github.com/foodie-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskMessageReplyEmail 留言回复邮件任务
	TaskMessageReplyEmail = constants.TaskMessageReplyEmail
	// TaskOrderCreatedNotify 新订单通知任务
	TaskOrderCreatedNotify = constants.TaskOrderCreatedNotify
	// TaskOrderStatusNotify 订单状态通知任务
	TaskOrderStatusNotify = constants.TaskOrderStatusNotify
)

// MessageReplyEmailPayload 留言回复邮件任务载荷
type MessageReplyEmailPayload struct {
	MessageID string `json:"message_id"`
}

// OrderNotifyPayload 订单通知任务载荷
type OrderNotifyPayload struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status,omitempty"`
}

// NewMessageReplyEmailTask 创建留言回复邮件任务
func NewMessageReplyEmailTask(payload MessageReplyEmailPayload) (*asynq.Task, error) {
	return newJSONTask(TaskMessageReplyEmail, payload)
}

// NewOrderCreatedNotifyTask 创建新订单通知任务
func NewOrderCreatedNotifyTask(payload OrderNotifyPayload) (*asynq.Task, error) {
	return newJSONTask(TaskOrderCreatedNotify, payload)
}

// NewOrderStatusNotifyTask 创建订单状态通知任务
func NewOrderStatusNotifyTask(payload OrderNotifyPayload) (*asynq.Task, error) {
	return newJSONTask(TaskOrderStatusNotify, payload)
}

func newJSONTask(typename string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(typename, body), nil
}
