package queue

import (
	"context"
	"fmt"
	"strings"

	"github.com/foodie-next/internal/config"
	"github.com/foodie-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// CriticalQueue 高优先级队列
	CriticalQueue = constants.QueueCritical
)

// Client 队列客户端封装
type Client struct {
	client  *asynq.Client
	enabled bool
}

// NewClient 创建队列客户端，未启用时返回空实现
func NewClient(cfg *config.QueueConfig) *Client {
	if cfg == nil || !cfg.Enabled {
		return &Client{}
	}
	return &Client{
		client:  asynq.NewClient(buildRedisOpt(cfg)),
		enabled: true,
	}
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueMessageReplyEmail 推送留言回复邮件任务
func (c *Client) EnqueueMessageReplyEmail(ctx context.Context, payload MessageReplyEmailPayload) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewMessageReplyEmailTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task, asynq.Queue(CriticalQueue), asynq.MaxRetry(5))
}

// EnqueueOrderCreatedNotify 推送新订单通知任务
func (c *Client) EnqueueOrderCreatedNotify(ctx context.Context, payload OrderNotifyPayload) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderCreatedNotifyTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task, asynq.Queue(DefaultQueue))
}

// EnqueueOrderStatusNotify 推送订单状态变更通知任务
func (c *Client) EnqueueOrderStatusNotify(ctx context.Context, payload OrderNotifyPayload) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderStatusNotifyTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(ctx, task, asynq.Queue(DefaultQueue))
}

func (c *Client) enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := c.client.EnqueueContext(ctx, task, opts...)
	return err
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := buildRedisOpt(cfg)
	concurrency := 5
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{CriticalQueue: 6, DefaultQueue: 3}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	password := ""
	db := 0
	if cfg != nil {
		if strings.TrimSpace(cfg.Host) != "" {
			host = strings.TrimSpace(cfg.Host)
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		password = cfg.Password
		db = cfg.DB
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	}
}
