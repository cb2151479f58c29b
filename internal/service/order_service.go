package service

import (
	"context"
	"strings"

	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/logger"
	"github.com/foodie-next/internal/models"
	"github.com/foodie-next/internal/queue"
	"github.com/foodie-next/internal/realtime"
	"github.com/foodie-next/internal/repository"
)

// OrderNotifier 订单异步通知入队
type OrderNotifier interface {
	EnqueueOrderCreatedNotify(ctx context.Context, payload queue.OrderNotifyPayload) error
	EnqueueOrderStatusNotify(ctx context.Context, payload queue.OrderNotifyPayload) error
}

// OrderService 订单业务服务
type OrderService struct {
	repo               repository.OrderRepository
	events             realtime.Publisher
	notifier           OrderNotifier
	enforceTransitions bool
}

// NewOrderService 创建订单服务，events / notifier 可为 nil
func NewOrderService(repo repository.OrderRepository, events realtime.Publisher, notifier OrderNotifier, enforceTransitions bool) *OrderService {
	if events == nil {
		events = realtime.NopPublisher{}
	}
	return &OrderService{
		repo:               repo,
		events:             events,
		notifier:           notifier,
		enforceTransitions: enforceTransitions,
	}
}

// CreateOrderInput 下单参数，Price 宽松解析，无法解析时记为 0
type CreateOrderInput struct {
	Name    string
	Phone   string
	Items   string
	Price   interface{}
	Address string
	Notes   string
}

// Create 顾客下单
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	items := strings.TrimSpace(input.Items)
	address := strings.TrimSpace(input.Address)
	if name == "" || phone == "" || items == "" || address == "" {
		return nil, ErrOrderFields
	}
	price, ok := models.ParseMoney(input.Price)
	if !ok || price.IsNegative() {
		price = models.Money{}
	}

	order := &models.Order{
		Name:    name,
		Phone:   phone,
		Items:   items,
		Price:   price,
		Address: address,
		Notes:   strings.TrimSpace(input.Notes),
		Status:  constants.OrderStatusPending,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	logger.Infow("order_created", "order_id", order.ID, "price", order.Price.String())

	s.events.Publish(constants.EventOrderCreated, order)
	if s.notifier != nil {
		if err := s.notifier.EnqueueOrderCreatedNotify(ctx, queue.OrderNotifyPayload{OrderID: order.ID, Status: order.Status}); err != nil {
			logger.Warnw("order_created_notify_enqueue_failed", "order_id", order.ID, "error", err)
		}
	}
	return order, nil
}

// List 订单列表，按创建时间倒序
func (s *OrderService) List(ctx context.Context, status string, page, pageSize int) ([]models.Order, error) {
	filter := repository.OrderListFilter{Page: page, PageSize: pageSize}
	if strings.TrimSpace(status) != "" {
		filter.Status = normalizeOrderStatus(status)
		if filter.Status == "" {
			return nil, ErrInvalidStatus
		}
	}
	return s.repo.List(ctx, filter)
}

// Get 获取订单详情
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus 更新订单状态，重复设置同一状态直接返回
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	target := normalizeOrderStatus(status)
	if target == "" {
		return nil, ErrInvalidStatus
	}
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == target {
		return order, nil
	}
	if s.enforceTransitions && !canTransitOrder(order.Status, target) {
		return nil, ErrStatusTransition
	}

	found, err := s.repo.UpdateStatus(ctx, order.ID, target)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrOrderNotFound
	}
	previous := order.Status
	updated, err := s.Get(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	logger.Infow("order_status_updated", "order_id", updated.ID, "from", previous, "to", updated.Status)

	s.events.Publish(constants.EventOrderStatusChanged, updated)
	if s.notifier != nil {
		if err := s.notifier.EnqueueOrderStatusNotify(ctx, queue.OrderNotifyPayload{OrderID: updated.ID, Status: updated.Status}); err != nil {
			logger.Warnw("order_status_notify_enqueue_failed", "order_id", updated.ID, "error", err)
		}
	}
	return updated, nil
}

// Delete 删除订单并返回被删除的记录
func (s *OrderService) Delete(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	found, err := s.repo.Delete(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrOrderNotFound
	}
	logger.Infow("order_deleted", "order_id", order.ID)
	s.events.Publish(constants.EventOrderDeleted, map[string]string{"_id": order.ID})
	return order, nil
}
