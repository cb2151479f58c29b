package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/foodie-next/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	List(ctx context.Context, filter OrderListFilter) ([]models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB, timeout time.Duration) *GormOrderRepository {
	return &GormOrderRepository{db: db, timeout: timeout}
}

// List 订单列表，按创建时间倒序
func (r *GormOrderRepository) List(ctx context.Context, filter OrderListFilter) ([]models.Order, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	query := r.db.WithContext(ctx).Model(&models.Order{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	query = applyPagination(query.Order("created_at DESC"), filter.Page, filter.PageSize)

	orders := make([]models.Order, 0)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var order models.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Create 创建订单
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return r.db.WithContext(ctx).Create(order).Error
}

// UpdateStatus 更新订单状态，返回是否存在
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	result := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除订单，返回是否存在
func (r *GormOrderRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
