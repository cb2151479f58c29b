package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageRepository 留言数据访问接口
type MessageRepository interface {
	List(ctx context.Context, filter MessageListFilter) ([]models.Message, error)
	Stats(ctx context.Context) (models.MessageStats, error)
	GetByID(ctx context.Context, id string) (*models.Message, error)
	Create(ctx context.Context, message *models.Message) error
	MarkRead(ctx context.Context, id string) error
	SaveReply(ctx context.Context, id, reply string, repliedAt time.Time) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// GormMessageRepository GORM 实现
type GormMessageRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewMessageRepository 创建留言仓库
func NewMessageRepository(db *gorm.DB, timeout time.Duration) *GormMessageRepository {
	return &GormMessageRepository{db: db, timeout: timeout}
}

// List 留言列表，按创建时间倒序
func (r *GormMessageRepository) List(ctx context.Context, filter MessageListFilter) ([]models.Message, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	query := r.db.WithContext(ctx).Model(&models.Message{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	query = applyPagination(query.Order("created_at DESC"), filter.Page, filter.PageSize)

	messages := make([]models.Message, 0)
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// Stats 按状态统计留言
func (r *GormMessageRepository) Stats(ctx context.Context) (models.MessageStats, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return models.MessageStats{}, err
	}
	var stats models.MessageStats
	for _, row := range rows {
		accumulateStats(&stats, row.Status, row.Total)
	}
	return stats, nil
}

// GetByID 根据 ID 获取留言
func (r *GormMessageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var message models.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// Create 创建留言
func (r *GormMessageRepository) Create(ctx context.Context, message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return r.db.WithContext(ctx).Create(message).Error
}

// MarkRead 仅将未读留言置为已读
func (r *GormMessageRepository) MarkRead(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return r.db.WithContext(ctx).Model(&models.Message{}).
		Where("id = ? AND status = ?", id, constants.MessageStatusUnread).
		Update("status", constants.MessageStatusRead).Error
}

// SaveReply 保存回复，返回是否存在
func (r *GormMessageRepository) SaveReply(ctx context.Context, id, reply string, repliedAt time.Time) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	result := r.db.WithContext(ctx).Model(&models.Message{}).Where("id = ?", id).Updates(map[string]interface{}{
		"reply":      reply,
		"status":     constants.MessageStatusReplied,
		"replied_at": repliedAt,
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除留言，返回是否存在
func (r *GormMessageRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Message{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func accumulateStats(stats *models.MessageStats, status string, total int64) {
	stats.Total += total
	switch status {
	case constants.MessageStatusUnread:
		stats.Unread += total
	case constants.MessageStatusRead:
		stats.Read += total
	case constants.MessageStatusReplied:
		stats.Replied += total
	}
}
