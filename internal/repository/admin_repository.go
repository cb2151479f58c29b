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

// AdminRepository 管理员数据访问接口
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Admin, error)
	List(ctx context.Context) ([]models.Admin, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, admin *models.Admin) error
	UpdateRole(ctx context.Context, id, role string) error
}

// GormAdminRepository GORM 实现
type GormAdminRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewAdminRepository 创建管理员仓库
func NewAdminRepository(db *gorm.DB, timeout time.Duration) *GormAdminRepository {
	return &GormAdminRepository{db: db, timeout: timeout}
}

// GetByEmail 根据邮箱获取管理员（大小写不敏感）
func (r *GormAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var admin models.Admin
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.WithContext(ctx).Where("LOWER(email) = ?", normalized).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// GetByID 根据 ID 获取管理员
func (r *GormAdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var admin models.Admin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// ListByIDs 批量获取管理员
func (r *GormAdminRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Admin, error) {
	admins := make([]models.Admin, 0, len(ids))
	if len(ids) == 0 {
		return admins, nil
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// List 获取管理员列表
func (r *GormAdminRepository) List(ctx context.Context) ([]models.Admin, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	admins := make([]models.Admin, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// Count 统计管理员数量
func (r *GormAdminRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建管理员
func (r *GormAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return r.db.WithContext(ctx).Create(admin).Error
}

// UpdateRole 更新管理员角色
func (r *GormAdminRepository) UpdateRole(ctx context.Context, id, role string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return r.db.WithContext(ctx).Model(&models.Admin{}).Where("id = ?", id).Update("role", role).Error
}
