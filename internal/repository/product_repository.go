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

// ProductRepository 菜品数据访问接口
type ProductRepository interface {
	List(ctx context.Context, filter ProductListFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) (bool, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewProductRepository 创建菜品仓库
func NewProductRepository(db *gorm.DB, timeout time.Duration) *GormProductRepository {
	return &GormProductRepository{db: db, timeout: timeout}
}

// List 菜品列表，按创建时间倒序
func (r *GormProductRepository) List(ctx context.Context, filter ProductListFilter) ([]models.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where(containsClause(r.db, "name"), likePattern(search))
	}
	query = applyPagination(query.Order("created_at DESC"), filter.Page, filter.PageSize)

	products := make([]models.Product, 0)
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID 根据 ID 获取菜品
func (r *GormProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建菜品
func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return r.db.WithContext(ctx).Create(product).Error
}

// Update 更新菜品
func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return r.db.WithContext(ctx).Save(product).Error
}

// Delete 删除菜品，返回是否存在
func (r *GormProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
