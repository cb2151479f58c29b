package service

import (
	"context"
	"strings"
	"time"

	"github.com/foodie-next/internal/logger"
	"github.com/foodie-next/internal/models"
	"github.com/foodie-next/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	productListCacheTTL    = 30 * time.Second
	productListCachePrefix = "products:list:"
)

// JSONCache 业务层使用的 JSON 缓存，Redis 未启用时为空操作
type JSONCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DelPattern(ctx context.Context, pattern string) error
}

// ProductService 菜品业务服务
type ProductService struct {
	repo      repository.ProductRepository
	adminRepo repository.AdminRepository
	cache     JSONCache
}

// NewProductService 创建菜品服务
func NewProductService(repo repository.ProductRepository, adminRepo repository.AdminRepository, cache JSONCache) *ProductService {
	return &ProductService{repo: repo, adminRepo: adminRepo, cache: cache}
}

// ProductQuery 菜品查询条件
type ProductQuery struct {
	Category string
	Search   string
	Page     int
	PageSize int
}

// CreateProductInput 创建菜品输入，Price 宽松解析
type CreateProductInput struct {
	Name        string
	Price       interface{}
	Category    string
	Description string
	Image       string
	Stock       *int
}

// UpdateProductInput 部分更新输入，nil 表示不修改
type UpdateProductInput struct {
	Name        *string
	Price       interface{}
	Category    *string
	Description *string
	Image       *string
	Stock       *int
}

// List 菜品列表，附带创建者信息
func (s *ProductService) List(ctx context.Context, query ProductQuery) ([]models.Product, error) {
	query.Category = strings.TrimSpace(query.Category)
	query.Search = strings.TrimSpace(query.Search)
	cacheable := query.Search == "" && query.PageSize <= 0
	cacheKey := productListCachePrefix + query.Category

	if cacheable && s.cache != nil {
		var cached []models.Product
		hit, err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			logger.Warnw("product_list_cache_read_failed", "category", query.Category, "error", err)
		} else if hit {
			return cached, nil
		}
	}

	products, err := s.repo.List(ctx, repository.ProductListFilter{
		Category: query.Category,
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		return nil, err
	}
	if err := s.attachCreators(ctx, products); err != nil {
		return nil, err
	}

	if cacheable && s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, products, productListCacheTTL); err != nil {
			logger.Warnw("product_list_cache_write_failed", "category", query.Category, "error", err)
		}
	}
	return products, nil
}

// ListByCategory 按分类获取菜品
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.List(ctx, ProductQuery{Category: category})
}

// Get 获取菜品详情
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	products := []models.Product{*product}
	if err := s.attachCreators(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

// Create 创建菜品，创建者为当前管理员
func (s *ProductService) Create(ctx context.Context, adminID string, input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	description := strings.TrimSpace(input.Description)
	image := strings.TrimSpace(input.Image)
	price, ok := models.ParseMoney(input.Price)
	if name == "" || category == "" || description == "" || image == "" || !ok || !price.GreaterThan(decimal.Zero) {
		return nil, ErrProductFields
	}
	stock := 0
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, validationError("Stock cannot be negative")
		}
		stock = *input.Stock
	}

	product := &models.Product{
		Name:        name,
		Price:       price,
		Category:    category,
		Description: description,
		Image:       image,
		Stock:       stock,
		CreatedByID: adminID,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.invalidateList(ctx)
	logger.Infow("product_created", "product_id", product.ID, "admin_id", adminID)

	products := []models.Product{*product}
	if err := s.attachCreators(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

// Update 部分更新菜品
func (s *ProductService) Update(ctx context.Context, id string, input UpdateProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrProductFields
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		price, ok := models.ParseMoney(input.Price)
		if !ok || !price.GreaterThan(decimal.Zero) {
			return nil, validationError("Invalid price value")
		}
		product.Price = price
	}
	if input.Category != nil {
		if strings.TrimSpace(*input.Category) == "" {
			return nil, ErrProductFields
		}
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Image != nil {
		product.Image = strings.TrimSpace(*input.Image)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, validationError("Stock cannot be negative")
		}
		product.Stock = *input.Stock
	}
	product.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidateList(ctx)
	logger.Infow("product_updated", "product_id", product.ID)

	products := []models.Product{*product}
	if err := s.attachCreators(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

// Delete 删除菜品并返回被删除的记录，图片保留
func (s *ProductService) Delete(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	found, err := s.repo.Delete(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrProductNotFound
	}
	s.invalidateList(ctx)
	logger.Infow("product_deleted", "product_id", product.ID)
	return product, nil
}

func (s *ProductService) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DelPattern(ctx, productListCachePrefix+"*"); err != nil {
		logger.Warnw("product_list_cache_invalidate_failed", "error", err)
	}
}

// attachCreators 批量填充创建者摘要，创建者已不存在时为 nil
func (s *ProductService) attachCreators(ctx context.Context, products []models.Product) error {
	if len(products) == 0 || s.adminRepo == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(products))
	ids := make([]string, 0, len(products))
	for _, product := range products {
		if product.CreatedByID == "" {
			continue
		}
		if _, ok := seen[product.CreatedByID]; ok {
			continue
		}
		seen[product.CreatedByID] = struct{}{}
		ids = append(ids, product.CreatedByID)
	}
	if len(ids) == 0 {
		return nil
	}
	admins, err := s.adminRepo.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[string]models.AdminSummary, len(admins))
	for i := range admins {
		summary := admins[i].Summary()
		summary.Role = ""
		byID[admins[i].ID] = summary
	}
	for i := range products {
		if summary, ok := byID[products[i].CreatedByID]; ok {
			creator := summary
			products[i].CreatedBy = &creator
		}
	}
	return nil
}
