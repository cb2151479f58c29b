package repository

import (
	"context"
	"strings"
	"time"

	"github.com/foodie-next/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoProductRepository MongoDB 实现
type MongoProductRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoProductRepository 创建菜品仓库
func NewMongoProductRepository(db *mongo.Database, timeout time.Duration) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection("products"), timeout: timeout}
}

// List 菜品列表，按创建时间倒序
func (r *MongoProductRepository) List(ctx context.Context, filter ProductListFilter) ([]models.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := bson.M{}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query["category"] = category
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query["name"] = bson.M{"$regex": containsRegex(search)}
	}
	cur, err := r.coll.Find(ctx, query, newestFirst(filter.Page, filter.PageSize))
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0)
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID 根据 ID 获取菜品
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var product models.Product
	if err := r.coll.FindOne(ctx, idFilter(id)).Decode(&product); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建菜品
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now()
	if product.ID == "" {
		product.ID = newMongoID()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	_, err := r.coll.InsertOne(ctx, product)
	return err
}

// Update 更新菜品
func (r *MongoProductRepository) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	_, err := r.coll.UpdateOne(ctx, idFilter(product.ID), bson.M{"$set": bson.M{
		"name":        product.Name,
		"price":       product.Price,
		"category":    product.Category,
		"description": product.Description,
		"image":       product.Image,
		"stock":       product.Stock,
		"updatedAt":   product.UpdatedAt,
	}})
	return err
}

// Delete 删除菜品，返回是否存在
func (r *MongoProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	res, err := r.coll.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
