package repository

import (
	"context"
	"strings"
	"time"

	"github.com/foodie-next/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoOrderRepository MongoDB 实现
type MongoOrderRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoOrderRepository 创建订单仓库
func NewMongoOrderRepository(db *mongo.Database, timeout time.Duration) *MongoOrderRepository {
	return &MongoOrderRepository{coll: db.Collection("orders"), timeout: timeout}
}

// List 订单列表，按创建时间倒序
func (r *MongoOrderRepository) List(ctx context.Context, filter OrderListFilter) ([]models.Order, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	query := bson.M{}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query["status"] = status
	}
	cur, err := r.coll.Find(ctx, query, newestFirst(filter.Page, filter.PageSize))
	if err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0)
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetByID 根据 ID 获取订单
func (r *MongoOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var order models.Order
	if err := r.coll.FindOne(ctx, idFilter(id)).Decode(&order); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// Create 创建订单
func (r *MongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	now := time.Now()
	if order.ID == "" {
		order.ID = newMongoID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	_, err := r.coll.InsertOne(ctx, order)
	return err
}

// UpdateStatus 更新订单状态，返回是否存在
func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	res, err := r.coll.UpdateOne(ctx, idFilter(id), bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete 删除订单，返回是否存在
func (r *MongoOrderRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	res, err := r.coll.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
