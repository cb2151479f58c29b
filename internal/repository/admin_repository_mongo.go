package repository

import (
	"context"
	"strings"
	"time"

	"github.com/foodie-next/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAdminRepository MongoDB 实现
type MongoAdminRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoAdminRepository 创建管理员仓库
func NewMongoAdminRepository(db *mongo.Database, timeout time.Duration) *MongoAdminRepository {
	return &MongoAdminRepository{coll: db.Collection("admins"), timeout: timeout}
}

// GetByEmail 根据邮箱获取管理员
func (r *MongoAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var admin models.Admin
	err := r.coll.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&admin)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// GetByID 根据 ID 获取管理员
func (r *MongoAdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var admin models.Admin
	if err := r.coll.FindOne(ctx, idFilter(id)).Decode(&admin); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// ListByIDs 批量获取管理员
func (r *MongoAdminRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Admin, error) {
	admins := make([]models.Admin, 0, len(ids))
	if len(ids) == 0 {
		return admins, nil
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	cur, err := r.coll.Find(ctx, idsFilter(ids))
	if err != nil {
		return nil, err
	}
	if err := cur.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// List 获取管理员列表
func (r *MongoAdminRepository) List(ctx context.Context) ([]models.Admin, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	admins := make([]models.Admin, 0)
	if err := cur.All(ctx, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// Count 统计管理员数量
func (r *MongoAdminRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

// Create 创建管理员
func (r *MongoAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = newMongoID()
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	_, err := r.coll.InsertOne(ctx, admin)
	return err
}

// UpdateRole 更新管理员角色
func (r *MongoAdminRepository) UpdateRole(ctx context.Context, id, role string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	_, err := r.coll.UpdateOne(ctx, idFilter(id), bson.M{"$set": bson.M{"role": role}})
	return err
}
