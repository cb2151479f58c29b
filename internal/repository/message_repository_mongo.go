package repository

import (
	"context"
	"strings"
	"time"

	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoMessageRepository MongoDB 实现
type MongoMessageRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewMongoMessageRepository 创建留言仓库
func NewMongoMessageRepository(db *mongo.Database, timeout time.Duration) *MongoMessageRepository {
	return &MongoMessageRepository{coll: db.Collection("messages"), timeout: timeout}
}

// List 留言列表，按创建时间倒序
func (r *MongoMessageRepository) List(ctx context.Context, filter MessageListFilter) ([]models.Message, error) {
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
	messages := make([]models.Message, 0)
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Stats 按状态统计留言
func (r *MongoMessageRepository) Stats(ctx context.Context) (models.MessageStats, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return models.MessageStats{}, err
	}
	var rows []struct {
		Status string `bson:"_id"`
		Total  int64  `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return models.MessageStats{}, err
	}
	var stats models.MessageStats
	for _, row := range rows {
		accumulateStats(&stats, row.Status, row.Total)
	}
	return stats, nil
}

// GetByID 根据 ID 获取留言
func (r *MongoMessageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	var message models.Message
	if err := r.coll.FindOne(ctx, idFilter(id)).Decode(&message); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// Create 创建留言
func (r *MongoMessageRepository) Create(ctx context.Context, message *models.Message) error {
	if message.ID == "" {
		message.ID = newMongoID()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	_, err := r.coll.InsertOne(ctx, message)
	return err
}

// MarkRead 仅将未读留言置为已读
func (r *MongoMessageRepository) MarkRead(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	filter := idFilter(id)
	filter["status"] = constants.MessageStatusUnread
	_, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": constants.MessageStatusRead}})
	return err
}

// SaveReply 保存回复，返回是否存在
func (r *MongoMessageRepository) SaveReply(ctx context.Context, id, reply string, repliedAt time.Time) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	res, err := r.coll.UpdateOne(ctx, idFilter(id), bson.M{"$set": bson.M{
		"reply":     reply,
		"status":    constants.MessageStatusReplied,
		"repliedAt": repliedAt,
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete 删除留言，返回是否存在
func (r *MongoMessageRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	res, err := r.coll.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
