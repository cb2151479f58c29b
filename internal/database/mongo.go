package database

import (
	"context"
	"time"

	"github.com/foodie-next/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// 集合名称
const (
	CollectionAdmins   = "admins"
	CollectionProducts = "products"
	CollectionOrders   = "orders"
	CollectionMessages = "messages"
)

// OpenMongo 创建 MongoDB 客户端，实际连接在后台完成
// 返回的 Database 句柄立即可用，连接就绪前的请求由就绪中间件拦截
func OpenMongo(uri, name string, timeout time.Duration) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)
	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Database(name), nil
}

// WatchMongo 在后台 ping 直到连接可用，随后持续探活并更新状态
func WatchMongo(ctx context.Context, client *mongo.Client, db *mongo.Database, state *State, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()
		err := client.Ping(pingCtx, readpref.Primary())
		if err != nil {
			if state.Ready() {
				logger.Errorw("mongo_connection_lost", "error", err)
			}
			state.MarkDown(err)
			return
		}
		if !state.Ready() {
			if err := EnsureMongoIndexes(pingCtx, db); err != nil {
				logger.Warnw("mongo_ensure_indexes_failed", "error", err)
			}
			logger.Infow("mongo_connected", "database", db.Name())
		}
		state.MarkReady()
	}

	check()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

// EnsureMongoIndexes 创建唯一索引与排序索引
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(CollectionAdmins).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	for _, name := range []string{CollectionProducts, CollectionOrders, CollectionMessages} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		}); err != nil {
			return err
		}
	}
	return nil
}
