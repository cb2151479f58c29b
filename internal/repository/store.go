package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Store 按数据库驱动组装的仓库集合
type Store struct {
	Admins   AdminRepository
	Products ProductRepository
	Orders   OrderRepository
	Messages MessageRepository
}

// NewGormStore 基于 GORM（sqlite / postgres）创建仓库集合
func NewGormStore(db *gorm.DB, timeout time.Duration) *Store {
	return &Store{
		Admins:   NewAdminRepository(db, timeout),
		Products: NewProductRepository(db, timeout),
		Orders:   NewOrderRepository(db, timeout),
		Messages: NewMessageRepository(db, timeout),
	}
}

// NewMongoStore 基于 MongoDB 创建仓库集合
func NewMongoStore(db *mongo.Database, timeout time.Duration) *Store {
	return &Store{
		Admins:   NewMongoAdminRepository(db, timeout),
		Products: NewMongoProductRepository(db, timeout),
		Orders:   NewMongoOrderRepository(db, timeout),
		Messages: NewMongoMessageRepository(db, timeout),
	}
}
