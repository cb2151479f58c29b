package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/foodie-next/internal/authz"
	"github.com/foodie-next/internal/cache"
	"github.com/foodie-next/internal/config"
	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/database"
	"github.com/foodie-next/internal/logger"
	"github.com/foodie-next/internal/queue"
	"github.com/foodie-next/internal/realtime"
	"github.com/foodie-next/internal/repository"
	"github.com/foodie-next/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DBState     *database.State
	Store       *repository.Store
	Cache       *cache.Cache
	QueueClient *queue.Client
	Hub         *realtime.Hub

	// 按驱动二选一
	GormDB      *gorm.DB
	MongoClient *mongo.Client
	MongoDB     *mongo.Database

	// Services
	AuthzService   *authz.Service
	TokenService   *service.TokenService
	CaptchaService *service.CaptchaService
	AuthService    *service.AuthService
	ProductService *service.ProductService
	OrderService   *service.OrderService
	MessageService *service.MessageService
	UploadService  *service.UploadService
	EmailService   *service.EmailService
}

// NewContainer 初始化容器
// MongoDB 在后台建立连接，SQL 驱动在此处完成打开与迁移
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	c := &Container{
		Config:      cfg,
		DBState:     database.NewState(cfg.Database.Driver),
		Cache:       cache.New(&cfg.Redis),
		QueueClient: queue.NewClient(&cfg.Queue),
		Hub:         realtime.NewHub(cfg.CORS.AllowedOrigins),
	}

	if err := c.initStore(); err != nil {
		return nil, err
	}
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewContainerWithStore 使用现成的仓库集合初始化容器，数据库视为已就绪
func NewContainerWithStore(cfg *config.Config, store *repository.Store) (*Container, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("config and store are required")
	}
	c := &Container{
		Config:      cfg,
		DBState:     database.NewState(cfg.Database.Driver),
		Store:       store,
		Cache:       cache.New(&cfg.Redis),
		QueueClient: queue.NewClient(&cfg.Queue),
		Hub:         realtime.NewHub(cfg.CORS.AllowedOrigins),
	}
	c.DBState.MarkReady()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initStore() error {
	dbCfg := c.Config.Database
	timeout := time.Duration(dbCfg.TimeoutSeconds) * time.Second

	switch strings.ToLower(strings.TrimSpace(dbCfg.Driver)) {
	case constants.DBDriverMongo:
		client, db, err := database.OpenMongo(dbCfg.DSN, dbCfg.Name, timeout)
		if err != nil {
			return err
		}
		c.MongoClient = client
		c.MongoDB = db
		c.Store = repository.NewMongoStore(db, timeout)
		logger.Infow("provider_mongo_client_created", "database", dbCfg.Name)
	default:
		db, err := database.OpenGorm(dbCfg.Driver, dbCfg.DSN, database.PoolConfig{
			MaxOpenConns:           dbCfg.Pool.MaxOpenConns,
			MaxIdleConns:           dbCfg.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: dbCfg.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: dbCfg.Pool.ConnMaxIdleTimeSeconds,
		}, c.Config.Server.Mode == "debug")
		if err != nil {
			c.DBState.MarkDown(err)
			return err
		}
		c.GormDB = db
		c.Store = repository.NewGormStore(db, timeout)
		c.DBState.MarkReady()
		logger.Infow("provider_sql_ready", "driver", dbCfg.Driver)
	}
	return nil
}

func (c *Container) initServices() error {
	authzService, err := authz.NewService()
	if err != nil {
		return err
	}
	c.AuthzService = authzService

	ttl := time.Duration(c.Config.JWT.ExpireHours) * time.Hour
	tokens, err := service.NewTokenService(c.Config.JWT.SecretKey, ttl)
	if err != nil {
		return err
	}
	c.TokenService = tokens

	var denylist service.TokenDenylist
	if c.Cache.Enabled() {
		denylist = c.Cache
	}

	store, err := service.NewImageStore(c.Config.Upload)
	if err != nil {
		return err
	}

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.Store.Admins, tokens, denylist, c.CaptchaService)
	c.ProductService = service.NewProductService(c.Store.Products, c.Store.Admins, c.Cache)
	c.OrderService = service.NewOrderService(c.Store.Orders, c.Hub, c.QueueClient, c.Config.Order.EnforceTransitions)
	c.MessageService = service.NewMessageService(c.Store.Messages, c.Hub, c.QueueClient)
	c.UploadService = service.NewUploadService(c.Config.Upload, store)
	c.EmailService = service.NewEmailService(&c.Config.Email)
	logger.Infow("provider_services_ready", "upload_backend", store.Name(), "redis", c.Cache.Enabled(), "queue", c.QueueClient.Enabled())
	return nil
}

// Close 释放外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_failed", "error", err)
	}
	if err := c.Cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
	if c.GormDB != nil {
		if sqlDB, err := c.GormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if c.MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.MongoClient.Disconnect(ctx); err != nil {
			logger.Warnw("provider_close_mongo_failed", "error", err)
		}
	}
}
