package app

import (
	"context"
	"time"

	"github.com/foodie-next/internal/database"
	"github.com/foodie-next/internal/logger"
	"github.com/foodie-next/internal/provider"
)

const storeReadyPollInterval = 500 * time.Millisecond

// StoreService 数据库后台服务
// MongoDB 驱动下持续探活并维护就绪状态；数据库就绪后初始化默认管理员
type StoreService struct {
	container *provider.Container
	interval  time.Duration
}

// NewStoreService 创建数据库后台服务
func NewStoreService(container *provider.Container) *StoreService {
	interval := 5 * time.Second
	if container != nil && container.Config != nil && container.Config.Database.TimeoutSeconds > 0 {
		interval = time.Duration(container.Config.Database.TimeoutSeconds) * time.Second
	}
	return &StoreService{container: container, interval: interval}
}

// Name 服务名称
func (s *StoreService) Name() string {
	return "store"
}

// Start 阻塞直到 ctx 结束
func (s *StoreService) Start(ctx context.Context) error {
	c := s.container
	if c == nil {
		<-ctx.Done()
		return nil
	}
	if c.MongoClient != nil {
		go database.WatchMongo(ctx, c.MongoClient, c.MongoDB, c.DBState, s.interval)
	}

	if s.waitReady(ctx) {
		s.ensureDefaultAdmin(ctx)
	}
	<-ctx.Done()
	return nil
}

// Stop 连接由容器统一关闭
func (s *StoreService) Stop(ctx context.Context) error {
	return nil
}

func (s *StoreService) waitReady(ctx context.Context) bool {
	if s.container.DBState.Ready() {
		return true
	}
	ticker := time.NewTicker(storeReadyPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			if s.container.DBState.Ready() {
				return true
			}
		}
	}
}

func (s *StoreService) ensureDefaultAdmin(ctx context.Context) {
	adminCfg := s.container.Config.Admin
	if adminCfg.DefaultEmail == "" || adminCfg.DefaultPassword == "" {
		return
	}
	if _, err := s.container.AuthService.EnsureDefaultAdmin(ctx, adminCfg.DefaultName, adminCfg.DefaultEmail, adminCfg.DefaultPassword); err != nil {
		logger.Warnw("default_admin_init_failed", "email", adminCfg.DefaultEmail, "error", err)
	}
}
