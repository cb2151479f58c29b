package app

import (
	"errors"

	"github.com/foodie-next/internal/logger"
	"github.com/foodie-next/internal/provider"
	"github.com/foodie-next/internal/router"
	"github.com/foodie-next/internal/worker"
)

// BuildRunner 构建服务运行器，返回的容器由调用方在退出时关闭
func BuildRunner(opts Options) (*Runner, *provider.Container, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, nil, errors.New("config is nil")
	}
	if _, err := ParseMode(opts.Mode); err != nil {
		return nil, nil, err
	}
	if opts.Mode == ModeWorker && !cfg.Queue.Enabled {
		return nil, nil, errors.New("worker mode requires queue.enabled")
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	// 数据库探活与默认管理员初始化
	services := []Service{NewStoreService(container)}

	if opts.runsHTTP() {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine, container.Hub))
	}

	if opts.runsWorker() {
		if cfg.Queue.Enabled {
			workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
			if err != nil {
				container.Close()
				return nil, nil, err
			}
			services = append(services, workerService)
		} else {
			logger.Warnw("app_worker_skipped", "reason", "queue_disabled")
		}
	}

	return NewRunner(services...), container, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts, err := normalizeOptions(opts)
	if err != nil {
		return err
	}
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, container, err := BuildRunner(opts)
	if err != nil {
		return err
	}
	defer container.Close()

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode, "driver", opts.Config.Database.Driver)
	return RunWithOptions(runner, opts)
}
