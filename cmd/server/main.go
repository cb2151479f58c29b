// @title           Foodie API
// @version         1.0
// @description     Food ordering backend: menu, orders, contact messages and admin tooling.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/foodie-next/internal/app"
	"github.com/foodie-next/internal/config"
	"github.com/foodie-next/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiDim       = "\033[2m"
	ansiGreen     = "\033[32m"
	ansiCyan      = "\033[36m"
	ansiBrightYel = "\033[93m"
)

func main() {
	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()
	mode, err := app.ParseMode(mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	printStartupBanner()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	// 缺少 JWT 密钥等关键配置时直接退出
	if err := cfg.Validate(); err != nil {
		stdLog.Fatalf("配置校验失败: %v", err)
	}
	if config.IsWeakSecret(cfg.JWT.SecretKey) {
		if cfg.Server.Mode == "release" {
			stdLog.Fatalf("JWT secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
		logger.Warnw("jwt_secret_weak", "mode", cfg.Server.Mode)
	}
	if cfg.Server.Mode == "release" && cfg.Admin.DefaultEmail != "" && cfg.Admin.DefaultPassword == "" {
		logger.Warnw("default_admin_skipped", "reason", "password_not_set")
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiBrightYel + "╔══════════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiBrightYel + "║              🍕 Foodie API 启动中               ║" + ansiReset)
	fmt.Println(ansiBrightYel + "╚══════════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiCyan + "███████╗ ██████╗  ██████╗ ██████╗ ██╗███████╗" + ansiReset)
	fmt.Println(ansiCyan + "██╔════╝██╔═══██╗██╔═══██╗██╔══██╗██║██╔════╝" + ansiReset)
	fmt.Println(ansiCyan + "█████╗  ██║   ██║██║   ██║██║  ██║██║█████╗  " + ansiReset)
	fmt.Println(ansiCyan + "██╔══╝  ██║   ██║██║   ██║██║  ██║██║██╔══╝  " + ansiReset)
	fmt.Println(ansiCyan + "██║     ╚██████╔╝╚██████╔╝██████╔╝██║███████╗" + ansiReset)
	fmt.Println(ansiCyan + "╚═╝      ╚═════╝  ╚═════╝ ╚═════╝ ╚═╝╚══════╝" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "Endpoints" + ansiReset)
	fmt.Println(ansiGreen + "• API:     /api" + ansiReset)
	fmt.Println(ansiGreen + "• Docs:    /swagger/index.html" + ansiReset)
	fmt.Println(ansiGreen + "• Images:  /public/images" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------" + ansiReset)
}
