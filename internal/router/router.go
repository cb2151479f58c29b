package router

import (
	"fmt"
	"strings"

	"github.com/foodie-next/internal/config"
	adminhandlers "github.com/foodie-next/internal/http/handlers/admin"
	publichandlers "github.com/foodie-next/internal/http/handlers/public"
	"github.com/foodie-next/internal/http/response"
	"github.com/foodie-next/internal/logger"
	"github.com/foodie-next/internal/provider"

	_ "github.com/foodie-next/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "foodie"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "Too many login attempts. Please try again in %d seconds.",
	}

	// 中间件
	r.Use(RecoveryMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 本地存储的菜品图片
	r.Static("/public", cfg.Server.PublicDir)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	resourceReady := ReadinessMiddleware(c.DBState, msgResourceNotReady)
	authReady := ReadinessMiddleware(c.DBState, msgAuthStoreNotReady)
	adminAuth := AdminAuthMiddleware(c.AuthService, false)
	rbac := AdminRBACMiddleware(c.AuthzService)

	api := r.Group("/api")
	{
		api.GET("/health", publicHandler.Health)

		// 管理员认证
		auth := api.Group("/auth")
		{
			auth.GET("/captcha", publicHandler.Captcha)
			auth.POST("/register", authReady, publicHandler.Register)
			auth.POST("/login", authReady, RateLimitMiddleware(c.Cache.Client(), loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.GET("/profile", authReady, adminAuth, rbac, adminHandler.Profile)
			auth.POST("/logout", adminAuth, rbac, adminHandler.Logout)
			auth.GET("/admins", authReady, adminAuth, rbac, adminHandler.ListAdmins)
		}

		// 菜单：读公开，写需鉴权
		products := api.Group("/products", resourceReady)
		{
			products.GET("", publicHandler.ListProducts)
			products.GET("/category/:category", publicHandler.ListProductsByCategory)
			products.GET("/:id", publicHandler.GetProduct)
			products.POST("", adminAuth, rbac, adminHandler.CreateProduct)
			products.PUT("/:id", adminAuth, rbac, adminHandler.UpdateProduct)
			products.DELETE("/:id", adminAuth, rbac, adminHandler.DeleteProduct)
		}

		// 订单：下单公开，其余需鉴权
		orders := api.Group("/orders", resourceReady)
		{
			orders.POST("", publicHandler.CreateOrder)
			orders.GET("", adminAuth, rbac, adminHandler.ListOrders)
			orders.GET("/:id", adminAuth, rbac, adminHandler.GetOrder)
			orders.PATCH("/:id/status", adminAuth, rbac, adminHandler.UpdateOrderStatus)
			orders.DELETE("/:id", adminAuth, rbac, adminHandler.DeleteOrder)
		}

		// 留言：提交公开，其余需鉴权
		messages := api.Group("/messages", resourceReady)
		{
			messages.POST("", publicHandler.CreateMessage)
			messages.GET("", adminAuth, rbac, adminHandler.ListMessages)
			messages.GET("/:id", adminAuth, rbac, adminHandler.GetMessage)
			messages.PUT("/:id/reply", adminAuth, rbac, adminHandler.ReplyMessage)
			messages.PUT("/:id/read", adminAuth, rbac, adminHandler.MarkMessageRead)
			messages.DELETE("/:id", adminAuth, rbac, adminHandler.DeleteMessage)
		}

		images := api.Group("/images", adminAuth, rbac)
		{
			bodyLimit := uploadBodyLimit(c.UploadService.InputMode(), c.UploadService.MaxSize())
			images.POST("/upload", UploadLimitMiddleware(bodyLimit), adminHandler.UploadImage)
			images.DELETE("/delete", adminHandler.DeleteImage)
		}

		api.GET("/admin/events", AdminAuthMiddleware(c.AuthService, true), rbac, adminHandler.Events)
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	return r
}
