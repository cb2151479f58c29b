package router

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/foodie-next/internal/authz"
	"github.com/foodie-next/internal/config"
	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/database"
	"github.com/foodie-next/internal/http/response"
	"github.com/foodie-next/internal/logger"
	"github.com/foodie-next/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// 对外提示
const (
	msgNoToken           = "No token provided"
	msgInvalidToken      = "Invalid or expired token"
	msgAccessDenied      = "Access denied"
	msgInternal          = "Internal Server Error"
	msgResourceNotReady  = "Database is not connected. Please try again later."
	msgAuthStoreNotReady = "Database connection is not ready"
)

// TokenAuthenticator 校验令牌并返回声明
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*service.TokenClaims, error)
}

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(buildCORSConfig(cfg))
}

func buildCORSConfig(cfg config.CORSConfig) cors.Config {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Origin",
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			requestIDHeader,
		}
	}

	corsConfig := cors.Config{
		AllowMethods:     allowedMethods,
		AllowHeaders:     allowedHeaders,
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}
	// 通配且不携带凭证时直接返回 *，否则回显匹配的来源
	if containsWildcard(allowedOrigins) && !cfg.AllowCredentials {
		corsConfig.AllowAllOrigins = true
		return corsConfig
	}
	corsConfig.AllowOriginFunc = func(origin string) bool {
		return originAllowed(origin, allowedOrigins)
	}
	return corsConfig
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if strings.TrimSpace(origin) == "*" {
			return true
		}
	}
	return false
}

func originAllowed(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range allowedOrigins {
		allowed = strings.TrimSpace(allowed)
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.CtxRequestID, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			entry.Errorw("request", "errors", c.Errors.String())
			return
		}
		entry.Infow("request")
	}
}

// RecoveryMiddleware 捕获 panic，统一返回 500 信封
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Errorw("request_panic",
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", fmt.Sprint(recovered),
		)
		response.Abort(c, response.CodeInternal, msgInternal)
	})
}

func getRequestID(c *gin.Context) string {
	return c.GetString(constants.CtxRequestID)
}

// ReadinessMiddleware 数据库未就绪时返回 503，不进入 handler
func ReadinessMiddleware(state *database.State, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if state.Ready() {
			c.Next()
			return
		}
		logger.Warnw("database_not_ready",
			"path", c.Request.URL.Path,
			"driver", state.Driver(),
			"error", state.LastError(),
		)
		response.Abort(c, response.CodeServiceUnavailable, message)
	}
}

// AdminAuthMiddleware 管理员令牌鉴权中间件
// allowQueryToken 仅用于 websocket 路由，浏览器无法为升级请求设置 Authorization 头
func AdminAuthMiddleware(auth TokenAuthenticator, allowQueryToken bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && allowQueryToken {
			token = strings.TrimSpace(c.Query("token"))
		}
		if token == "" {
			response.Abort(c, response.CodeUnauthorized, msgNoToken)
			return
		}
		if auth == nil {
			logger.Errorw("admin_auth_service_unavailable")
			response.Abort(c, response.CodeUnauthorized, msgInvalidToken)
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil || claims == nil {
			response.Abort(c, response.CodeUnauthorized, msgInvalidToken)
			return
		}

		c.Set(constants.CtxAdminID, claims.AdminID)
		c.Set(constants.CtxAdminEmail, claims.Email)
		c.Set(constants.CtxAdminRole, claims.Role)
		c.Set(constants.CtxAdminClaims, claims)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AdminRBACMiddleware 管理端 RBAC 鉴权中间件
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			response.Abort(c, response.CodeForbidden, msgAccessDenied)
			return
		}

		role := c.GetString(constants.CtxAdminRole)
		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceRole(role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"admin_id", c.GetString(constants.CtxAdminID),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			response.Abort(c, response.CodeForbidden, msgAccessDenied)
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"admin_id", c.GetString(constants.CtxAdminID),
				"role", role,
				"method", c.Request.Method,
				"resource", authz.NormalizeObject(resource),
			)
			response.Abort(c, response.CodeForbidden, msgAccessDenied)
			return
		}

		c.Next()
	}
}

// UploadLimitMiddleware 在传输层限制请求体大小
func UploadLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// uploadBodyLimit 按输入方式估算请求体上限：multipart 留出表单开销，base64 膨胀约 4/3
func uploadBodyLimit(inputMode string, maxSize int64) int64 {
	const overhead = 64 * 1024
	if inputMode == constants.UploadInputBase64 {
		return maxSize/3*4 + overhead
	}
	return maxSize + overhead
}
