package shared

import (
	"errors"

	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/http/response"
	"github.com/foodie-next/internal/logger"
	"github.com/foodie-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(constants.CtxRequestID); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// ToAppError 将业务错误映射为 HTTP 状态与对外消息
func ToAppError(err error) *response.AppError {
	var domainErr *service.DomainError
	if errors.As(err, &domainErr) {
		return response.WrapError(statusForKind(domainErr.Kind), domainErr.Message, nil)
	}
	switch {
	case errors.Is(err, service.ErrTokenInvalid):
		return response.WrapError(response.CodeUnauthorized, "Invalid or expired token", nil)
	case errors.Is(err, service.ErrValidation):
		return response.WrapError(response.CodeBadRequest, err.Error(), nil)
	}
	return response.Internal(err)
}

func statusForKind(kind error) int {
	switch {
	case errors.Is(kind, service.ErrValidation):
		return response.CodeBadRequest
	case errors.Is(kind, service.ErrUnauthorized):
		return response.CodeUnauthorized
	case errors.Is(kind, service.ErrForbidden):
		return response.CodeForbidden
	case errors.Is(kind, service.ErrNotFound):
		return response.CodeNotFound
	case errors.Is(kind, service.ErrUnavailable):
		return response.CodeServiceUnavailable
	default:
		return response.CodeInternal
	}
}

// RespondError 按错误类别返回响应，未预期的错误记录日志。
func RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	appErr := ToAppError(err)
	if appErr.Err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"path", c.FullPath(),
			"error", appErr.Err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		RequestLog(c).Warnw("handler_error",
			"code", code,
			"message", msg,
			"error", err,
		)
	}
	response.Error(c, code, msg)
}
