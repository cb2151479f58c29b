package response

import (
	"github.com/foodie-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// Success 成功响应：{success:true, message?, ...payload}
func Success(c *gin.Context, code int, msg string, payload gin.H) {
	c.JSON(code, envelope(true, msg, payload))
}

// OK 200 成功响应
func OK(c *gin.Context, payload gin.H) {
	Success(c, CodeOK, "", payload)
}

// Created 201 成功响应
func Created(c *gin.Context, msg string, payload gin.H) {
	Success(c, CodeCreated, msg, payload)
}

// Error 错误响应：{success:false, message}
func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, attachRequestID(c, code, envelope(false, msg, nil)))
}

// Abort 错误响应并终止后续中间件
func Abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, attachRequestID(c, code, envelope(false, msg, nil)))
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

func envelope(success bool, msg string, payload gin.H) gin.H {
	body := gin.H{"success": success}
	if msg != "" {
		body["message"] = msg
	}
	for key, value := range payload {
		if key == "success" {
			continue
		}
		body[key] = value
	}
	return body
}

// attachRequestID 服务端错误附带请求 ID 便于排查
func attachRequestID(c *gin.Context, code int, body gin.H) gin.H {
	if c == nil || code < CodeInternal {
		return body
	}
	if value, ok := c.Get(constants.CtxRequestID); ok {
		if id, ok := value.(string); ok && id != "" {
			body["requestId"] = id
		}
	}
	return body
}
