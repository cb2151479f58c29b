package shared

import (
	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminID 读取鉴权中间件写入的管理员 ID
func AdminID(c *gin.Context) string {
	return c.GetString(constants.CtxAdminID)
}

// AdminClaims 读取当前令牌声明
func AdminClaims(c *gin.Context) *service.TokenClaims {
	value, ok := c.Get(constants.CtxAdminClaims)
	if !ok {
		return nil
	}
	claims, _ := value.(*service.TokenClaims)
	return claims
}
