package admin

import (
	"github.com/foodie-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// Events 后台实时事件 websocket
// @Summary      Admin live events
// @Description  升级为 websocket，推送 {type, data, at}；浏览器可通过 ?token= 传递令牌
// @Tags         realtime
// @Security     BearerAuth
// @Param        token  query  string  false  "Bearer token for browsers"
// @Router       /admin/events [get]
func (h *Handler) Events(c *gin.Context) {
	if err := h.Hub.Serve(c.Writer, c.Request, shared.AdminID(c)); err != nil {
		// 升级失败时 upgrader 已写出 HTTP 错误
		shared.RequestLog(c).Warnw("realtime_upgrade_failed", "error", err)
	}
}
