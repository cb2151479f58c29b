package public

import "github.com/foodie-next/internal/provider"

// Handler 前台/公开接口处理器入口
// 说明：该处理器用于顾客下单、留言、菜单浏览以及管理员注册登录。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
