package admin

import (
	"github.com/foodie-next/internal/http/handlers/shared"
	"github.com/foodie-next/internal/http/response"
	"github.com/foodie-next/internal/models"

	"github.com/gin-gonic/gin"
)

// Profile 当前管理员信息
// @Summary      Current admin profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /auth/profile [get]
func (h *Handler) Profile(c *gin.Context) {
	admin, err := h.AuthService.Profile(c.Request.Context(), shared.AdminID(c))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.OK(c, gin.H{"admin": admin})
}

// Logout 吊销当前令牌
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if err := h.AuthService.Logout(c.Request.Context(), shared.AdminClaims(c)); err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, response.CodeOK, "Logout successful", nil)
}

// ListAdmins 管理员列表，仅超级管理员
// @Summary      List admins
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /auth/admins [get]
func (h *Handler) ListAdmins(c *gin.Context) {
	admins, err := h.AuthService.ListAdmins(c.Request.Context())
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	summaries := make([]models.AdminSummary, 0, len(admins))
	for i := range admins {
		summaries = append(summaries, admins[i].Summary())
	}
	response.OK(c, gin.H{"count": len(summaries), "admins": summaries})
}
