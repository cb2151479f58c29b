package public

import (
	"github.com/foodie-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Health 存活检查，数据库未就绪时仍返回 200
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	response.OK(c, gin.H{
		"status":   "Server is running",
		"database": h.DBState.Status(),
	})
}
