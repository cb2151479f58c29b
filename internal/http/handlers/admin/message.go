package admin

import (
	"github.com/foodie-next/internal/http/handlers/shared"
	"github.com/foodie-next/internal/http/response"
	"github.com/foodie-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ReplyMessageRequest 回复留言
type ReplyMessageRequest struct {
	Reply string `json:"reply"`
}

// ListMessages 留言列表与统计
// @Summary      List messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "unread / read / replied"
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Page size, 0 = all"
// @Success      200  {object}  map[string]interface{}
// @Router       /messages [get]
func (h *Handler) ListMessages(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	result, err := h.MessageService.List(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.OK(c, gin.H{
		"count":    len(result.Messages),
		"stats":    result.Stats,
		"messages": result.Messages,
	})
}

// GetMessage 留言详情，未读留言会被标记为已读
// @Summary      Get message
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Message ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /messages/{id} [get]
func (h *Handler) GetMessage(c *gin.Context) {
	message, err := h.MessageService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.OK(c, gin.H{"data": message})
}

// ReplyMessage 回复留言
// @Summary      Reply to message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string               true  "Message ID"
// @Param        payload  body  ReplyMessageRequest  true  "Reply"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /messages/{id}/reply [put]
func (h *Handler) ReplyMessage(c *gin.Context) {
	var req ReplyMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, service.ErrReplyEmpty)
		return
	}
	message, err := h.MessageService.Reply(c.Request.Context(), c.Param("id"), req.Reply)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, response.CodeOK, "Reply sent successfully", gin.H{"data": message})
}

// MarkMessageRead 标记已读
// @Summary      Mark message read
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Message ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /messages/{id}/read [put]
func (h *Handler) MarkMessageRead(c *gin.Context) {
	message, err := h.MessageService.MarkAsRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, response.CodeOK, "Message marked as read", gin.H{"data": message})
}

// DeleteMessage 删除留言
// @Summary      Delete message
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Message ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /messages/{id} [delete]
func (h *Handler) DeleteMessage(c *gin.Context) {
	message, err := h.MessageService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, response.CodeOK, "Message deleted successfully", gin.H{"data": message})
}
