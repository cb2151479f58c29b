package public

import (
	"github.com/foodie-next/internal/http/handlers/shared"
	"github.com/foodie-next/internal/http/response"
	"github.com/foodie-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateMessageRequest 联系表单
type CreateMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// CreateMessage 提交留言
// @Summary      Send contact message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateMessageRequest  true  "Contact form"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /messages [post]
func (h *Handler) CreateMessage(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, service.ErrMessageFields)
		return
	}
	message, err := h.MessageService.Create(c.Request.Context(), service.CreateMessageInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, "Message sent successfully", gin.H{"data": message})
}
