package public

import (
	"github.com/foodie-next/internal/http/handlers/shared"
	"github.com/foodie-next/internal/http/response"
	"github.com/foodie-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 顾客下单请求
type CreateOrderRequest struct {
	Name    string      `json:"name"`
	Phone   string      `json:"phone"`
	Items   string      `json:"items"`
	Price   interface{} `json:"price" swaggertype:"number"`
	Address string      `json:"address"`
	Notes   string      `json:"notes"`
}

// CreateOrder 顾客下单
// @Summary      Place order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateOrderRequest  true  "Order payload"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, service.ErrOrderFields)
		return
	}
	order, err := h.OrderService.Create(c.Request.Context(), service.CreateOrderInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Items:   req.Items,
		Price:   req.Price,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, "Order placed successfully", gin.H{"order": order})
}
