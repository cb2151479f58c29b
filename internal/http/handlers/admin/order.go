package admin

import (
	"github.com/foodie-next/internal/http/handlers/shared"
	"github.com/foodie-next/internal/http/response"
	"github.com/foodie-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 订单状态更新
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// ListOrders 订单列表
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "pending / preparing / completed / cancelled"
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Page size, 0 = all"
// @Success      200  {object}  map[string]interface{}
// @Router       /orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	orders, err := h.OrderService.List(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.OK(c, gin.H{"count": len(orders), "orders": orders})
}

// GetOrder 订单详情
// @Summary      Get order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /orders/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.OrderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.OK(c, gin.H{"order": order})
}

// UpdateOrderStatus 更新订单状态
// @Summary      Update order status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                    true  "Order ID"
// @Param        payload  body  UpdateOrderStatusRequest  true  "New status"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /orders/{id}/status [patch]
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, service.ErrInvalidStatus)
		return
	}
	order, err := h.OrderService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, response.CodeOK, "Status updated", gin.H{"order": order})
}

// DeleteOrder 删除订单
// @Summary      Delete order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /orders/{id} [delete]
func (h *Handler) DeleteOrder(c *gin.Context) {
	order, err := h.OrderService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, response.CodeOK, "Order deleted", gin.H{"order": order})
}
