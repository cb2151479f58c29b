package admin

import (
	"github.com/foodie-next/internal/http/handlers/shared"
	"github.com/foodie-next/internal/http/response"
	"github.com/foodie-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 创建/更新菜品请求，更新时未传字段保持不变
type ProductRequest struct {
	Name        *string     `json:"name"`
	Price       interface{} `json:"price" swaggertype:"number"`
	Category    *string     `json:"category"`
	Description *string     `json:"description"`
	Image       *string     `json:"image"`
	Stock       *int        `json:"stock"`
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// CreateProduct 新增菜品
// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  ProductRequest  true  "Product"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]interface{}
// @Router       /products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, service.ErrProductFields)
		return
	}
	product, err := h.ProductService.Create(c.Request.Context(), shared.AdminID(c), service.CreateProductInput{
		Name:        deref(req.Name),
		Price:       req.Price,
		Category:    deref(req.Category),
		Description: deref(req.Description),
		Image:       deref(req.Image),
		Stock:       req.Stock,
	})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Created(c, "Product created successfully", gin.H{"product": product})
}

// UpdateProduct 部分更新菜品
// @Summary      Update product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string          true  "Product ID"
// @Param        payload  body  ProductRequest  true  "Changed fields"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /products/{id} [put]
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondErrorWithMsg(c, response.CodeBadRequest, "Invalid request body", err)
		return
	}
	product, err := h.ProductService.Update(c.Request.Context(), c.Param("id"), service.UpdateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
		Stock:       req.Stock,
	})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, response.CodeOK, "Product updated successfully", gin.H{"product": product})
}

// DeleteProduct 删除菜品
// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /products/{id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	product, err := h.ProductService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.Success(c, response.CodeOK, "Product deleted successfully", gin.H{"product": product})
}
