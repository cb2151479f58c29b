package public

import (
	"github.com/foodie-next/internal/http/handlers/shared"
	"github.com/foodie-next/internal/http/response"
	"github.com/foodie-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 菜单列表，可按分类与关键字过滤
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category  query  string  false  "Category"
// @Param        search    query  string  false  "Name keyword"
// @Param        page      query  int     false  "Page"
// @Param        limit     query  int     false  "Page size, 0 = all"
// @Success      200  {object}  map[string]interface{}
// @Router       /products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	products, err := h.ProductService.List(c.Request.Context(), service.ProductQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.OK(c, gin.H{"count": len(products), "products": products})
}

// ListProductsByCategory 按分类获取菜单
// @Summary      List products by category
// @Tags         products
// @Produce      json
// @Param        category  path  string  true  "Category"
// @Success      200  {object}  map[string]interface{}
// @Router       /products/category/{category} [get]
func (h *Handler) ListProductsByCategory(c *gin.Context) {
	products, err := h.ProductService.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.OK(c, gin.H{"count": len(products), "products": products})
}

// GetProduct 菜品详情
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		shared.RespondError(c, err)
		return
	}
	response.OK(c, gin.H{"product": product})
}
