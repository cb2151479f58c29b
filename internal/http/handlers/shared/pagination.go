package shared

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePagination 读取 page / limit，未传 limit 时返回全部
func ParsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return NormalizePagination(page, limit)
}

// NormalizePagination 归一化分页参数，pageSize <= 0 表示不分页。
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 0 {
		pageSize = 0
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
