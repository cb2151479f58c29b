package repository

import (
	"context"
	"time"
)

// ProductListFilter 查询菜品列表的过滤条件
type ProductListFilter struct {
	Category string
	Search   string
	Page     int
	PageSize int
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Status   string
	Page     int
	PageSize int
}

// MessageListFilter 查询留言列表的过滤条件
type MessageListFilter struct {
	Status   string
	Page     int
	PageSize int
}

// withTimeout 为单次数据库调用附加超时
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
