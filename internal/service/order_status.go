package service

import (
	"strings"

	"github.com/foodie-next/internal/constants"
)

// orderTransitions 订单状态前进路线，取消仅允许在完成前发生
var orderTransitions = map[string][]string{
	constants.OrderStatusPending:   {constants.OrderStatusPreparing, constants.OrderStatusCancelled},
	constants.OrderStatusPreparing: {constants.OrderStatusCompleted, constants.OrderStatusCancelled},
	constants.OrderStatusCompleted: {},
	constants.OrderStatusCancelled: {},
}

// normalizeOrderStatus 规范化状态值，非法时返回空串
func normalizeOrderStatus(status string) string {
	status = strings.ToLower(strings.TrimSpace(status))
	for _, allowed := range constants.OrderStatuses {
		if status == allowed {
			return status
		}
	}
	return ""
}

// canTransitOrder 判断状态迁移是否合法，相同状态视为合法
func canTransitOrder(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
