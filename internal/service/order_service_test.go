package service

import (
	"context"
	"errors"
	"testing"

	"github.com/foodie-next/internal/constants"
)

func TestOrderCreateValidationAndLenientPrice(t *testing.T) {
	store := setupStore(t)
	events := &fakePublisher{}
	notifier := &fakeNotifier{}
	svc := NewOrderService(store.Orders, events, notifier, false)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateOrderInput{Name: "Alice", Phone: "1", Items: "Pho"}); !errors.Is(err, ErrOrderFields) {
		t.Fatalf("missing address should fail, got %v", err)
	}

	order, err := svc.Create(ctx, CreateOrderInput{Name: "Alice", Phone: "1", Items: "Pho", Address: "Main St", Price: "not-a-number"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending || order.Price.String() != "0.00" || order.Notes != "" {
		t.Fatalf("unexpected order defaults: %+v", order)
	}

	priced, err := svc.Create(ctx, CreateOrderInput{Name: "Bob", Phone: "2", Items: "Tea", Address: "Side St", Price: 7.25})
	if err != nil || priced.Price.String() != "7.25" {
		t.Fatalf("expected parsed price, got %+v err=%v", priced, err)
	}
	if len(notifier.created) != 2 {
		t.Fatalf("expected 2 created notifications, got %d", len(notifier.created))
	}
	if got := events.types(); len(got) != 2 || got[0] != constants.EventOrderCreated {
		t.Fatalf("unexpected events: %v", got)
	}

	orders, err := svc.List(ctx, "", 0, 0)
	if err != nil || len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d err=%v", len(orders), err)
	}
}

func TestOrderUpdateStatus(t *testing.T) {
	store := setupStore(t)
	events := &fakePublisher{}
	notifier := &fakeNotifier{}
	svc := NewOrderService(store.Orders, events, notifier, false)
	ctx := context.Background()
	order, _ := svc.Create(ctx, CreateOrderInput{Name: "Alice", Phone: "1", Items: "Pho", Address: "Main St"})

	if _, err := svc.UpdateStatus(ctx, order.ID, "shipped"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "missing", constants.OrderStatusCompleted); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}

	first, err := svc.UpdateStatus(ctx, order.ID, constants.OrderStatusCompleted)
	if err != nil || first.Status != constants.OrderStatusCompleted {
		t.Fatalf("update failed: %+v err=%v", first, err)
	}
	second, err := svc.UpdateStatus(ctx, order.ID, constants.OrderStatusCompleted)
	if err != nil || second.Status != constants.OrderStatusCompleted {
		t.Fatalf("repeat update should be idempotent: %+v err=%v", second, err)
	}
	if len(notifier.status) != 1 {
		t.Fatalf("repeat update should not notify again, got %d", len(notifier.status))
	}

	// 未开启状态机时允许任意迁移
	back, err := svc.UpdateStatus(ctx, order.ID, constants.OrderStatusPending)
	if err != nil || back.Status != constants.OrderStatusPending {
		t.Fatalf("arbitrary transition should be allowed: %+v err=%v", back, err)
	}
}

func TestOrderUpdateStatusEnforcedTransitions(t *testing.T) {
	store := setupStore(t)
	svc := NewOrderService(store.Orders, nil, nil, true)
	ctx := context.Background()
	order, _ := svc.Create(ctx, CreateOrderInput{Name: "Alice", Phone: "1", Items: "Pho", Address: "Main St"})

	if _, err := svc.UpdateStatus(ctx, order.ID, constants.OrderStatusPreparing); err != nil {
		t.Fatalf("pending -> preparing failed: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, order.ID, constants.OrderStatusPending); !errors.Is(err, ErrStatusTransition) {
		t.Fatalf("preparing -> pending should be rejected, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, order.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("preparing -> cancelled failed: %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, order.ID, constants.OrderStatusCompleted); !errors.Is(err, ErrStatusTransition) {
		t.Fatalf("cancelled is terminal, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, order.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("same status should stay a no-op: %v", err)
	}
}

func TestOrderDelete(t *testing.T) {
	store := setupStore(t)
	events := &fakePublisher{}
	svc := NewOrderService(store.Orders, events, nil, false)
	ctx := context.Background()
	order, _ := svc.Create(ctx, CreateOrderInput{Name: "Alice", Phone: "1", Items: "Pho", Address: "Main St"})

	if _, err := svc.Delete(ctx, order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Delete(ctx, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("second delete should be not found, got %v", err)
	}
	if got := events.types(); got[len(got)-1] != constants.EventOrderDeleted {
		t.Fatalf("expected deleted event, got %v", got)
	}
}

func TestCanTransitOrder(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusPreparing, true},
		{constants.OrderStatusPending, constants.OrderStatusCompleted, false},
		{constants.OrderStatusPreparing, constants.OrderStatusCompleted, true},
		{constants.OrderStatusPreparing, constants.OrderStatusPending, false},
		{constants.OrderStatusCompleted, constants.OrderStatusCancelled, false},
		{constants.OrderStatusCompleted, constants.OrderStatusCompleted, true},
	}
	for _, tc := range cases {
		if got := canTransitOrder(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s -> %s: got %v want %v", tc.from, tc.to, got, tc.want)
		}
	}
	if normalizeOrderStatus(" Completed ") != constants.OrderStatusCompleted || normalizeOrderStatus("done") != "" {
		t.Fatalf("normalizeOrderStatus returned unexpected value")
	}
}
