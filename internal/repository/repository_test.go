package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupGormStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.Product{}, &models.Order{}, &models.Message{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewGormStore(db, 5*time.Second), db
}

func TestAdminRepositoryEmailIsCaseInsensitive(t *testing.T) {
	store, _ := setupGormStore(t)
	ctx := context.Background()

	admin := &models.Admin{Name: "Chef", Email: "  Chef@Foodie.Test ", PasswordHash: "hash", Role: constants.RoleAdmin}
	if err := store.Admins.Create(ctx, admin); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	if admin.ID == "" {
		t.Fatalf("expected generated id")
	}
	if admin.Email != "chef@foodie.test" {
		t.Fatalf("expected lowercased email, got %s", admin.Email)
	}

	got, err := store.Admins.GetByEmail(ctx, "CHEF@foodie.test")
	if err != nil || got == nil {
		t.Fatalf("expected admin by email, got=%v err=%v", got, err)
	}
	missing, err := store.Admins.GetByEmail(ctx, "nobody@foodie.test")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing admin, got=%v err=%v", missing, err)
	}

	count, err := store.Admins.Count(ctx)
	if err != nil || count != 1 {
		t.Fatalf("unexpected count=%d err=%v", count, err)
	}
	list, err := store.Admins.ListByIDs(ctx, []string{admin.ID, "unknown"})
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected list by ids len=%d err=%v", len(list), err)
	}
}

func TestAdminRepositoryUpdateRoleAndListOrder(t *testing.T) {
	store, _ := setupGormStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	later := &models.Admin{Name: "Cook", Email: "cook@foodie.test", PasswordHash: "hash", Role: constants.RoleSuperAdmin, CreatedAt: base.Add(time.Minute)}
	first := &models.Admin{Name: "Owner", Email: "owner@foodie.test", PasswordHash: "hash", Role: constants.RoleSuperAdmin, CreatedAt: base}
	for _, admin := range []*models.Admin{later, first} {
		if err := store.Admins.Create(ctx, admin); err != nil {
			t.Fatalf("create admin failed: %v", err)
		}
	}

	list, err := store.Admins.List(ctx)
	if err != nil || len(list) != 2 || list[0].ID != first.ID {
		t.Fatalf("expected earliest admin first, got %+v err=%v", list, err)
	}
	if err := store.Admins.UpdateRole(ctx, later.ID, constants.RoleAdmin); err != nil {
		t.Fatalf("update role failed: %v", err)
	}
	got, err := store.Admins.GetByID(ctx, later.ID)
	if err != nil || got == nil || got.Role != constants.RoleAdmin {
		t.Fatalf("expected demoted admin, got=%+v err=%v", got, err)
	}
}

func TestProductRepositoryListFiltersAndOrder(t *testing.T) {
	store, _ := setupGormStore(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	items := []models.Product{
		{Name: "Margherita", Category: "pizza", Price: models.NewMoney(9.5), CreatedAt: base},
		{Name: "Pepperoni", Category: "pizza", Price: models.NewMoney(11), CreatedAt: base.Add(time.Minute)},
		{Name: "Lemonade", Category: "drinks", Price: models.NewMoney(3), CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range items {
		if err := store.Products.Create(ctx, &items[i]); err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	all, err := store.Products.List(ctx, ProductListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Lemonade" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	pizzas, err := store.Products.List(ctx, ProductListFilter{Category: "pizza"})
	if err != nil || len(pizzas) != 2 {
		t.Fatalf("expected 2 pizzas, got=%d err=%v", len(pizzas), err)
	}

	searched, err := store.Products.List(ctx, ProductListFilter{Search: "pepp"})
	if err != nil || len(searched) != 1 || searched[0].Name != "Pepperoni" {
		t.Fatalf("unexpected search result: %+v err=%v", searched, err)
	}

	paged, err := store.Products.List(ctx, ProductListFilter{Page: 2, PageSize: 2})
	if err != nil || len(paged) != 1 {
		t.Fatalf("unexpected page result len=%d err=%v", len(paged), err)
	}
}

func TestProductRepositoryUpdateAndDelete(t *testing.T) {
	store, _ := setupGormStore(t)
	ctx := context.Background()

	product := &models.Product{Name: "Burger", Category: "mains", Price: models.NewMoney(8)}
	if err := store.Products.Create(ctx, product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	product.Stock = 12
	product.Price = models.NewMoney(8.75)
	if err := store.Products.Update(ctx, product); err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	got, err := store.Products.GetByID(ctx, product.ID)
	if err != nil || got == nil {
		t.Fatalf("get product failed: %v", err)
	}
	if got.Stock != 12 || got.Price.String() != "8.75" {
		t.Fatalf("unexpected product after update: %+v", got)
	}

	deleted, err := store.Products.Delete(ctx, product.ID)
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed, deleted=%v err=%v", deleted, err)
	}
	deleted, err = store.Products.Delete(ctx, product.ID)
	if err != nil || deleted {
		t.Fatalf("second delete should report missing, deleted=%v err=%v", deleted, err)
	}
	if got, _ := store.Products.GetByID(ctx, "not-an-id"); got != nil {
		t.Fatalf("unknown id should return nil")
	}
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	store, _ := setupGormStore(t)
	ctx := context.Background()

	order := &models.Order{Name: "Ana", Phone: "555", Items: "2x pizza", Address: "Main St", Status: constants.OrderStatusPending}
	if err := store.Orders.Create(ctx, order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	found, err := store.Orders.UpdateStatus(ctx, order.ID, constants.OrderStatusPreparing)
	if err != nil || !found {
		t.Fatalf("update status failed: found=%v err=%v", found, err)
	}
	got, _ := store.Orders.GetByID(ctx, order.ID)
	if got == nil || got.Status != constants.OrderStatusPreparing {
		t.Fatalf("unexpected order: %+v", got)
	}
	found, err = store.Orders.UpdateStatus(ctx, "missing", constants.OrderStatusCompleted)
	if err != nil || found {
		t.Fatalf("missing order should not be found: found=%v err=%v", found, err)
	}
}

func TestMessageRepositoryReadReplyAndStats(t *testing.T) {
	store, _ := setupGormStore(t)
	ctx := context.Background()

	first := &models.Message{Name: "A", Email: "a@x.io", Phone: "1", Subject: "hi", Message: "hello", Status: constants.MessageStatusUnread}
	second := &models.Message{Name: "B", Email: "b@x.io", Phone: "2", Subject: "yo", Message: "there", Status: constants.MessageStatusUnread}
	for _, m := range []*models.Message{first, second} {
		if err := store.Messages.Create(ctx, m); err != nil {
			t.Fatalf("create message failed: %v", err)
		}
	}

	found, err := store.Messages.SaveReply(ctx, first.ID, "thanks", time.Now())
	if err != nil || !found {
		t.Fatalf("save reply failed: found=%v err=%v", found, err)
	}
	// 已回复的留言不会被降级为已读
	if err := store.Messages.MarkRead(ctx, first.ID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	if err := store.Messages.MarkRead(ctx, second.ID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}

	got, _ := store.Messages.GetByID(ctx, first.ID)
	if got.Status != constants.MessageStatusReplied || got.Reply == nil || *got.Reply != "thanks" || got.RepliedAt == nil {
		t.Fatalf("unexpected replied message: %+v", got)
	}

	stats, err := store.Messages.Stats(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 2 || stats.Replied != 1 || stats.Read != 1 || stats.Unread != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
