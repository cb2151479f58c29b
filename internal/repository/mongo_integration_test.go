//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/foodie-next/internal/constants"
	"github.com/foodie-next/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setupMongoIntegrationStore 连接 TEST_MONGO_URI 指定的实例，使用独立数据库
func setupMongoIntegrationStore(t *testing.T) (*Store, *mongo.Database) {
	t.Helper()

	uri := strings.TrimSpace(os.Getenv("TEST_MONGO_URI"))
	if uri == "" {
		t.Skip("skip mongo integration test: TEST_MONGO_URI is empty")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect mongo failed: %v", err)
	}
	db := client.Database("foodie_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return NewMongoStore(db, 5*time.Second), db
}

func TestMongoProductRoundTripKeepsMoney(t *testing.T) {
	store, _ := setupMongoIntegrationStore(t)
	ctx := context.Background()

	product := &models.Product{Name: "Tacos", Category: "mexican", Price: models.NewMoney(7.25)}
	if err := store.Products.Create(ctx, product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	got, err := store.Products.GetByID(ctx, product.ID)
	if err != nil || got == nil {
		t.Fatalf("get product failed: %v", err)
	}
	if got.Price.String() != "7.25" {
		t.Fatalf("unexpected price: %s", got.Price.String())
	}
	if missing, _ := store.Products.GetByID(ctx, "zzz"); missing != nil {
		t.Fatalf("invalid id should resolve to nil")
	}
}

func TestMongoLegacyObjectIDDocumentsResolve(t *testing.T) {
	store, db := setupMongoIntegrationStore(t)
	ctx := context.Background()

	oid := primitive.NewObjectID()
	_, err := db.Collection("orders").InsertOne(ctx, bson.M{
		"_id": oid, "name": "Legacy", "phone": "1", "items": "soup", "address": "x",
		"price": 4.5, "status": constants.OrderStatusPending, "createdAt": time.Now(),
	})
	if err != nil {
		t.Fatalf("insert legacy order failed: %v", err)
	}
	got, err := store.Orders.GetByID(ctx, oid.Hex())
	if err != nil || got == nil {
		t.Fatalf("expected legacy order, err=%v", err)
	}
	if got.ID != oid.Hex() || got.Price.String() != "4.50" {
		t.Fatalf("unexpected legacy order: %+v", got)
	}
	found, err := store.Orders.UpdateStatus(ctx, oid.Hex(), constants.OrderStatusCompleted)
	if err != nil || !found {
		t.Fatalf("update legacy order failed: found=%v err=%v", found, err)
	}
}
