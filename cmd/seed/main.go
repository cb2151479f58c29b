package main

import (
	"context"
	"time"

	"github.com/foodie-next/internal/config"
	"github.com/foodie-next/internal/database"
	"github.com/foodie-next/internal/logger"
	"github.com/foodie-next/internal/provider"
	"github.com/foodie-next/internal/service"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type seedProduct struct {
	Name        string
	Price       decimal.Decimal
	Category    string
	Description string
	Image       string
}

var menu = []seedProduct{
	{Name: "Margherita Pizza", Price: decimal.RequireFromString("8.50"), Category: "pizza", Description: "Tomato, mozzarella and fresh basil", Image: "/public/images/margherita.jpg"},
	{Name: "Pepperoni Pizza", Price: decimal.RequireFromString("9.75"), Category: "pizza", Description: "Spicy pepperoni with mozzarella", Image: "/public/images/pepperoni.jpg"},
	{Name: "Classic Burger", Price: decimal.RequireFromString("7.20"), Category: "burger", Description: "Beef patty, cheddar, lettuce and pickles", Image: "/public/images/burger.jpg"},
	{Name: "Veggie Wrap", Price: decimal.RequireFromString("6.40"), Category: "wraps", Description: "Grilled vegetables with hummus", Image: "/public/images/wrap.jpg"},
	{Name: "Iced Lemon Tea", Price: decimal.RequireFromString("2.50"), Category: "drinks", Description: "Fresh brewed with lemon", Image: "/public/images/lemon-tea.jpg"},
	{Name: "Chocolate Brownie", Price: decimal.RequireFromString("3.90"), Category: "dessert", Description: "Warm brownie with walnuts", Image: "/public/images/brownie.jpg"},
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := cfg.Validate(); err != nil {
		stdLog.Fatalf("Invalid configuration: %v", err)
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	defer container.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// MongoDB 连接在后台建立，这里同步等待
	if container.MongoClient != nil {
		if err := container.MongoClient.Ping(ctx, readpref.Primary()); err != nil {
			stdLog.Fatalf("Failed to reach MongoDB: %v", err)
		}
		if err := database.EnsureMongoIndexes(ctx, container.MongoDB); err != nil {
			stdLog.Printf("Failed to ensure indexes: %v", err)
		}
		container.DBState.MarkReady()
	}

	adminCfg := cfg.Admin
	if adminCfg.DefaultEmail == "" || adminCfg.DefaultPassword == "" {
		stdLog.Fatalf("admin.default_email and admin.default_password are required for seeding")
	}
	if _, err := container.AuthService.EnsureDefaultAdmin(ctx, adminCfg.DefaultName, adminCfg.DefaultEmail, adminCfg.DefaultPassword); err != nil {
		stdLog.Fatalf("Failed to create default admin: %v", err)
	}
	admin, err := container.Store.Admins.GetByEmail(ctx, adminCfg.DefaultEmail)
	if err != nil || admin == nil {
		stdLog.Fatalf("Default admin not found: %v", err)
	}

	existing, err := container.ProductService.List(ctx, service.ProductQuery{})
	if err != nil {
		stdLog.Fatalf("Failed to load products: %v", err)
	}
	names := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		names[p.Name] = struct{}{}
	}

	created := 0
	for _, item := range menu {
		if _, ok := names[item.Name]; ok {
			stdLog.Printf("Product already exists: %s", item.Name)
			continue
		}
		if _, err := container.ProductService.Create(ctx, admin.ID, service.CreateProductInput{
			Name:        item.Name,
			Price:       item.Price.StringFixed(2),
			Category:    item.Category,
			Description: item.Description,
			Image:       item.Image,
		}); err != nil {
			stdLog.Printf("Failed to create product %s: %v", item.Name, err)
			continue
		}
		created++
		stdLog.Printf("Created product: %s", item.Name)
	}
	stdLog.Printf("Seed completed: %d products created", created)
}
