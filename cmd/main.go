package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"restopos/internal/api"
	"restopos/internal/config"
	"restopos/internal/repository"
	"restopos/internal/service"
	"restopos/migrations"
)

func main() {
	ctx := context.Background()

	db, err := config.ConnectMongo(ctx)
	if err != nil {
		panic(err)
	}

	if err := migrations.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	rdb := config.NewRedisClient()
	kafkaWriter := config.NewKafkaWriter("restopos-events")

	stockRepo := repository.NewStockRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	thresholds := repository.NewThresholdStore(rdb)
	publisher := repository.NewKafkaPublisher(kafkaWriter)

	stockService := service.NewStockService(stockRepo, thresholds)
	resolver := service.NewMenuResolver(menuRepo, stockRepo)
	notifier := service.NewNotificationService(notificationRepo, publisher)
	orderService := service.NewOrderService(orderRepo, saleRepo, resolver, stockService, notifier)

	orderHandler := api.NewOrderHandler(orderService)
	inventoryHandler := api.NewInventoryHandler(stockService)
	menuHandler := api.NewMenuHandler(menuRepo)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(10),
				Burst:     30,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	e.POST("/orders/pos", orderHandler.CreatePOSOrder)
	e.POST("/orders/mobile", orderHandler.CreateMobileOrder)
	e.POST("/orders/validate", orderHandler.ValidateCart)
	e.GET("/orders/:channel/:id", orderHandler.GetOrder)
	e.PUT("/orders/:channel/:id/status", orderHandler.UpdateOrderStatus)
	e.POST("/orders/:channel/:id/cancel", orderHandler.CancelOrder)

	e.GET("/menu", menuHandler.ListMenu)
	e.GET("/inventory", inventoryHandler.ListStock)
	e.GET("/inventory/threshold", inventoryHandler.GetThreshold)
	e.GET("/inventory/:name", inventoryHandler.GetStockItem)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "secret"
	}
	admin := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(jwtSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(api.JwtCustomClaims)
		},
	}))
	admin.POST("/inventory", inventoryHandler.UpsertStock)
	admin.PUT("/inventory/threshold", inventoryHandler.SetThreshold)
	admin.POST("/menu", menuHandler.UpsertMenuItem)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "restopos",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":8080"))
}
