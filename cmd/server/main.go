package main

import (
	"log"
	"net/http"
	"os"

	_ "printlab/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"printlab/internal/auth"
	"printlab/internal/cache"
	"printlab/internal/config"
	"printlab/internal/db"
	"printlab/internal/events"
	"printlab/internal/handler"
	"printlab/internal/mailer"
	"printlab/internal/model"
	"printlab/internal/repository"
	"printlab/internal/router"
	"printlab/internal/service"
)

// @title Printlab API
// @version 1.0
// @description Print-on-demand shop API with catalog, cart, orders and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.OrderItem{},
			&model.Order{},
			&model.CartItem{},
			&model.Cart{},
			&model.Asset{},
			&model.Variant{},
			&model.Product{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Variant{},
		&model.Asset{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	variantRepo := repository.NewVariantRepository(gormDB)
	assetRepo := repository.NewAssetRepository(gormDB)
	cartRepo := repository.NewCartRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)

	// Initialize collaborators
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
	publisher := events.NewAMQPPublisher(cfg.AMQPURL)

	// Consume order confirmations in the background
	go events.StartOrderConsumer(cfg.AMQPURL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, smtpMailer)
	productService := service.NewProductService(productRepo, cacheClient)
	variantService := service.NewVariantService(variantRepo, productRepo, cacheClient)
	assetService := service.NewAssetService(assetRepo)
	cartService := service.NewCartService(cartRepo, variantRepo, userRepo, smtpMailer, publisher)
	orderService := service.NewOrderService(orderRepo, variantRepo, userRepo, smtpMailer, publisher)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	productHandler := handler.NewProductHandler(productService)
	variantHandler := handler.NewVariantHandler(variantService)
	assetHandler := handler.NewAssetHandler(assetService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		cartHandler,
		orderHandler,
		productHandler,
		variantHandler,
		assetHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
