package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hardware-pos/config"
	carthandler "hardware-pos/internal/cart/handler"
	cartrepository "hardware-pos/internal/cart/repository"
	cartusecase "hardware-pos/internal/cart/usecase"
	categoryhandler "hardware-pos/internal/category/handler"
	categoryrepository "hardware-pos/internal/category/repository"
	categoryusecase "hardware-pos/internal/category/usecase"
	customerhandler "hardware-pos/internal/customer/handler"
	customerrepository "hardware-pos/internal/customer/repository"
	customerusecase "hardware-pos/internal/customer/usecase"
	inventoryhandler "hardware-pos/internal/inventory/handler"
	inventoryrepository "hardware-pos/internal/inventory/repository"
	inventoryusecase "hardware-pos/internal/inventory/usecase"
	orderhandler "hardware-pos/internal/order/handler"
	orderrepository "hardware-pos/internal/order/repository"
	orderusecase "hardware-pos/internal/order/usecase"
	producthandler "hardware-pos/internal/product/handler"
	productrepository "hardware-pos/internal/product/repository"
	productusecase "hardware-pos/internal/product/usecase"
	purchasehandler "hardware-pos/internal/purchase/handler"
	purchaserepository "hardware-pos/internal/purchase/repository"
	purchaseusecase "hardware-pos/internal/purchase/usecase"
	returnshandler "hardware-pos/internal/returns/handler"
	returnsrepository "hardware-pos/internal/returns/repository"
	returnsusecase "hardware-pos/internal/returns/usecase"
	"hardware-pos/internal/server"
	supplierhandler "hardware-pos/internal/supplier/handler"
	supplierrepository "hardware-pos/internal/supplier/repository"
	supplierusecase "hardware-pos/internal/supplier/usecase"
	"hardware-pos/pkg/broker"
	"hardware-pos/pkg/cache"
	"hardware-pos/pkg/logger"
	"hardware-pos/pkg/postgres"
	"hardware-pos/pkg/search"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load environment
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Logger
	log := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv != "prod",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer log.Sync()

	// 3. Postgres
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		log.Fatal("postgres connection failed", zap.Error(err))
	}
	defer db.Close()

	// 4. Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	// 5. Kafka publisher
	publisher := broker.NewPublisher(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer publisher.Close()

	// 6. Elasticsearch; the service degrades to database search when it is
	// unreachable at boot.
	searchClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		log.Warn("elasticsearch unavailable, product search falls back to database", zap.Error(err))
		searchClient = nil
	}

	// 7. Repositories
	categoryRepo := categoryrepository.NewPGRepository(db)
	supplierRepo := supplierrepository.NewPGRepository(db)
	customerRepo := customerrepository.NewPGRepository(db)
	productRepo := productrepository.NewPGRepository(db)
	purchaseRepo := purchaserepository.NewPGRepository(db)
	inventoryRepo := inventoryrepository.NewPGRepository(db)
	cartRepo := cartrepository.NewPGRepository(db)
	orderRepo := orderrepository.NewPGRepository(db)
	returnsRepo := returnsrepository.NewPGRepository(db)

	// 8. Usecases
	categoryUC := categoryusecase.NewCategoryUseCase(categoryRepo, log)
	supplierUC := supplierusecase.NewSupplierUseCase(supplierRepo, log)
	customerUC := customerusecase.NewCustomerUseCase(customerRepo, log)
	productUC := productusecase.NewProductUseCase(productRepo, redisClient, searchClient, log)
	purchaseUC := purchaseusecase.NewPurchaseUseCase(purchaseRepo, supplierRepo, productRepo, log)
	inventoryUC := inventoryusecase.NewInventoryUseCase(inventoryRepo, redisClient, log)
	cartUC := cartusecase.NewCartUseCase(cartRepo, productRepo, log)
	orderUC := orderusecase.NewOrderUseCase(orderRepo, cartRepo, publisher, cfg.POS.AllowOversell, log)
	returnsUC := returnsusecase.NewReturnsUseCase(returnsRepo, orderRepo, publisher, log)

	// 9. Router
	router := server.NewRouter(cfg, &server.Handlers{
		Category:  categoryhandler.NewCategoryHandler(categoryUC, log),
		Supplier:  supplierhandler.NewSupplierHandler(supplierUC, log),
		Customer:  customerhandler.NewCustomerHandler(customerUC, log),
		Product:   producthandler.NewProductHandler(productUC, log),
		Purchase:  purchasehandler.NewPurchaseHandler(purchaseUC, log),
		Inventory: inventoryhandler.NewInventoryHandler(inventoryUC, log),
		Cart:      carthandler.NewCartHandler(cartUC, log),
		Order:     orderhandler.NewOrderHandler(orderUC, log),
		Returns:   returnshandler.NewReturnsHandler(returnsUC, log),
	})

	// 10. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:    cfg.Server.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info("http server starting", zap.String("addr", cfg.Server.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
