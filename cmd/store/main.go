package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/akarpov/online-store/docs"
	carthttp "github.com/akarpov/online-store/internal/cart/delivery/http"
	cartdomain "github.com/akarpov/online-store/internal/cart/domain"
	cartrepo "github.com/akarpov/online-store/internal/cart/repository"
	categoryhttp "github.com/akarpov/online-store/internal/category/delivery/http"
	categorydomain "github.com/akarpov/online-store/internal/category/domain"
	categoryrepo "github.com/akarpov/online-store/internal/category/repository"
	orderhttp "github.com/akarpov/online-store/internal/order/delivery/http"
	orderdomain "github.com/akarpov/online-store/internal/order/domain"
	orderrepo "github.com/akarpov/online-store/internal/order/repository"
	"github.com/akarpov/online-store/internal/product"
	producthttp "github.com/akarpov/online-store/internal/product/delivery/http"
	productdomain "github.com/akarpov/online-store/internal/product/domain"
	productrepo "github.com/akarpov/online-store/internal/product/repository"
	reviewhttp "github.com/akarpov/online-store/internal/review/delivery/http"
	reviewdomain "github.com/akarpov/online-store/internal/review/domain"
	reviewrepo "github.com/akarpov/online-store/internal/review/repository"
	userhttp "github.com/akarpov/online-store/internal/user/delivery/http"
	userdomain "github.com/akarpov/online-store/internal/user/domain"
	userrepo "github.com/akarpov/online-store/internal/user/repository"
	"github.com/akarpov/online-store/pkg/auth"
	"github.com/akarpov/online-store/pkg/config"
	"github.com/akarpov/online-store/pkg/database"
	"github.com/akarpov/online-store/pkg/logger"
	"github.com/akarpov/online-store/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting online store")

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.ServiceName, cfg.JaegerEndpoint)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	auth.Configure(cfg.JWT.Secret, cfg.TokenTTL())

	// Connect to database
	db, err := database.NewGormConnection(cfg.DB)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(
		&userdomain.User{},
		&categorydomain.Category{},
		&productdomain.Product{},
		&reviewdomain.Review{},
		&cartdomain.CartItem{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
	); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Catalog handler is assembled with Wire; the rest wire up manually.
	productHandler, err := product.InitializeHTTPHandler(db)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize catalog handler")
	}

	products := productrepo.NewGormProductRepositoryWithTracing(db)
	categories := categoryrepo.NewGormCategoryRepository(db)
	users := userrepo.NewGormUserRepository(db)
	reviews := reviewrepo.NewGormReviewRepository(db)
	cart := cartrepo.NewGormCartRepository(db)
	orders := orderrepo.NewGormOrderRepository(db)

	userHandler := userhttp.NewUserHandler(users)
	categoryHandler := categoryhttp.NewCategoryHandler(categories, users)
	reviewHandler := reviewhttp.NewReviewHandler(reviews, products, users)
	cartHandler := carthttp.NewCartHandler(cart, products, users)
	orderHandler := orderhttp.NewOrderHandler(orders, cart, products, users)

	// Setup router
	router := mux.NewRouter()

	userHandler.RegisterRoutes(router)
	categoryHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router)
	reviewHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)

	// Health check endpoint
	productHandler.RegisterHealthCheck(router, sqlDB.Ping)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	producthttp.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      producthttp.TracingMiddleware("online-store-http", c.Handler(router)),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTP.Port).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/index.html").
			Msg("HTTP server started")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}
