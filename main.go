package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/gebrayel/ecommerce-simulator/cache"
	"github.com/gebrayel/ecommerce-simulator/clients"
	"github.com/gebrayel/ecommerce-simulator/database"
	"github.com/gebrayel/ecommerce-simulator/handlers"
	"github.com/gebrayel/ecommerce-simulator/kafka"
	"github.com/gebrayel/ecommerce-simulator/middleware"
	"github.com/gebrayel/ecommerce-simulator/repository"
	"github.com/gebrayel/ecommerce-simulator/security"
	"github.com/gebrayel/ecommerce-simulator/services"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// A missing signing key is a startup failure, never a per-request one.
	cardTokens, err := security.NewCardTokenService(os.Getenv("CARD_TOKEN_SECRET"))
	if err != nil {
		logger.Fatal("Failed to initialize card token service", zap.Error(err))
	}
	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		logger.Fatal("API_KEY is not configured")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not configured")
	}

	// Initialize database
	db, err := database.InitDB(logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Kafka producer for domain events
	producer, err := kafka.InitProducer(logger)
	if err != nil {
		logger.Fatal("Failed to initialize Kafka producer", zap.Error(err))
	}
	defer producer.Close()

	// Initialize the audit log sink
	logSink, err := kafka.InitServiceLogSink("orders-service", logger)
	if err != nil {
		logger.Fatal("Failed to initialize service log sink", zap.Error(err))
	}
	defer logSink.Close()

	// Initialize OpenTelemetry
	shutdown, err := middleware.InitTracing("orders-service")
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer shutdown()

	// Redis is an optional snapshot cache; the catalog client works without it.
	rdb, err := cache.InitRedis(logger)
	if err != nil {
		logger.Warn("Redis unavailable, product snapshot cache disabled", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	userClient := clients.NewUserClient(getEnv("USERS_BASE_URL", "http://localhost:8081"), logger)
	catalogClient := clients.NewCatalogClient(getEnv("CATALOG_BASE_URL", "http://localhost:8080"), rdb, logger)

	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	cardRepo := repository.NewCreditCardRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	cartService := services.NewCartService(cartRepo, userClient, catalogClient)
	orderService := services.NewOrderService(orderRepo, cartRepo)
	cardService := services.NewCreditCardService(cardRepo, cardTokens)
	settingsService := services.NewSettingsService(settingsRepo)
	paymentService := services.NewPaymentService(paymentRepo, orderRepo, cardService, settingsService)

	// Setup REST API with Gin
	router := gin.New()
	router.Use(gin.Recovery())
	// OpenTelemetry middleware must be first to extract trace context
	router.Use(otelgin.Middleware("orders-service"))
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.AuditMiddleware(logSink))

	// Health check endpoint
	router.GET("/health", handlers.HealthCheck)

	// Metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler())

	// Cart endpoints
	cartHandler := handlers.NewCartHandler(cartService, logger)
	router.POST("/carts", cartHandler.CreateCart)
	router.GET("/carts/:cartId", cartHandler.GetCart)
	router.POST("/carts/:cartId/items", cartHandler.AddItem)
	router.DELETE("/carts/:cartId/items/:productId", cartHandler.RemoveItem)
	router.DELETE("/carts/:cartId/items", cartHandler.ClearCart)

	// Order endpoints
	orderHandler := handlers.NewOrderHandler(orderService, producer, logger)
	router.POST("/orders", orderHandler.CreateOrder)
	router.GET("/orders/:orderId", orderHandler.GetOrder)
	router.POST("/orders/:orderId/pay", orderHandler.MarkAsPaid)
	router.POST("/orders/:orderId/cancel", orderHandler.Cancel)

	// Simulator settings. Not nested under /orders: gin's router does not
	// allow a static segment next to the :orderId wildcard.
	settingsHandler := handlers.NewSettingsHandler(settingsService, logger)
	router.GET("/order-settings", settingsHandler.GetSettings)
	router.PUT("/order-settings", settingsHandler.UpdateSettings)

	// Card and payment endpoints sit behind api-key + JWT auth
	auth := middleware.RequireAuth(security.NewAPIKeyValidator(apiKey), security.NewJWTVerifier(jwtSecret))

	cardHandler := handlers.NewCreditCardHandler(cardService, logger)
	cards := router.Group("/cards", auth)
	cards.POST("", cardHandler.RegisterCard)
	cards.GET("", cardHandler.ListUserCards)

	paymentHandler := handlers.NewPaymentHandler(paymentService, producer, logger)
	payments := router.Group("/payments", auth)
	payments.POST("", paymentHandler.RegisterPayment)
	payments.GET("/:paymentId", paymentHandler.GetPayment)
	payments.POST("/:paymentId/complete", paymentHandler.MarkAsCompleted)
	payments.POST("/:paymentId/fail", paymentHandler.MarkAsFailed)

	// Start REST server
	srv := &http.Server{
		Addr:    ":" + getEnv("PORT", "8082"),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start REST server", zap.Error(err))
		}
	}()

	logger.Info("Orders Service started", zap.String("addr", srv.Addr))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
