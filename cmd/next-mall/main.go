package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbbtt/next-mall/internal/api/handlers"
	"github.com/sbbtt/next-mall/internal/api/middleware"
	"github.com/sbbtt/next-mall/internal/cache"
	"github.com/sbbtt/next-mall/internal/config"
	"github.com/sbbtt/next-mall/internal/health"
	"github.com/sbbtt/next-mall/internal/metrics"
	"github.com/sbbtt/next-mall/internal/ratelimit"
	repository "github.com/sbbtt/next-mall/internal/repositories"
	service "github.com/sbbtt/next-mall/internal/services"
	"github.com/sbbtt/next-mall/internal/telemetry"
	"github.com/sbbtt/next-mall/pkg/gemini"
	"github.com/sbbtt/next-mall/pkg/sendgrid"
	"github.com/sbbtt/next-mall/pkg/unsplash"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	shutdownTracing, err := telemetry.SetupTracing(context.Background(), cfg)
	if err != nil {
		slog.Error("Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	if err := repos.Migrate(cfg.Database.MigrationsPath); err != nil {
		slog.Error("Error running migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.Addr,
		Username: cfg.RedisConnect.Username,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	catalogCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	chatLimiter := ratelimit.NewRedisLimiter(redisClient, &cfg.RateConfig)

	geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL)
	unsplashClient := unsplash.NewClient(cfg.Unsplash.AccessKey, cfg.Unsplash.BaseURL)
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	productService := service.NewProductService(repos.Product, catalogCache, &cfg.Cache, unsplashClient)
	cartService := service.NewCartService(repos.Cart)
	wishlistService := service.NewWishlistService(repos.Wishlist)
	assistantService := service.NewAssistantService(productService, geminiClient)
	notificationService := service.NewNotificationService(emailService, cfg.SendGrid.ContactTo)

	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	chatHandler := handlers.NewChatHandler(assistantService, chatLimiter)
	adminHandler := handlers.NewAdminHandler(productService)
	contactHandler := handlers.NewContactHandler(notificationService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB})
	if err != nil {
		slog.Error("Error setting up health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("Storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/cart", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PATCH /api/cart", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/cart", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("GET /api/wishlist", authMiddleware.Authenticate(wishlistHandler.GetWishlist()))
	routerMux.HandleFunc("POST /api/wishlist", authMiddleware.Authenticate(wishlistHandler.AddItem()))
	routerMux.HandleFunc("DELETE /api/wishlist", authMiddleware.Authenticate(wishlistHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/chat", chatHandler.Chat())
	routerMux.HandleFunc("POST /api/admin/generate", authMiddleware.Authenticate(chatHandler.GenerateDescription()))
	routerMux.HandleFunc("POST /api/admin/products", authMiddleware.Authenticate(adminHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/admin/products/{id}", authMiddleware.Authenticate(adminHandler.UpdateProduct()))
	routerMux.HandleFunc("GET /api/admin/analytics", authMiddleware.Authenticate(adminHandler.Analytics()))
	routerMux.HandleFunc("POST /api/contact", contactHandler.Submit())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "next-mall")

	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Trace exporter shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
