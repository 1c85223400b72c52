package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mandilink/mandilink/internal/api/handlers"
	"github.com/mandilink/mandilink/internal/api/middleware"
	"github.com/mandilink/mandilink/internal/cache"
	"github.com/mandilink/mandilink/internal/config"
	"github.com/mandilink/mandilink/internal/health"
	"github.com/mandilink/mandilink/internal/metrics"
	"github.com/mandilink/mandilink/internal/models"
	repository "github.com/mandilink/mandilink/internal/repositories"
	service "github.com/mandilink/mandilink/internal/services"
	"github.com/mandilink/mandilink/internal/telemetry"
	"github.com/mandilink/mandilink/pkg/gemini"
	"github.com/mandilink/mandilink/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	ctx := context.Background()

	shutdownTracing, err := telemetry.Init(ctx, &cfg.Telemetry)
	if err != nil {
		slog.Error("Error initializing tracing", slog.String("error", err.Error()))
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

	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cartRepo := repository.NewCartRepo(redisClient, cfg.Cart.TTL)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	emailClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model)

	userService := service.NewUserService(repos.Vendor, repos.Wholesaler, rateLimitRepo, &cfg.Security)
	productService := service.NewProductService(repos.Product, redisCache)
	cartService := service.NewCartService(cartRepo, repos.Product)
	orderService := service.NewOrderService(repos.Order, cartRepo, repos.Product)
	reviewService := service.NewReviewService(repos.Review, repos.Wholesaler)
	analyticsService := service.NewAnalyticsService(repos.Analytics, repos.Wholesaler, redisCache)
	adminService := service.NewAdminService(repos.Wholesaler)
	paymentService := service.NewPaymentService(repos.PaymentMethod)
	donationService := service.NewDonationService(repos.Donation)
	insightService := service.NewInsightService(geminiClient)
	notificationService := service.NewNotificationService(emailClient, repos.Vendor)

	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService, cartService, notificationService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	dashboardHandler := handlers.NewDashboardHandler(analyticsService, productService, userService)
	adminHandler := handlers.NewAdminHandler(adminService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	donationHandler := handlers.NewDonationHandler(donationService)
	insightHandler := handlers.NewInsightHandler(insightService)

	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	vendorOnly := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleVendor, h))
	}
	wholesalerOnly := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleWholesaler, h))
	}
	adminOnly := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.Authenticate(authMiddleware.RequireRole(models.RoleAdmin, h))
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	routerMux := http.NewServeMux()

	// Auth
	routerMux.HandleFunc("POST /vendor/register", userHandler.RegisterVendor())
	routerMux.HandleFunc("POST /vendor/login", userHandler.LoginVendor())
	routerMux.HandleFunc("POST /wholesaler/register", userHandler.RegisterWholesaler())
	routerMux.HandleFunc("POST /wholesaler/login", userHandler.LoginWholesaler())
	routerMux.HandleFunc("POST /admin/login", userHandler.LoginAdmin())

	// Vendor cart + checkout
	routerMux.HandleFunc("POST /vendor/add-to-cart", vendorOnly(cartHandler.AddItem()))
	routerMux.HandleFunc("POST /vendor/update-cart", vendorOnly(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("POST /vendor/remove-from-cart", vendorOnly(cartHandler.RemoveItem()))
	routerMux.HandleFunc("POST /vendor/clear-cart", vendorOnly(cartHandler.Clear()))
	routerMux.HandleFunc("GET /vendor/cart", vendorOnly(cartHandler.View()))
	routerMux.HandleFunc("GET /vendor/cart/get", vendorOnly(cartHandler.Snapshot()))
	routerMux.HandleFunc("POST /vendor/cart/sync", vendorOnly(cartHandler.Sync()))
	routerMux.HandleFunc("GET /vendor/get-cart-count", vendorOnly(cartHandler.Count()))
	routerMux.HandleFunc("GET /vendor/checkout", vendorOnly(cartHandler.View()))
	routerMux.HandleFunc("POST /vendor/checkout", vendorOnly(orderHandler.Checkout()))

	// Vendor browse + orders + profile
	routerMux.HandleFunc("GET /vendor/dashboard", vendorOnly(dashboardHandler.VendorDashboard()))
	routerMux.HandleFunc("GET /vendor/search", vendorOnly(productHandler.Search()))
	routerMux.HandleFunc("GET /vendor/category/{category}", vendorOnly(productHandler.ByCategory()))
	routerMux.HandleFunc("POST /vendor/filter-products", vendorOnly(productHandler.Filter()))
	routerMux.HandleFunc("GET /vendor/wholesaler/{id}", vendorOnly(dashboardHandler.WholesalerStorefront()))
	routerMux.HandleFunc("GET /vendor/wholesaler/{id}/reviews", vendorOnly(reviewHandler.ListForWholesaler()))
	routerMux.HandleFunc("POST /vendor/reviews", vendorOnly(reviewHandler.Create()))
	routerMux.HandleFunc("GET /vendor/orders", vendorOnly(orderHandler.VendorOrders()))
	routerMux.HandleFunc("POST /vendor/reorder", vendorOnly(orderHandler.Reorder()))
	routerMux.HandleFunc("GET /vendor/profile", vendorOnly(userHandler.VendorProfile()))
	routerMux.HandleFunc("PUT /vendor/profile", vendorOnly(userHandler.UpdateVendorProfile()))
	routerMux.HandleFunc("GET /vendor/payment-methods", vendorOnly(paymentHandler.ListMethods()))
	routerMux.HandleFunc("POST /api/payment-methods/add", vendorOnly(paymentHandler.AddMethod()))
	routerMux.HandleFunc("POST /api/payment-methods/delete", vendorOnly(paymentHandler.DeleteMethod()))
	routerMux.HandleFunc("POST /api/payment-methods/set-default", vendorOnly(paymentHandler.SetDefault()))
	routerMux.HandleFunc("POST /api/submit-donation", vendorOnly(donationHandler.Submit()))
	routerMux.HandleFunc("GET /api/donations", vendorOnly(donationHandler.List()))
	routerMux.HandleFunc("POST /api/ask-ai", vendorOnly(insightHandler.Ask()))

	// Wholesaler
	routerMux.HandleFunc("GET /wholesaler/dashboard", wholesalerOnly(dashboardHandler.WholesalerDashboard()))
	routerMux.HandleFunc("GET /wholesaler/analytics", wholesalerOnly(dashboardHandler.WholesalerAnalytics()))
	routerMux.HandleFunc("GET /wholesaler/products", wholesalerOnly(productHandler.ListOwn()))
	routerMux.HandleFunc("POST /wholesaler/products", wholesalerOnly(productHandler.Create()))
	routerMux.HandleFunc("PUT /wholesaler/products/{id}", wholesalerOnly(productHandler.Update()))
	routerMux.HandleFunc("GET /wholesaler/orders", wholesalerOnly(orderHandler.WholesalerOrders()))
	routerMux.HandleFunc("PUT /wholesaler/profile", wholesalerOnly(userHandler.UpdateWholesalerProfile()))
	routerMux.HandleFunc("POST /wholesaler/change-password", wholesalerOnly(userHandler.ChangeWholesalerPassword()))
	routerMux.HandleFunc("POST /api/update-stock", wholesalerOnly(productHandler.UpdateStock()))
	routerMux.HandleFunc("POST /api/delete-product", wholesalerOnly(productHandler.Delete()))
	routerMux.HandleFunc("POST /api/update-order-status", wholesalerOnly(orderHandler.UpdateStatus()))
	routerMux.HandleFunc("POST /api/reply-review", wholesalerOnly(reviewHandler.Reply()))

	// Admin
	routerMux.HandleFunc("GET /admin/wholesalers", adminOnly(adminHandler.PendingWholesalers()))
	routerMux.HandleFunc("POST /admin/approve/{id}", adminOnly(adminHandler.Approve()))
	routerMux.HandleFunc("POST /admin/reject/{id}", adminOnly(adminHandler.Reject()))

	// Ops
	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("Error creating health handler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = middleware.Logging(handler)
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, "mandilink")

	server := http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	slog.Info("Server is starting", slog.String("address", cfg.HTTPServer.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Tracing shutdown encountered an issue", slog.String("error", err.Error()))
	}

	if err := redisClient.Close(); err != nil {
		slog.Error("Error closing redis connection", slog.String("error", err.Error()))
	}
}
