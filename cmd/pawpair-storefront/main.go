package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/pawpair-storefront/docs"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/cache"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/cart"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/config"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/health"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/pricing"
	repository "github.com/aaravmahajanofficial/pawpair-storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/pawpair-storefront/internal/services"
	"github.com/aaravmahajanofficial/pawpair-storefront/internal/tracing"
	"github.com/aaravmahajanofficial/pawpair-storefront/pkg/sendgrid"
	"github.com/aaravmahajanofficial/pawpair-storefront/pkg/stripe"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//	@title						PawPair Storefront API
//	@version					1.0
//	@description				Cart, wishlist and checkout backend for matching owner and pet apparel.
//	@host						localhost:8080
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the JWT.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := tracing.Setup(context.Background(), &cfg.Otel)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	sessions := repository.NewSessionRepo(redisClient, cfg.Session.TTL)
	guestCarts := repository.NewGuestCartRepo(redisClient, cfg.Session.GuestCartTTL)
	pendingSync := repository.NewPendingSyncRepo(redisClient, cfg.Session.PendingSyncTTL)
	mergeJournal := repository.NewMergeRepo(redisClient, cfg.Session.MergeLockTTL, cfg.Session.MergeJournalTTL)
	rateLimiter := repository.NewRateLimitRepo(redisClient, &cfg.RateConfig)
	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	stripeClient := stripe.NewStripeClient(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret)
	sendGridClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	cartService := service.NewCartService(repos.Cart)
	wishlistService := service.NewWishlistService(repos.Wishlist)
	catalogService := service.NewCatalogService(repos.Products, productCache, cfg.Cache.DefaultTTL)
	couponService := service.NewCouponService(repos.Coupons, rateLimiter)
	gateway := service.NewStripeGateway(stripeClient, cfg.Stripe.PaymentMethods)
	notificationService := service.NewNotificationService(repos.Notification, sendGridClient, cfg.Pricing.Currency)
	checkoutService := service.NewCheckoutService(service.CheckoutDeps{
		Catalog:  catalogService,
		Coupons:  couponService,
		Orders:   repos.Orders,
		Payments: repos.Payments,
		Gateway:  gateway,
		Notifier: notificationService,
		Engine:   pricing.NewEngine(&cfg.Pricing),
		Pricing:  &cfg.Pricing,
	})
	orderService := service.NewOrderService(repos.Orders)
	paymentService := service.NewPaymentService(repos.Payments, repos.Orders, stripeClient)

	stores := handlers.NewCartStores(
		cart.Backends{Server: cartService, Wishlist: wishlistService, Guest: guestCarts, Pending: pendingSync},
		cart.NewReconciler(cartService, wishlistService, guestCarts, mergeJournal, sessions),
	)

	sessionHandler := handlers.NewSessionHandler(sessions, stores)
	cartHandler := handlers.NewCartHandler(stores, catalogService)
	wishlistHandler := handlers.NewWishlistHandler(stores, catalogService)
	checkoutHandler := handlers.NewCheckoutHandler(stores, checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))
	sessionMiddleware := middleware.NewSessionMiddleware(sessions)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// anonymous or signed-in shoppers
	shop := func(h http.Handler) http.HandlerFunc {
		return authMiddleware.Optional(sessionMiddleware.Resolve(h))
	}
	// signed-in shoppers only
	account := func(h http.Handler) http.HandlerFunc {
		return authMiddleware.Authenticate(sessionMiddleware.Resolve(h))
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/sessions", shop(sessionHandler.CreateSession()))
	routerMux.HandleFunc("DELETE /api/v1/sessions", shop(sessionHandler.Logout()))
	routerMux.HandleFunc("GET /api/v1/cart", shop(cartHandler.GetCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart", shop(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", shop(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items", shop(cartHandler.UpdateItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items", shop(cartHandler.RemoveItem()))
	routerMux.HandleFunc("GET /api/v1/wishlist", shop(wishlistHandler.GetWishlist()))
	routerMux.HandleFunc("POST /api/v1/wishlist", shop(wishlistHandler.AddItem()))
	routerMux.HandleFunc("DELETE /api/v1/wishlist/{productId}", shop(wishlistHandler.RemoveItem()))
	routerMux.HandleFunc("POST /api/v1/coupons/validate", shop(checkoutHandler.Quote()))
	routerMux.HandleFunc("POST /api/v1/checkout/quote", shop(checkoutHandler.Quote()))
	routerMux.HandleFunc("POST /api/v1/checkout", account(checkoutHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("POST /api/v1/payments/webhook", paymentHandler.HandleStripeWebhook())
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Failed to flush traces", slog.String("error", err.Error()))
	}
}
