package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"socialmall/internal/cache"
	"socialmall/internal/config"
	"socialmall/internal/database"
	"socialmall/internal/handler"
	"socialmall/internal/middleware"
	"socialmall/internal/monitor"
	"socialmall/internal/redis"
	"socialmall/internal/repository"
	"socialmall/internal/service/auth"
	"socialmall/internal/service/cart"
	"socialmall/internal/service/catalog"
	"socialmall/internal/service/order"
	"socialmall/internal/service/reward"
	"socialmall/internal/service/social"
	"socialmall/internal/service/wallet"
	jwtutils "socialmall/internal/utils"
	"socialmall/pkg/log"
	"socialmall/pkg/snowflake"
)

var configPath = flag.String("config", "", "path to the configuration file")

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := log.Init(log.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		Filename:   cfg.Log.Filename,
		MaxSize:    cfg.Log.MaxSize,
		MaxAge:     cfg.Log.MaxAge,
		MaxBackups: cfg.Log.MaxBackups,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Info("Starting socialmall API server...")

	if err := database.Init(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	db := database.GetDB()
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.CreateIndexes(db); err != nil {
		log.Warnf("Failed to create indexes: %v", err)
	}

	if err := redis.Init(cfg); err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer redis.Close()

	tracer, err := monitor.NewTracer(&monitor.TracerConfig{
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: "1.0.0",
		Environment:    cfg.Server.Mode,
		JaegerEndpoint: cfg.Tracing.Endpoint,
		SamplingRate:   cfg.Tracing.SampleRate,
		Enabled:        cfg.Tracing.Enabled,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}

	gin.SetMode(cfg.Server.Mode)

	router, err := setupRouter(cfg, db)
	if err != nil {
		log.Fatalf("Failed to set up router: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go monitor.Default().StartSystemMetricsCollection(ctx)

	if *configPath != "" {
		if err := config.WatchConfig(*configPath, func(updated *config.Config) {
			config.GlobalConfig = updated
			log.Info("Configuration reloaded")
		}); err != nil {
			log.Warnf("Config watching disabled: %v", err)
		}
	}

	server := &http.Server{
		Addr:           cfg.Server.GetAddr(),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Infof("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Tracer shutdown failed: %v", err)
	}

	log.Info("Server exited")
}

func setupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	repos := repository.NewRepos(db)
	txManager := repository.NewTxManager(db)

	idGenerator, err := snowflake.NewIDGenerator(1)
	if err != nil {
		return nil, fmt.Errorf("failed to create ID generator: %w", err)
	}

	jwtManager := jwtutils.NewJWTManager(
		cfg.Security.JWT.Secret,
		cfg.Security.JWT.Issuer,
		cfg.Security.JWT.Expire,
		cfg.Security.JWT.RefreshTTL,
	)

	productCache, err := cache.NewProductCache(repos.Products, cfg.Cache.TTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create product cache: %w", err)
	}
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer warmCancel()
	if err := productCache.Warm(warmCtx); err != nil {
		log.Warnf("Product cache warm-up failed: %v", err)
	}

	policy := reward.Policy{
		EarnRateBP:  cfg.Reward.EarnRateBP,
		RedeemCapBP: cfg.Reward.RedeemCapBP,
	}

	authService := auth.NewAuthService(repos.Users, jwtManager, redis.GetClient())
	catalogService := catalog.NewCatalogService(repos, productCache)
	socialService := social.NewSocialService(repos)
	cartService := cart.NewCartService(repos)
	orderService := order.NewOrderService(repos, txManager, policy, idGenerator)
	walletService := wallet.NewWalletService(repos)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	postHandler := handler.NewPostHandler(socialService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	walletHandler := handler.NewWalletHandler(walletService)

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	if cfg.Metrics.Enabled {
		router.Use(middleware.Metrics())
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	router.GET("/health", healthCheck)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.RefreshToken)
		}

		v1.GET("/products", productHandler.ListProducts)
		v1.GET("/products/:id", productHandler.GetProduct)
		v1.GET("/posts", postHandler.ListFeed)
		v1.GET("/posts/:id", postHandler.GetPost)

		protected := v1.Group("")
		protected.Use(middleware.Auth(authService.ValidateToken))
		{
			protected.POST("/auth/logout", authHandler.Logout)

			protected.POST("/products", productHandler.CreateProduct)
			protected.PUT("/products/:id", productHandler.UpdateProduct)
			protected.DELETE("/products/:id", productHandler.DeleteProduct)

			protected.POST("/posts", postHandler.CreatePost)
			protected.GET("/posts/mine", postHandler.ListMyPosts)
			protected.DELETE("/posts/:id", postHandler.HidePost)

			protected.GET("/cart", cartHandler.GetCart)
			protected.POST("/cart/items", cartHandler.AddItem)
			protected.DELETE("/cart/items/:id", cartHandler.RemoveItem)
			protected.DELETE("/cart", cartHandler.ClearCart)

			protected.POST("/orders", orderHandler.CreateOrder)
			protected.GET("/orders", orderHandler.ListOrders)
			protected.GET("/orders/:id", orderHandler.GetOrder)
			protected.POST("/orders/:id/payment", orderHandler.PayOrder)
			protected.POST("/orders/:id/cancel", orderHandler.CancelOrder)
			protected.POST("/orders/:id/return", orderHandler.ReturnOrder)

			protected.GET("/wallet/balance", walletHandler.GetBalance)
			protected.GET("/wallet/history", walletHandler.GetHistory)
			protected.GET("/wallet/summary", walletHandler.GetSummary)

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/orders", orderHandler.ListAllOrders)
				admin.PUT("/orders/:id/status", orderHandler.AdvanceOrderStatus)
			}
		}
	}

	return router, nil
}

func healthCheck(c *gin.Context) {
	dbStatus := checkDatabase()
	redisStatus := checkRedis(c.Request.Context())

	status := http.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" || redisStatus != "healthy" {
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"time":   time.Now().Format(time.RFC3339),
		"checks": gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}

func checkDatabase() string {
	db := database.GetDB()
	if db == nil {
		return "unavailable"
	}
	sqlDB, err := db.DB()
	if err != nil {
		return "unhealthy"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return "unhealthy"
	}

	stats := sqlDB.Stats()
	monitor.Default().UpdateDBConnections(stats.InUse, stats.Idle)
	return "healthy"
}

func checkRedis(ctx context.Context) string {
	client := redis.GetClient()
	if client == nil {
		return "unavailable"
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return "unhealthy"
	}
	return "healthy"
}
