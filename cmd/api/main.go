package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Vileyy/admin-halora-app/docs" // swagger docs
	"github.com/Vileyy/admin-halora-app/internal/config"
	"github.com/Vileyy/admin-halora-app/internal/database"
	"github.com/Vileyy/admin-halora-app/internal/handler"
	"github.com/Vileyy/admin-halora-app/internal/logger"
	"github.com/Vileyy/admin-halora-app/internal/middleware"
	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
	"github.com/Vileyy/admin-halora-app/internal/service"
	"github.com/Vileyy/admin-halora-app/internal/store"
	"github.com/Vileyy/admin-halora-app/internal/websocket"
)

// @title           Halora Admin API
// @version         1.0
// @description     Revenue, order, user, voucher and review analytics for the Halora admin console.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().WithError(err).Fatal("invalid configuration")
	}
	if err := logger.Init(cfg.Log); err != nil {
		logger.Get().WithError(err).Fatal("init logger")
	}
	log := logger.WithModule("main")

	loc, err := cfg.Location()
	if err != nil {
		log.WithError(err).Fatal("invalid timezone")
	}
	model.DefaultLocation = loc

	gin.SetMode(cfg.GinMode)
	middleware.SetJWTSecret(cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	docs, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		log.WithError(err).Fatal("document store connection failed")
	}
	defer closeStore()
	log.WithField("driver", cfg.Store.Driver).Info("document store ready")

	db, err := database.NewConnection(cfg.Database.DSN())
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	log.Info("connected to PostgreSQL")

	hub := websocket.NewHub()
	go hub.Run(ctx)

	// Repository -> Service -> Handler
	revenueRepo := repository.NewRevenueRepository(docs)
	orderRepo := repository.NewOrderRepository(docs)
	userRepo := repository.NewUserRepository(docs)
	voucherRepo := repository.NewVoucherRepository(docs)
	reviewRepo := repository.NewReviewRepository(docs)
	bannerRepo := repository.NewBannerRepository(docs)
	productRepo := repository.NewProductRepository(docs)
	adminRepo := repository.NewAdminRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	auditService := service.NewAuditService(auditRepo)
	revenueService := service.NewRevenueService(revenueRepo)
	reportService := service.NewReportService(revenueService)
	orderService := service.NewOrderService(orderRepo, revenueService, auditService)
	userService := service.NewUserService(userRepo, auditService)
	voucherService := service.NewVoucherService(voucherRepo, auditService)
	reviewService := service.NewReviewService(reviewRepo, auditService)
	bannerService := service.NewBannerService(bannerRepo, auditService)
	productService := service.NewProductService(productRepo, auditService)
	dashboardService := service.NewDashboardService(revenueRepo, orderRepo, userRepo, voucherRepo, reviewRepo)
	authService := service.NewAuthService(adminRepo, txManager, service.AuthConfig{
		Secret:          []byte(cfg.JWTSecret),
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	})
	liveService := service.NewLiveService(revenueRepo, userRepo, voucherRepo, reviewRepo, hub)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.WithError(err).Fatal("seed admin account")
		}
	}

	if err := liveService.Start(ctx); err != nil {
		log.WithError(err).Fatal("start live statistics")
	}
	defer liveService.Stop()

	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", middleware.RequestIDHeader}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig), middleware.RequestLogger(), middleware.Metrics(), gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", middleware.PrometheusHandler())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(hub, c)
	})

	root := router.Group("")
	handler.NewAuthHandler(authService, cfg.AccessTokenTTL, cfg.RefreshTokenTTL).RegisterRoutes(root)
	handler.NewRevenueHandler(revenueService, reportService).RegisterRoutes(root)
	handler.NewOrderHandler(orderService).RegisterRoutes(root)
	handler.NewUserHandler(userService).RegisterRoutes(root)
	handler.NewVoucherHandler(voucherService).RegisterRoutes(root)
	handler.NewReviewHandler(reviewService).RegisterRoutes(root)
	handler.NewCatalogHandler(bannerService, productService).RegisterRoutes(root)
	handler.NewStatisticsHandler(dashboardService).RegisterRoutes(root)
	handler.NewAuditHandler(auditService).RegisterRoutes(root)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// openStore connects the configured document store. The returned func
// releases its connections.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.DocumentStore, func(), error) {
	switch cfg.Driver {
	case config.StoreFirebase:
		client, err := database.NewFirebaseDatabase(ctx, cfg.FirebaseProjectID, cfg.FirebaseDatabaseURL, cfg.FirebaseCredentialsPath)
		if err != nil {
			return nil, nil, err
		}
		return store.NewFirebaseStore(client, cfg.PollInterval), func() {}, nil
	case config.StoreMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.WithModule("main").WithError(err).Warn("disconnect mongo")
			}
		}
		return store.NewMongoStore(client.Database(cfg.MongoDBName)), closeFn, nil
	case config.StoreMemory:
		return store.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
