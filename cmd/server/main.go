package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/breaker"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/cache"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/client/commoncrawl"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/client/graphdb"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/client/pdok"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/config"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/extension"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/handler"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/repository"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/router"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/service"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/util"
)

func main() {
	// 0. Init Logger
	util.InitLogger()
	logger := util.GetLogger()

	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. Init MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}

	// 3. Init Layers
	db := client.Database(cfg.DBName)
	repo := repository.NewMongoRepository(db, cfg)

	// Ensure Indexes
	if err := repo.EnsureIndexes(context.Background()); err != nil {
		logger.Warn("Failed to ensure indexes", "error", err)
	}

	// Geo cache is optional; lookups fall back to the upstream when absent.
	var geoCache service.GeoCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, geo caching disabled", "error", err)
		} else {
			geoCache = redisCache
			defer redisCache.Close()
		}
	}

	breakers := breaker.NewRegistry()
	hc := &http.Client{Timeout: cfg.HTTPClientTimeout}
	pdokClient := pdok.New(cfg.PDOKBaseURL, hc, breakers)
	crawlClient := commoncrawl.New(cfg.CommonCrawlIndexURL, hc, breakers)
	sparqlClient := graphdb.New(cfg.GraphDBBaseURL, cfg.GraphDBRepository, hc, breakers)

	extensions := extension.DefaultRegistry()

	documentSvc := service.NewDocumentService(repo, extensions)
	graphSvc := service.NewGraphService(repo)
	kgSvc := service.NewKGService(repo, sparqlClient)
	extensionSvc := service.NewExtensionService(extensions)
	etlSvc := service.NewETLService(repo)
	geoSvc := service.NewGeoService(pdokClient, geoCache, cfg.GeoCacheTTL, logger)
	crawlSvc := service.NewCrawlService(crawlClient)

	h := handler.New(documentSvc, graphSvc, kgSvc, extensionSvc, etlSvc, geoSvc, crawlSvc, breakers)

	// 4. Init Echo & Routes
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	router.RegisterRoutes(e, h)

	// 5. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("shutting down the server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server Shutdown Failed", "error", err)
	}

	if err := client.Disconnect(ctx); err != nil {
		logger.Error("Failed to disconnect DB", "error", err)
	}

	logger.Info("Server exited properly")
}
