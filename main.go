package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/ng-portfolio/backend/handlers"
	"github.com/ng-portfolio/backend/internal/config"
	contenthandler "github.com/ng-portfolio/backend/internal/content/handler"
	contentservice "github.com/ng-portfolio/backend/internal/content/service"
	"github.com/ng-portfolio/backend/internal/database"
	"github.com/ng-portfolio/backend/internal/storage"
	"github.com/ng-portfolio/backend/internal/upload"
	uploadhandler "github.com/ng-portfolio/backend/internal/upload/handler"
	"github.com/ng-portfolio/backend/pkg/logger"
	"github.com/ng-portfolio/backend/pkg/metrics"
	"github.com/ng-portfolio/backend/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v environment=%s", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Server.Environment)

	r := gin.New()

	// CORS first so rejected origins never reach the handlers
	r.Use(middleware.CORS(cfg.CORS.Origins, cfg.CORS.DomainSuffix))

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate-limiter can use it when configured
	var importedRedis *redis.Client
	if cfg.Redis.Host != "" {
		importedRedis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := importedRedis.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			importedRedis = nil
		} else {
			logger.Infof("Connected to Redis for rate limiting: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	// Optional global rate limiter (per-IP for this single-operator tool)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && importedRedis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(importedRedis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Health endpoint: status, timestamp and uptime in seconds
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(startTime).Seconds(),
		})
	})

	// Content service: Mongo-backed when configured, otherwise the JSON file.
	var contentSvc contentservice.Service
	if cfg.MongoDB.URI != "" {
		// Retry/backoff when connecting to MongoDB to tolerate startup races
		const maxAttempts = 5
		backoff := time.Second
		mclient, errConn := database.ConnectMongo(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		for attempt := 2; errConn != nil && attempt <= maxAttempts; attempt++ {
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt-1, maxAttempts, errConn)
			time.Sleep(backoff)
			backoff *= 2
			mclient, errConn = database.ConnectMongo(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts, falling back to file storage: %v", maxAttempts, errConn)
		} else {
			defer func() { _ = mclient.Disconnect(context.Background()) }()
			col := mclient.Database(cfg.MongoDB.Database).Collection("portfolio")
			contentSvc = contentservice.NewMongoService(col, "portfolio")
			logger.Infof("Using MongoDB for portfolio content")
		}
	}
	if contentSvc == nil {
		contentSvc = contentservice.NewFileService(cfg.Content.DataFile)
		logger.Infof("Using file storage for portfolio content: %s", cfg.Content.DataFile)
	}

	// Readiness: content storage is required, the rest is optional
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{"storage": true}
		if _, err := contentSvc.Load(); err != nil {
			deps["storage"] = false
			ready = false
		}
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = importedRedis != nil
			if !deps["redis"] {
				ready = false
			}
		}
		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Optional MinIO archive of normalized uploads
	var archive upload.Archive
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		a, err := storage.NewMinIOArchive(mcfg)
		if err != nil {
			logger.Warnf("minio archive disabled: %v", err)
		} else {
			archive = a
			logger.Infof("Archiving uploads to MinIO bucket %s", mcfg.Bucket)
		}
	}

	imagesDir := filepath.Join(cfg.Upload.Dir, "images")
	uploadSvc := upload.NewService(imagesDir, cfg.Upload.MaxFileSize, cfg.Upload.AllowedTypes, archive)

	contenthandler.New(contentSvc, cfg.DevMode()).Register(r)
	uploadhandler.New(uploadSvc, cfg.Upload.MaxFileSize, cfg.DevMode()).Register(r)
	handlers.RegisterSwagger(r)

	// Static file serving for uploads
	r.Static("/uploads", cfg.Upload.Dir)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 404 handler for unmatched routes
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Portfolio backend listening on %s (uploads: %s)", addr, cfg.Upload.Dir)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
