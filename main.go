package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/datagenie/datagenie/handlers"
	"github.com/datagenie/datagenie/internal/config"
	"github.com/datagenie/datagenie/internal/database"
	"github.com/datagenie/datagenie/internal/llm"
	"github.com/datagenie/datagenie/internal/projects"
	"github.com/datagenie/datagenie/internal/report"
	"github.com/datagenie/datagenie/internal/samples"
	"github.com/datagenie/datagenie/internal/storage"
	"github.com/datagenie/datagenie/pkg/logger"
	"github.com/datagenie/datagenie/pkg/metrics"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v llm_backend=%s minio=%v", cfg.MongoDB.URI != "", cfg.LLM.Backend, cfg.MinIO.Endpoint != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// Connect to MongoDB with retry/backoff to tolerate startup races; fall
	// back to an in-memory project store when Mongo never comes up.
	ctx := context.Background()
	var repo projects.Repository
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Errorf("could not connect to MongoDB after %d attempts: %v — using memory-backed project store", maxAttempts, errConn)
			mongoClient = nil
		} else {
			defer func() { _ = mongoClient.Disconnect(ctx) }()
			col := mongoClient.Database(cfg.MongoDB.Database).Collection("projects")
			repo = projects.NewMongoRepository(col)
		}
	}
	if repo == nil {
		repo = projects.NewMemoryRepository()
	}
	projectSvc := projects.NewService(repo)

	sampler := samples.NewSampler(cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Timeout)
	generator := llm.NewClient(cfg.LLM)

	// Optional object storage for report copies
	var uploader report.Uploader
	if cfg.MinIO.Endpoint != "" {
		store, err := storage.NewMinIOStorage(cfg.MinIO)
		if err != nil {
			logger.Warnf("report object storage unavailable: %v", err)
		} else {
			uploader = store
			logger.Infof("report copies will be uploaded to bucket %s", cfg.MinIO.Bucket)
		}
	}
	reports := report.NewWriter(cfg.Export.Dir, uploader)

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["mongo"] = mongoClient != nil
		if !deps["mongo"] {
			// memory fallback keeps the API usable, but readiness reports the truth
			ready = false
		}
		deps["llm"] = cfg.LLM.Backend == llm.BackendOllama || cfg.LLM.Backend == llm.BackendAzure

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Register API routes and API documentation
	handlers.NewAPI(projectSvc, sampler, generator, reports).Register(r)
	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Config summary: mongo=%v backend=%s export_dir=%s", mongoClient != nil, cfg.LLM.Backend, cfg.Export.Dir)
	logger.Infof("Starting datagenie service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
