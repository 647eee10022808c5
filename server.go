package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/possync_backend/config"
	"bitbucket.org/mmdatafocus/possync_backend/middlewares"
	"bitbucket.org/mmdatafocus/possync_backend/models"
	"bitbucket.org/mmdatafocus/possync_backend/possync"
	"bitbucket.org/mmdatafocus/possync_backend/utils"
)

const defaultPort = "8080"

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

// customErrorLogger logs only requests that recorded errors.
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

func getRedisClient(redisAddress string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: redisAddress,
	})
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	cfg, err := possync.LoadConfig()
	if err != nil {
		logger.WithFields(logrus.Fields{"field": "config"}).Fatal(err.Error())
	}

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server ASAP so the platform considers the revision
	// healthy. Until DB/Redis are ready, app endpoints answer 503.
	r := gin.New()
	// Correlation IDs: generate once per request and attach to context.
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		// Always allow the startup probe.
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		// Gate critical endpoints on dependency readiness.
		if config.GetDB() == nil || config.GetRedisDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	// Production requires an explicit allowlist via CORS_ALLOWED_ORIGINS
	// (comma-separated); everywhere else allows all origins.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization", possync.HeaderAPIKey)
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	store := possync.NewStore()
	resolver := possync.NewResolver(store)
	ingestor := possync.NewIngestor(cfg, store, store)
	aggregator := possync.NewAggregator(store, store)

	api := r.Group("/api/v1")

	pos := api.Group("/pos")
	if strings.EqualFold(strings.TrimSpace(os.Getenv("RATE_LIMIT_ENABLED")), "true") {
		limit := int64(cfg.RateLimitPerMin)
		if v := strings.TrimSpace(os.Getenv("RATE_LIMIT_MAX_REQUESTS")); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
				limit = n
			}
		}
		rateLimiter := middlewares.NewRateLimiter(getRedisClient(os.Getenv("REDIS_ADDRESS")), limit, time.Minute)
		pos.Use(rateLimiter.Middleware())
	}
	pos.POST("/orderheaders/sync", possync.SyncOrderHeadersHandler(resolver, ingestor))
	pos.POST("/orderpayments/sync", possync.SyncOrderPaymentsHandler(resolver, ingestor))
	pos.POST("/ordertransactions/sync", possync.SyncOrderTransactionsHandler(resolver, ingestor))

	auth := api.Group("/auth")
	auth.POST("/login", possync.LoginHandler())
	auth.POST("/change-password", middlewares.JwtAuth(), possync.ChangePasswordHandler())
	api.GET("/users/me", middlewares.JwtAuth(), possync.MeHandler())

	dashboard := api.Group("/dashboard", middlewares.JwtAuth())
	dashboard.GET("", possync.DashboardHandler(aggregator))
	dashboard.GET("/orders", possync.DashboardOrdersHandler(aggregator, cfg))
	dashboard.GET("/daily", possync.DashboardDailyHandler(aggregator))
	dashboard.GET("/export", possync.DashboardExportHandler(aggregator))

	admin := api.Group("/admin", middlewares.JwtAuth(), middlewares.AdminOnly())
	admin.POST("/restaurants", possync.CreateRestaurantHandler())
	admin.PATCH("/restaurants/:id/status", possync.UpdateRestaurantStatusHandler())
	admin.POST("/users", possync.CreateUserHandler())
	admin.POST("/users/:id/restaurants", possync.AssociateUserRestaurantHandler())

	r.NoRoute(customNotFoundHandler)

	// Start listening immediately (the startup probe is TCP based).
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// AutoMigrate can run DDL that blocks tables; allow disabling migrations
	// on startup and running them as a separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("listening on http://localhost:", port, "/api/v1")
	log.Println("Server started successfully")

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	// Drain HTTP requests.
	shutdownTimeout := 30 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	// Close Redis (best-effort).
	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}
