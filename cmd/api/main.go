package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/workpulse/attendance-api/internal/graph"
	"github.com/workpulse/attendance-api/internal/handler"
	"github.com/workpulse/attendance-api/internal/loader"
	internalmiddleware "github.com/workpulse/attendance-api/internal/middleware"
	"github.com/workpulse/attendance-api/internal/models"
	"github.com/workpulse/attendance-api/internal/repository"
	"github.com/workpulse/attendance-api/internal/service"
	"github.com/workpulse/attendance-api/pkg/config"
	"github.com/workpulse/attendance-api/pkg/database"
	"github.com/workpulse/attendance-api/pkg/logger"
	corsmiddleware "github.com/workpulse/attendance-api/pkg/middleware/cors"
	reqidmiddleware "github.com/workpulse/attendance-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to mongodb", "error", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		db.Close(closeCtx) //nolint:errcheck
	}()

	if err := db.EnsureIndexes(ctx); err != nil {
		logr.Sugar().Fatalw("failed to ensure indexes", "error", err)
	}

	employeeRepo := repository.NewEmployeeRepository(db.DB)
	attendanceRepo := repository.NewAttendanceRepository(db.DB)

	authService := service.NewAuthService(employeeRepo, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	employeeService := service.NewEmployeeService(employeeRepo, attendanceRepo, logr)
	attendanceService := service.NewAttendanceService(employeeRepo, attendanceRepo, logr)
	reportService := service.NewReportService(employeeRepo, attendanceRepo, logr)
	metricsService := service.NewMetricsService()

	if err := authService.SeedAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
		logr.Sugar().Fatalw("failed to seed admin account", "error", err)
	}

	resolver := graph.NewResolver(employeeService, attendanceService, authService, metricsService, logr)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		logr.Sugar().Fatalw("failed to build graphql schema", "error", err)
	}

	loaderOpts := loader.Options{
		Wait:     cfg.Loader.BatchWait,
		MaxBatch: cfg.Loader.MaxBatchSize,
	}
	graphqlHandler := handler.NewGraphQLHandler(schema, employeeRepo, attendanceRepo, loaderOpts, logr)
	reportHandler := handler.NewReportHandler(reportService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		pingCtx, pingCancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer pingCancel()
		if err := db.Client.Ping(pingCtx, nil); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsService.Handler()))

	auth := internalmiddleware.Auth(authService)
	r.POST("/graphql", auth, graphqlHandler.Execute)
	if cfg.GraphQL.Playground && cfg.Env != config.EnvProduction {
		r.GET("/graphql", graphqlHandler.Playground)
	}

	api := r.Group("/api/v1", auth)
	api.GET("/reports/attendance", internalmiddleware.RequireRole(models.RoleAdmin), reportHandler.AttendanceSummary)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
