package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/akashkendre1298/vastureports/config"
	"github.com/akashkendre1298/vastureports/handler"
	"github.com/akashkendre1298/vastureports/middleware"
	"github.com/akashkendre1298/vastureports/service"
	"github.com/akashkendre1298/vastureports/web"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the report form and report API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	reports, err := newReportService(cfg, reg)
	if err != nil {
		return err
	}

	var publisher handler.ArtifactPublisher
	if cfg.Minio.Enabled {
		minioSvc, err := service.NewMinioService(&cfg.Minio)
		if err != nil {
			return fmt.Errorf("failed to initialize minio service: %w", err)
		}
		if err := minioSvc.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure minio bucket: %w", err)
		}
		publisher = minioSvc
		slog.Info("report links served from minio", "endpoint", cfg.Minio.Endpoint, "bucket", cfg.Minio.Bucket)
	}

	gin.SetMode(gin.ReleaseMode)
	router := newRouter(cfg, reports, publisher, reg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port, "upstream", cfg.Upstream.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server exited gracefully")
	return nil
}

func newReportService(cfg *config.Config, reg prometheus.Registerer) (*service.ReportService, error) {
	dates, err := service.NewDateFormatter(cfg.Report.Timezone, cfg.Report.DateLayout)
	if err != nil {
		return nil, err
	}
	records := service.NewRecordsClient(&cfg.Upstream)
	return service.NewReportService(records, dates, service.NewMetrics(reg)), nil
}

func newRouter(cfg *config.Config, reports handler.ReportRunner, publisher handler.ArtifactPublisher, gatherer prometheus.Gatherer) *gin.Engine {
	store := service.NewArtifactStore(&cfg.Downloads)
	reportHandler := handler.NewReportHandler(reports, store, publisher, &cfg.Downloads)
	downloadHandler := handler.NewDownloadHandler(store)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(corsMiddleware())
	router.Use(cacheMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	api.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst))
	{
		api.GET("/report-kinds", reportHandler.Kinds)
		api.GET("/reports/:kind/:start/:end", reportHandler.Stream)
		api.POST("/reports", reportHandler.Create)
		api.GET("/downloads/:token", middleware.DownloadToken(&cfg.Downloads), downloadHandler.Serve)
	}

	return router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Accept, X-Request-ID")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// cacheMiddleware keeps generated reports out of browser and proxy caches
func cacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
		} else if c.Request.URL.Path == "/" {
			c.Header("Cache-Control", "public, max-age=3600, must-revalidate")
		}

		c.Next()
	}
}
