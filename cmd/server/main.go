package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/imdscreen/internal/api"
	"github.com/RMahshie/imdscreen/internal/calculation"
	"github.com/RMahshie/imdscreen/internal/config"
	"github.com/RMahshie/imdscreen/internal/logging"
	"github.com/RMahshie/imdscreen/internal/observability"
	"github.com/RMahshie/imdscreen/internal/storage"
	"github.com/RMahshie/imdscreen/pkg/models"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Setup(os.Stderr, cfg.Log.Level, cfg.Server.Env)

	collector, err := observability.NewCollector(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to register metrics")
	}

	var s3Service storage.S3Service
	if cfg.Export.Enabled() {
		s3Service, err = storage.NewS3Service(storage.S3Config{
			Bucket:    cfg.Export.Bucket,
			Endpoint:  cfg.Export.Endpoint,
			Region:    cfg.Export.Region,
			AccessKey: cfg.Export.AccessKeyID,
			SecretKey: cfg.Export.SecretAccessKey,
			URLExpiry: cfg.Export.URLExpiry,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialise export storage")
		}
		log.Info().Str("bucket", cfg.Export.Bucket).Msg("CSV exports enabled")
	} else {
		log.Info().Msg("EXPORT_BUCKET not set, CSV exports disabled")
	}

	calcSvc := calculation.NewCalculationService(calculation.Limits{
		NMax: cfg.Harmonics.NMax,
		MMax: cfg.Harmonics.MMax,
	}, collector)

	// Create Chi router
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logging.RequestLogger())
	// Recoverer sits inside the metrics middleware so panics count as 500.
	router.Use(collector.Middleware)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Create Huma API
	humaConfig := huma.DefaultConfig("IMD Screening API", version)
	humaConfig.DocsPath = "/api/docs"
	humaAPI := humachi.New(router, humaConfig)

	// Register health endpoint
	huma.Register(humaAPI, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		resp := &models.HealthResponse{}
		resp.Body.Status = "healthy"
		resp.Body.Version = version
		resp.Body.Time = time.Now()
		return resp, nil
	})

	api.RegisterRoutes(humaAPI, calcSvc, s3Service)

	router.Handle("/metrics", collector.Handler())

	// Start server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting IMD screening API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
