package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"cutmevents/internal/config"
	"cutmevents/internal/database"
	"cutmevents/internal/metrics"
	"cutmevents/internal/repositories"
	"cutmevents/internal/services"
	"cutmevents/internal/storage"
)

const (
	otpPurgeInterval = 10 * time.Minute
	// Expired codes are kept this long so a late verify still reports expiry.
	otpPurgeGrace = time.Hour
)

type Server struct {
	cfg        config.Config
	httpServer *http.Server
	db         database.Service
	registerer prometheus.Registerer

	otpRepo             repositories.OTPRepository
	authService         services.AuthService
	itemService         services.ItemService
	registrationService services.RegistrationService
	applicationService  services.ApplicationService
	uploadService       services.UploadService
}

func NewServer(cfg config.Config) *Server {
	db := database.New(cfg.Mongo)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Error().Err(err).Msg("Could not ensure indexes, continuing without them")
	}

	if cfg.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set; logins will fail until it is configured")
	}
	if cfg.IsProduction() && !cfg.Mail.SMTPConfigured() && cfg.Mail.BrevoAPIKey == "" {
		log.Warn().Msg("No email transport configured in production; OTP emails will not be delivered")
	}

	otpRepo := repositories.NewOTPRepository()
	itemRepo := repositories.NewItemRepository(db)
	registrationRepo := repositories.NewRegistrationRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)

	uploadService := services.NewUploadService(newObjectStorage(ctx, cfg.Minio))

	s := &Server{
		cfg:                 cfg,
		db:                  db,
		registerer:          prometheus.DefaultRegisterer,
		otpRepo:             otpRepo,
		authService:         services.NewAuthService(otpRepo, services.NewEmailService(cfg.Mail), cfg.Auth),
		itemService:         services.NewItemService(itemRepo, uploadService),
		registrationService: services.NewRegistrationService(registrationRepo, itemRepo),
		applicationService:  services.NewApplicationService(applicationRepo),
		uploadService:       uploadService,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// newObjectStorage returns nil when uploads are not configured or the bucket
// cannot be prepared; the upload route then answers 503.
func newObjectStorage(ctx context.Context, cfg config.MinioConfig) storage.ObjectStorage {
	if !cfg.Configured() {
		log.Info().Msg("MinIO not configured, image uploads disabled")
		return nil
	}
	store, err := storage.NewMinioStorage(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Invalid MinIO configuration, image uploads disabled")
		return nil
	}
	if err := store.EnsureBucket(ctx); err != nil {
		log.Error().Err(err).Str("bucket", store.Bucket()).Msg("Could not prepare upload bucket, image uploads disabled")
		return nil
	}
	log.Info().Str("bucket", store.Bucket()).Msg("Image uploads enabled")
	return store
}

func (s *Server) Start() error {
	log.Info().Int("port", s.cfg.Port).Str("env", s.cfg.Env).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

// purgeExpiredOTPs drops stale codes until ctx is done.
func (s *Server) purgeExpiredOTPs(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.otpRepo.PurgeExpired(now.Add(-otpPurgeGrace)); n > 0 {
				log.Debug().Int("purged", n).Msg("Purged expired OTPs")
			}
			metrics.OTPPending.Set(float64(s.otpRepo.Len()))
		}
	}
}

// Run serves until SIGINT/SIGTERM, then drains connections and closes the
// database.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go s.purgeExpiredOTPs(ctx, otpPurgeInterval)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}
	if err := s.db.Close(); err != nil {
		log.Error().Err(err).Msg("Error disconnecting from MongoDB")
	}

	log.Info().Msg("Server exiting")
	return nil
}
