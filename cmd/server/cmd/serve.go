package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventhub/config"
	_ "eventhub/docs"
	"eventhub/internal/adapters/auth"
	"eventhub/internal/adapters/email"
	httpdelivery "eventhub/internal/delivery/http"
	"eventhub/internal/delivery/http/controllers"
	"eventhub/internal/metrics"
	"eventhub/internal/realtime"
	"eventhub/internal/repository/postgres"
	"eventhub/internal/services"

	"github.com/spf13/cobra"
)

// serverPort overrides PORT when set.
var serverPort string

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Eventhub HTTP server",
		Long: `Start the Eventhub HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables (and .env outside production)
- Apply pending database migrations
- Start the realtime hub and the HTTP server
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  server serve

  # Start on a specific port with debug logging
  server serve --port 9090 --log-level debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
	cmd.Flags().StringVar(&serverPort, "port", "", "server port (default: 8080)")
	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if serverPort != "" {
		cfg.Port = serverPort
	}
	return cfg, nil
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("starting eventhub server", "version", Version, "env", cfg.Environment)

	metrics.Init(Version, GitCommit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, time.Minute)
	db, err := postgres.Open(startCtx, cfg.DBUrl)
	if err != nil {
		cancel()
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer db.Close()
	err = postgres.Migrate(startCtx, db)
	cancel()
	if err != nil {
		return err
	}
	if err := metrics.RegisterDB(db, "eventhub"); err != nil {
		logger.Warn("db metrics not registered", "err", err)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("email templates: %w", err)
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := realtime.NewHub(logger)
	go hub.Run(hubCtx)

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	tokens := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)

	authService := services.NewAuthService(userRepo, auth.NewBcryptHasher(cfg.BcryptCost), tokens,
		services.NewEmailService(mailer, renderer, cfg.AppURL, logger), logger)
	eventService := services.NewEventService(eventRepo, userRepo, hub, cfg.RequestTimeout)

	mux := httpdelivery.NewRouter(httpdelivery.Controllers{
		Auth:     controllers.NewAuthController(logger, authService),
		Event:    controllers.NewEventController(logger, eventService),
		Realtime: controllers.NewRealtimeController(logger, hub, eventService, tokens, cfg.CORSAllowedOrigins),
		Health:   controllers.NewHealthController(logger, db),
	}, tokens, logger)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpdelivery.NewHandler(mux, logger, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
	// Hijacked websocket connections are not tracked by Shutdown.
	stopHub()
	return nil
}
