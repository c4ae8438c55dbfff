package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/companion-booking/internal"
	"github.com/frahmantamala/companion-booking/internal/booking"
	bookingpostgres "github.com/frahmantamala/companion-booking/internal/booking/postgres"
	"github.com/frahmantamala/companion-booking/internal/core/events"
	"github.com/frahmantamala/companion-booking/internal/notifier"
	"github.com/frahmantamala/companion-booking/internal/payment"
	paymentpostgres "github.com/frahmantamala/companion-booking/internal/payment/postgres"
	"github.com/frahmantamala/companion-booking/internal/transport"
	"github.com/frahmantamala/companion-booking/internal/transport/rest"
	"github.com/frahmantamala/companion-booking/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests and provider notifications`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config         *internal.Config
	DB             *sqlx.DB
	GormDB         *gorm.DB
	Router         *chi.Mux
	Logger         *slog.Logger
	NotifierClient *notifier.Client
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if deps.NotifierClient != nil {
			deps.NotifierClient.Shutdown()
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	eventBus := events.NewEventBus(deps.Logger)

	notifierHandler := notifier.NewEventHandler(deps.NotifierClient, deps.Logger)
	notifierHandler.RegisterEventHandlers(eventBus)

	baseHandler := transport.NewBaseHandler(deps.Logger)

	transactionRepo := paymentpostgres.NewTransactionRepository(deps.GormDB)
	bookingRepo := bookingpostgres.NewBookingRepository(deps.GormDB)
	verificationRepo := bookingpostgres.NewVerificationRepository(deps.GormDB)

	verifier := payment.NewSignatureVerifier(deps.Config.Midtrans.ServerKey)
	paymentService := payment.NewService(verifier, transactionRepo, bookingRepo, eventBus, deps.Logger)
	bookingService := booking.NewService(bookingRepo, transactionRepo, verificationRepo, deps.Logger)

	webhookHandler := payment.NewWebhookHandler(baseHandler, paymentService, deps.Logger)
	paymentHandler := payment.NewHandler(baseHandler, paymentService, deps.Logger)
	bookingHandler := booking.NewHandler(baseHandler, bookingService, deps.Logger)

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, bookingHandler, paymentHandler, webhookHandler, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"), config.Observability.Logging.Level)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	notifierClient := notifier.NewClient(notifier.Config{
		APIURL:       config.Notifier.APIURL,
		APIKey:       config.Notifier.APIKey,
		SendTimeout:  config.Notifier.SendTimeout,
		MaxWorkers:   config.Notifier.MaxWorkers,
		JobQueueSize: config.Notifier.JobQueueSize,
	}, log)

	return &Dependencies{
		Config:         config,
		Logger:         log,
		DB:             db,
		GormDB:         gormDB,
		Router:         chi.NewRouter(),
		NotifierClient: notifierClient,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
