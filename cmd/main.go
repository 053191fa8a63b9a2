package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bellavista/internal/config"
	"bellavista/internal/database"
	"bellavista/internal/logger"
	"bellavista/internal/messaging"
	"bellavista/internal/services/cart"
	"bellavista/internal/services/checkout"
	"bellavista/internal/services/menu"
	"bellavista/internal/services/notification"
	"bellavista/internal/services/reservation"
)

func main() {
	var (
		mode       = flag.String("mode", "web", "Service mode (web, notification-subscriber)")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
		configPath = flag.String("config", "config.yaml", "Path to config file")
		prefetch   = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": cfg.Server.Port,
	})

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "web":
		if err := runWeb(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Web service failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if err := runNotificationSubscriber(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Notification subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runWeb runs the storefront HTTP service
func runWeb(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	// Initialize database and load the catalog
	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	catalog, err := menu.NewRepository(db).LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	log.Info("catalog_loaded", "Loaded menu catalog", requestID, map[string]interface{}{
		"categories": len(catalog.ListCategories()),
	})

	// Initialize messaging
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	// Session registries and the checkout machinery
	cartSessions := cart.NewSessions(cfg, log)
	processor := checkout.NewProcessor(cfg.Pricing.PaymentDelay(), publisher, log)
	checkoutManager := checkout.NewManager(processor)
	cartSessions.SetEvictHandler(checkoutManager.Remove)
	cartSessions.StartSweeper(ctx)

	reservationSessions := reservation.NewSessions(cfg, log)
	reservationSessions.StartSweeper(ctx)

	// HTTP routes
	mux := http.NewServeMux()
	menu.NewHandler(catalog, log).Register(mux)
	cart.NewHandler(cartSessions, catalog, log).Register(mux)
	checkout.NewHandler(cartSessions, checkoutManager, log).Register(mux)
	reservation.NewHandler(reservationSessions, publisher, log).Register(mux)
	mux.HandleFunc("GET /health", healthHandler(db, conn))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: mux,
	}

	go func() {
		log.Info("server_listening", fmt.Sprintf("Web service started on port %d", cfg.Server.Port), requestID, map[string]interface{}{
			"port": cfg.Server.Port,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runNotificationSubscriber consumes order and reservation notifications
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-subscriber", prefetch)
	defer consumer.Close()

	return notification.NewSubscriber(consumer, log).Start(ctx)
}

// healthHandler reports database and messaging health
func healthHandler(db *database.DB, conn *messaging.Connection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		healthy := db.Ping(ctx) == nil && !conn.IsClosed()

		w.Header().Set("Content-Type", "application/json")
		status := "ok"
		code := http.StatusOK
		if !healthy {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		w.WriteHeader(code)
		fmt.Fprintf(w, `{"status":%q,"timestamp":%q}`, status, time.Now().UTC().Format(time.RFC3339))
	}
}
