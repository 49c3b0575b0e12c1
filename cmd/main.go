package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resto-platform/internal/adapter/logger"
	"resto-platform/internal/adapter/postgres"
	"resto-platform/internal/adapter/rabbitmq"
	"resto-platform/internal/app/admin"
	"resto-platform/internal/app/storefront"
	"resto-platform/internal/config"
	"resto-platform/internal/interfaces"
	"resto-platform/internal/pricing"

	httpAdapter "resto-platform/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "", "Service mode: admin-api, storefront-api, refresh-subscriber")
	port := flag.Int("port", 3000, "HTTP port")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	lgr := logger.New(*mode)

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	engine := pricing.Engine{
		ScaleAdditionalPriceByMenuQuantity: cfg.Pricing.ScaleAdditionalPriceByMenuQuantity,
	}

	switch *mode {
	case "admin-api":
		db := mustConnectDB(ctx, cfg, lgr)
		defer db.Close()
		runAdminAPI(db, mqConn, engine, lgr, *port)

	case "storefront-api":
		db := mustConnectDB(ctx, cfg, lgr)
		defer db.Close()
		runStorefrontAPI(db, mqConn, engine, lgr, *port)

	case "refresh-subscriber":
		runRefreshSubscriber(ctx, mqConn, lgr)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func mustConnectDB(ctx context.Context, cfg *config.Config, lgr logger.Logger) postgres.DB {
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})
	return db
}

func runAdminAPI(db postgres.DB, mqConn rabbitmq.Connection, engine pricing.Engine, lgr logger.Logger, port int) {
	commandRepo := postgres.NewCommandRepository(db)
	accompanimentRepo := postgres.NewAccompanimentRepository(db)
	publisher := rabbitmq.NewPublisher(mqConn)

	service := admin.NewService(commandRepo, accompanimentRepo, publisher, engine, lgr)
	handler := httpAdapter.NewAdminHandler(service, lgr)

	serveHTTP(handler.Routes(), lgr, "Admin API", port)
}

func runStorefrontAPI(db postgres.DB, mqConn rabbitmq.Connection, engine pricing.Engine, lgr logger.Logger, port int) {
	commandRepo := postgres.NewCommandRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	publisher := rabbitmq.NewPublisher(mqConn)

	service := storefront.NewService(catalogRepo, commandRepo, publisher, engine, lgr)
	handler := httpAdapter.NewStorefrontHandler(service, lgr)

	serveHTTP(handler.Routes(), lgr, "Storefront API", port)
}

func serveHTTP(routes http.Handler, lgr logger.Logger, name string, port int) {
	handler := httpAdapter.LoggingMiddleware(lgr)(routes)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("%s started on port %d", name, port), "startup", map[string]interface{}{
		"port": port,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", fmt.Sprintf("Shutting down %s", name), "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}

// runRefreshSubscriber tails the refresh broadcast channel and logs each
// event, standing in for any screen that refetches on notification.
func runRefreshSubscriber(ctx context.Context, mqConn rabbitmq.Connection, lgr logger.Logger) {
	subscriber := rabbitmq.NewSubscriber(mqConn, lgr)

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		err := subscriber.Subscribe(subCtx, func(ctx context.Context, msg interfaces.RefreshMessage) error {
			lgr.Info("refresh_received", fmt.Sprintf("Refresh event from %s", msg.Origin), "", map[string]interface{}{
				"topic":  string(msg.Topic),
				"origin": msg.Origin,
			})
			fmt.Printf("Refresh [%s] from %s at %s\n", msg.Topic, msg.Origin, msg.Timestamp.Format(time.RFC3339))
			return nil
		})
		if err != nil && err != context.Canceled {
			lgr.Error("subscriber_error", "Error consuming refresh events", "runtime", nil, err)
		}
	}()

	lgr.Info("service_started", "Refresh subscriber started", "startup", nil)

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	lgr.Info("shutdown_initiated", "Shutting down refresh subscriber", "shutdown", nil)
}
