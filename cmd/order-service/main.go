package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/boostlab/smm-order-service/internal/app/background"
	"github.com/boostlab/smm-order-service/internal/config"
	deliveryhttp "github.com/boostlab/smm-order-service/internal/delivery/http"
	"github.com/boostlab/smm-order-service/internal/delivery/http/handlers"
	"github.com/boostlab/smm-order-service/internal/infrastructure/budpay"
	publisher "github.com/boostlab/smm-order-service/internal/infrastructure/kafka/publisher"
	"github.com/boostlab/smm-order-service/internal/infrastructure/metrics"
	"github.com/boostlab/smm-order-service/internal/infrastructure/migrate"
	"github.com/boostlab/smm-order-service/internal/infrastructure/notifier"
	"github.com/boostlab/smm-order-service/internal/infrastructure/postgres"
	"github.com/boostlab/smm-order-service/internal/infrastructure/postgres/repository"
	"github.com/boostlab/smm-order-service/internal/infrastructure/smmpanel"
	"github.com/boostlab/smm-order-service/internal/usecase/catalog"
	"github.com/boostlab/smm-order-service/internal/usecase/order"
	"github.com/boostlab/smm-order-service/internal/usecase/payment"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.OrderDB.MigrationPath != "" {
		if err := migrate.RunMigrations(db, cfg.OrderDB.MigrationPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init repositories
	orderRepo := repository.NewDefaultOrderRepository(db)
	paymentRepo := repository.NewDefaultPaymentRepository(db)
	txnRepo := repository.NewDefaultTransactionRepository(db)
	webhookLogRepo := repository.NewDefaultWebhookLogRepository(db)
	catalogRepo := repository.NewDefaultCatalogRepository(db)

	// Init infrastructure clients
	gateway := budpay.NewClient(cfg.Budpay)
	panel := smmpanel.NewClient(cfg.SMMPanel)
	pushNotifier := notifier.NewHTTPNotifier(cfg.Notifier)
	orderMetrics := metrics.NewOrderMetrics()

	brokers := []string{fmt.Sprintf("%s:%s", cfg.Kafka.Host, cfg.Kafka.Port)}
	pub := publisher.NewDefaultKafkaPublisher(brokers)
	defer pub.Close()

	// Init usecases
	matcher := payment.NewMatcher(cfg.Matcher)
	paymentUC := payment.NewDefaultPaymentUsecase(
		paymentRepo,
		txnRepo,
		webhookLogRepo,
		orderRepo,
		gateway,
		matcher,
		pushNotifier,
		pub,
		orderMetrics,
		cfg.Kafka.OrderTopic,
		cfg.Pricing,
	)
	orderUC := order.NewDefaultOrderUsecase(
		orderRepo,
		paymentRepo,
		catalogRepo,
		panel,
		pushNotifier,
		pub,
		orderMetrics,
		cfg,
	)
	catalogUC := catalog.NewDefaultCatalogUsecase(catalogRepo, panel, cfg.SMMPanel, cfg.Pricing)

	// Background loops
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tasks := background.NewBackgroundTasks(orderUC, catalogUC, cfg.Reconcile)
	tasks.StartAll(ctx)

	// HTTP server
	router := deliveryhttp.NewRouter(deliveryhttp.Handlers{
		Order:   handlers.NewOrderHandler(orderUC, paymentUC),
		Payment: handlers.NewPaymentHandler(paymentUC),
		Admin:   handlers.NewAdminHandler(orderUC, catalogUC),
	})

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	go func() {
		slog.Info("http server starting", "addr", addr)
		if err := router.Run(addr); err != nil {
			log.Fatalf("http server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")
	cancel()
}
