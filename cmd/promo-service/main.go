package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/karimfayez/souq-promo-service/internal/app/background"
	"github.com/karimfayez/souq-promo-service/internal/config"
	delivery "github.com/karimfayez/souq-promo-service/internal/delivery/http"
	"github.com/karimfayez/souq-promo-service/internal/delivery/http/handlers"
	"github.com/karimfayez/souq-promo-service/internal/gateway"
	"github.com/karimfayez/souq-promo-service/internal/gateway/cod"
	publisher "github.com/karimfayez/souq-promo-service/internal/infrastructure/kafka"
	"github.com/karimfayez/souq-promo-service/internal/infrastructure/metrics"
	"github.com/karimfayez/souq-promo-service/internal/infrastructure/migrate"
	"github.com/karimfayez/souq-promo-service/internal/infrastructure/postgres"
	"github.com/karimfayez/souq-promo-service/internal/infrastructure/postgres/repository"
	"github.com/karimfayez/souq-promo-service/internal/usecase/evaluator"
	"github.com/karimfayez/souq-promo-service/internal/usecase/payment"
	"github.com/karimfayez/souq-promo-service/internal/usecase/usage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.Migrations.Path != "" {
		if err := migrate.RunMigrations(db, cfg.Migrations.Path); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := publisher.NewDefaultKafkaPublisher(brokers)
	sub := publisher.NewDefaultKafkaSubscriber(brokers)

	// Init repositories
	offerRepo := repository.NewDefaultOfferRepository(db)
	usageRepo := repository.NewDefaultUsageRepository(db)
	intentRepo := repository.NewDefaultPaymentIntentRepository(db)

	// Init metrics
	promoMetrics := metrics.NewPromoMetrics()
	paymentMetrics := metrics.NewPaymentMetrics()

	// Init gateways
	codGateway, err := cod.New(intentRepo)
	if err != nil {
		log.Fatalf("failed to init cash-on-delivery gateway: %v", err)
	}
	registry := gateway.NewRegistry(codGateway)

	// Init usecases
	evaluatorUc := evaluator.NewDefaultEvaluatorUsecase(offerRepo, usageRepo, promoMetrics)
	usageUc := usage.NewDefaultUsageUsecase(usageRepo, pub, sub, promoMetrics)
	paymentUc := payment.NewDefaultPaymentUsecase(registry, intentRepo, pub, paymentMetrics)

	// Init HTTP delivery
	promoHandler := handlers.NewPromoHandler(evaluatorUc, usageUc)
	paymentHandler := handlers.NewPaymentHandler(paymentUc)
	router := delivery.NewRouter(promoHandler, paymentHandler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background workers: order-events consumer + expired offer sweep
	tasks := background.NewBackgroundTasks(usageUc, offerRepo)
	tasks.StartAll(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("promo-service started on %s:%s\n", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %v\n", err)
	}

	<-idleConnsClosed
	log.Println("promo-service stopped")
}
