// Command server runs the onboarding bridge: lead intake, provider webhook
// routing, payload generation, and delivery to the partner core.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"kycbridge/internal/health"
	jwttoken "kycbridge/internal/jwt_token"
	"kycbridge/internal/lead"
	leadhandler "kycbridge/internal/lead/handler"
	"kycbridge/internal/onboarding"
	"kycbridge/internal/partner"
	"kycbridge/internal/payload"
	"kycbridge/internal/platform/config"
	"kycbridge/internal/platform/httpserver"
	"kycbridge/internal/platform/kafka"
	"kycbridge/internal/platform/logger"
	"kycbridge/internal/platform/metrics"
	platformredis "kycbridge/internal/platform/redis"
	"kycbridge/internal/provider"
	"kycbridge/internal/webhook"
)

const serviceName = "kycbridge"

func main() {
	cfg := config.FromEnv()
	log := logger.New(slog.LevelInfo)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		leadStore       lead.Store
		onboardingStore onboarding.Store
		db              *sql.DB
	)
	if cfg.PostgresDSN != "" {
		var err error
		db, err = sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("ping postgres: %w", err)
		}

		pgLeads := lead.NewPostgres(db)
		if err := pgLeads.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("lead schema: %w", err)
		}
		pgOnboardings := onboarding.NewPostgres(db)
		if err := pgOnboardings.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("onboarding schema: %w", err)
		}
		leadStore, onboardingStore = pgLeads, pgOnboardings
	} else {
		log.Warn("no postgres DSN configured, state is in-memory and lost on restart")
		leadStore = lead.NewInMemoryStore()
		onboardingStore = onboarding.NewInMemoryStore()
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	var processed webhook.ProcessedStore
	if redisClient != nil {
		defer redisClient.Close()
		processed = webhook.NewRedisProcessedStore(redisClient)
	} else {
		log.Warn("no redis URL configured, webhook replay guard is in-memory")
		processed = webhook.NewInMemoryProcessedStore()
	}

	producer, err := kafka.NewProducer(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
	if err != nil {
		return fmt.Errorf("connect kafka: %w", err)
	}
	defer producer.Close(context.Background())

	m := metrics.New()
	providerClient := provider.NewHTTPClient(cfg.Provider, log)
	partnerClient := partner.NewHTTPClient(cfg.Partner.BaseURL, cfg.Partner.APIKey, cfg.Partner.Timeout)
	formatter := payload.NewFormatter(log)
	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, serviceName)

	inbox := make(chan *onboarding.Record, 64)
	dispatcher := onboarding.NewDispatcher(onboardingStore, partnerClient, inbox, producer, log)

	leadService := lead.NewService(leadStore, providerClient, cfg.Provider, producer, m, log)
	webhookService := webhook.NewService(
		leadStore,
		onboardingStore,
		processed,
		providerClient,
		formatter,
		inbox,
		producer,
		m,
		cfg.Provider.AcceptedLevels(),
		log,
	)

	router := chi.NewRouter()
	leadhandler.New(leadService, log, jwtService).Register(router)
	webhook.NewHandler(webhookService, m, log).Register(router)
	health.New(serviceName, db, redisClient).Register(router)
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := dispatcher.Recover(gctx); err != nil {
			log.Warn("pending onboarding recovery failed", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := dispatcher.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("dispatcher: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting "+serviceName, "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
