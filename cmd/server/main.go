package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/net/netutil"

	httpadapter "leaseflex/internal/adapters/http"
	kafkaadapter "leaseflex/internal/adapters/kafka"
	"leaseflex/internal/adapters/memory"
	pg "leaseflex/internal/adapters/postgres"
	"leaseflex/internal/config"
	"leaseflex/internal/observability"
	"leaseflex/internal/ports"
	"leaseflex/internal/quote"
	"leaseflex/internal/services/analysis"
	"leaseflex/internal/services/claims"
	"leaseflex/internal/services/offers"
	"leaseflex/internal/underwriting"
	"leaseflex/internal/workers/followup"
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	log := observability.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	if err != nil {
		log.Warn("config warning", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage
	var (
		offerRepo    ports.OfferRepository
		followupRepo ports.FollowupRepository
		claimRepo    ports.ClaimRepository
	)
	if cfg.DatabaseURL != "" {
		db, err := pg.Connect(ctx, cfg.DatabaseURL, pg.PoolOptions{
			MaxConns:          cfg.DBMaxConns,
			HealthCheckPeriod: cfg.DBHealthCheck,
		})
		if err != nil {
			log.Error("db connect failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			log.Error("db migrate failed", "error", err)
			os.Exit(1)
		}
		offerRepo = pg.OfferRepo{DB: db}
		followupRepo = pg.FollowupRepo{DB: db}
		claimRepo = pg.ClaimRepo{DB: db}
	} else {
		mem := memory.NewOfferRepository()
		offerRepo, followupRepo = mem, mem
		claimRepo = memory.NewClaimRepository()
		log.Info("using in-memory offer store")
	}

	cache, closeCache := newOfferCache(ctx, cfg, cfg.DatabaseURL != "", log)
	defer closeCache()

	var events ports.EventPublisher = ports.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		pub := kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		defer pub.Close()
		events = pub
	}

	baseline, tiers, err := config.LoadAssumptions(cfg.AssumptionsFile)
	if err != nil {
		log.Error("load assumptions failed", "file", cfg.AssumptionsFile, "error", err)
		os.Exit(1)
	}
	sim, err := underwriting.NewSimulator(baseline, tiers)
	if err != nil {
		log.Error("invalid simulator setup", "error", err)
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	quotes := offers.New(quote.NewEngine(quote.DefaultPolicy()), offerRepo, cache, events,
		offers.WithMetrics(metrics),
		offers.WithLogger(log),
	)
	claimSvc := claims.New(claimRepo, offerRepo, events,
		claims.WithMetrics(metrics),
		claims.WithLogger(log),
	)
	srv := httpadapter.New(quotes, claimSvc, analysis.New(sim, log), log)

	r := chi.NewRouter()
	r.Handle("/metrics", metrics.Handler())
	r.Mount("/", srv.Routes())

	// Optional background follow-up workers
	workersDone := make(chan struct{})
	if cfg.FollowupWorkers > 0 {
		runner := followup.New(followupRepo, events,
			followup.WithMinGap(cfg.FollowupMinGap),
			followup.WithMetrics(metrics),
			followup.WithLogger(log),
		)
		go func() {
			runner.Run(ctx, cfg.FollowupWorkers, cfg.FollowupInterval)
			close(workersDone)
		}()
		log.Info("followup workers started", "workers", cfg.FollowupWorkers, "interval", cfg.FollowupInterval)
	} else {
		close(workersDone)
	}

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Error("listen failed", "addr", cfg.ListenAddr, "error", err)
		os.Exit(1)
	}
	if cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, cfg.MaxConnections)
	}

	httpSrv := &http.Server{Handler: r, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.Serve(ln) }()
	log.Info("listening", "addr", cfg.ListenAddr, "env", cfg.Env)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", "error", err)
	}
	cancel()
	<-workersDone
}
