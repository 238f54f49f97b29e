package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"events-tracker/internal/authz"
	"events-tracker/internal/ledger"
	"events-tracker/internal/platform/config"
	"events-tracker/internal/platform/httpserver"
	"events-tracker/internal/platform/logger"
	"events-tracker/internal/platform/metrics"
	platformredis "events-tracker/internal/platform/redis"
	"events-tracker/internal/registry"
	"events-tracker/internal/signing"
	"events-tracker/internal/storage"
	httptransport "events-tracker/internal/transport/http"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal services.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if len(cfg.AdminAddresses) == 0 {
		log.Warn("ADMIN_ADDRESSES is empty; every admin action will be denied")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	store := storage.NewRedis(redisClient.Client, cfg.StoreTimeout)
	m := metrics.New()

	verifier := signing.NewVerifier(cfg.SigningDomainName, cfg.SigningDomainVersion, cfg.ChainID)
	oracle := authz.NewDirectoryOracle(cfg.MembersURL, cfg.OracleTimeout)
	gate := authz.NewGate(oracle, cfg.Admins(), log)
	reg := registry.New(store)
	led := ledger.New(store, reg, cfg.ExpenseListLimit)

	handler := httptransport.New(log, m, verifier, gate, reg, led, redisClient)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	log.Info("starting events-tracker", "addr", cfg.Addr, "chain_id", cfg.ChainID)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
