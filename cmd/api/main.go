package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/usersvc/internal/app"
	"github.com/geocoder89/usersvc/internal/config"
	httpx "github.com/geocoder89/usersvc/internal/http"
	"github.com/geocoder89/usersvc/internal/observability"
	"github.com/geocoder89/usersvc/internal/repo/memory"
	"github.com/geocoder89/usersvc/internal/storage"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	shutdownTracer, err := observability.InitTracer(context.Background(), cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Error("tracer init failed", "err", err)
		os.Exit(1)
	}

	prom := observability.NewProm()

	state, err := newState(cfg, prom)
	if err != nil {
		// no pool, no traffic
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer state.Close()

	router := httpx.NewRouter(log, state, prom, cfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.Store)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

func newState(cfg config.Config, prom *observability.Prom) (*app.State, error) {
	if cfg.Store == config.StoreMemory {
		return app.NewWithStore(memory.NewUsersRepo()), nil
	}

	pool, err := storage.Open(context.Background(), cfg.DBURL)
	if err != nil {
		return nil, err
	}

	return app.New(storage.New(pool, prom)), nil
}
