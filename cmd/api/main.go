package main

import (
	"context"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tilegraph/api/internal/httpapi"
	"github.com/tilegraph/api/internal/logx"
	"github.com/tilegraph/api/internal/search"
	"github.com/tilegraph/api/internal/store"
)

func main() {
	var (
		addr     = flag.String("addr", ":8017", "listen address")
		cacheDir = flag.String("cache", "./data/traces", "trace cache directory (empty = no cache)")
		logLevel = flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	)
	flag.Parse()

	logger := logx.NewLogger(*logLevel)

	var traces *store.Store
	if *cacheDir != "" {
		var err error
		traces, err = store.Open(*cacheDir, logger.With().Str("component", "store").Logger())
		if err != nil {
			logger.Fatal().Err(err).Str("dir", *cacheDir).Msg("open trace cache")
		}
		logger.Info().Str("dir", *cacheDir).Int("traces", traces.Len()).Msg("opened trace cache")
	}

	solver := search.New(logger.With().Str("component", "search").Logger())

	srv := &http.Server{
		Addr:         *addr,
		Handler:      httpapi.NewRouter(logger, solver, traces),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("api server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http server shutdown error")
	}

	if traces != nil {
		if err := traces.Close(); err != nil {
			logger.Error().Err(err).Msg("trace cache flush error")
		} else {
			stats := traces.Stats()
			logger.Info().
				Int("entries", stats.Entries).
				Uint64("hits", stats.Hits).
				Uint64("writes", stats.Writes).
				Msg("trace cache flushed")
		}
	}

	logger.Info().Msg("shutdown complete")
}
