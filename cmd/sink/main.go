// Command sink runs a local debug receiver: it listens for statsd datagrams
// over UDP and serves the most recent wire lines over HTTP for inspection.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vshulcz/statline/internal/config"
	"github.com/vshulcz/statline/internal/sink"
)

func main() {
	cfg, err := config.LoadSinkConfig(os.Args[1:], nil)
	if err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	store := sink.NewStore(cfg.Capacity)
	listener, err := sink.Listen(cfg.UDPAddress, store, logger)
	if err != nil {
		logger.Fatal("udp listen failed", zap.String("addr", cfg.UDPAddress), zap.Error(err))
	}
	listener.Start()
	defer listener.Stop()

	router := sink.NewRouter(sink.NewHandler(store), sink.RequestLogger(logger))
	srv := &http.Server{Addr: cfg.HTTPAddress, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", zap.Error(err))
		}
	}()

	logger.Info("sink started",
		zap.String("udp", listener.Addr().String()),
		zap.String("http", cfg.HTTPAddress),
		zap.Int("capacity", cfg.Capacity),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}
