package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/splitledger/splitledger/internal/config"
	"github.com/splitledger/splitledger/internal/notify"
	"github.com/splitledger/splitledger/internal/server"
	"github.com/splitledger/splitledger/internal/service"
	"github.com/splitledger/splitledger/internal/storage"
	"github.com/splitledger/splitledger/internal/storage/memory"
	"github.com/splitledger/splitledger/internal/storage/sqlite"
	"github.com/splitledger/splitledger/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store storage.Store
	switch cfg.StorageBackend {
	case "sqlite":
		s, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			slog.Error("Failed to initialize storage", "error", err)
			os.Exit(1)
		}
		store = s
		slog.Info("Storage initialized", "backend", "sqlite", "database", cfg.SQLiteDBPath)
	case "memory":
		store = memory.New()
		slog.Info("Storage initialized", "backend", "memory")
	}
	defer store.Close()

	var notifier notify.Notifier = notify.Nop{}
	if cfg.AMQPURL != "" {
		n, err := notify.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Error("Failed to connect to AMQP broker", "error", err)
			os.Exit(1)
		}
		defer n.Close()
		notifier = n
		slog.Info("Notifications enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	svc, err := service.NewLedgerService(ctx, store, notifier, cfg.SettleEpsilon)
	if err != nil {
		slog.Error("Failed to load ledger", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg.Port, server.NewRouter(server.NewHandlers(svc)))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server starting", "port", cfg.Port)
		return srv.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
