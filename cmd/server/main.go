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

	"github.com/simaogato/poolledger-backend/internal/adapter/handler"
	"github.com/simaogato/poolledger-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/poolledger-backend/internal/adapter/repository/snapshotfile"
	"github.com/simaogato/poolledger-backend/internal/config"
	"github.com/simaogato/poolledger-backend/internal/logger"
	"github.com/simaogato/poolledger-backend/internal/usecase/dashboard"
	"github.com/simaogato/poolledger-backend/internal/usecase/ledger"
	"github.com/simaogato/poolledger-backend/internal/usecase/mirror"
)

func main() {
	// 1. Load configuration and logger
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Initialize stores
	snapshots := snapshotfile.NewStore(cfg.SnapshotPath)

	var sink ledger.MutationSink = mirror.Nop{}
	var outbox *mirror.Outbox
	if cfg.MirrorEnabled {
		db, err := postgres.NewDB(cfg.DBConnString())
		if err != nil {
			zlog.Fatal("failed to connect to mirror database", zap.Error(err))
		}
		defer db.Close()

		if err := db.EnsureSchema(ctx); err != nil {
			zlog.Fatal("failed to ensure mirror schema", zap.Error(err))
		}

		outbox = mirror.NewOutbox(postgres.NewMirrorRepository(db), zlog, cfg.MirrorBuffer)
		outbox.Start(ctx)
		sink = outbox
		zlog.Info("mirror backend enabled", zap.String("db", cfg.DBName))
	}

	// 3. Initialize services (use cases)
	ledgerSvc, err := ledger.NewService(ctx, snapshots, sink, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize ledger engine", zap.Error(err))
	}
	dashboardSvc := dashboard.NewService(ledgerSvc)

	// 4. Start HTTP server
	router := handler.NewRouter(ledgerSvc, dashboardSvc, zlog)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		zlog.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	waitForShutdown(srv, outbox, zlog)
}

// waitForShutdown waits for SIGTERM or SIGINT, stops the HTTP server and
// drains the mirror outbox
func waitForShutdown(srv *http.Server, outbox *mirror.Outbox, zlog *zap.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	zlog.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("http shutdown failed", zap.Error(err))
	}

	if outbox != nil {
		outbox.Close()
	}
	zlog.Info("server stopped")
}
