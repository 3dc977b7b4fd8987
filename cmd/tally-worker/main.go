package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"tally/internal/amqp"
	"tally/internal/cli"
	"tally/internal/log"
	gsheet "tally/internal/mirror/google"
	"tally/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentMirror)

	logger.Info("Starting tally-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.MirrorSpreadsheetID == "" {
		logger.Error("MIRROR_SPREADSHEET_ID is required for the mirror worker")
		os.Exit(1)
	}

	// Mirror state lives in SQLite regardless of the API's backend
	// selection, so the worker always reads the database directly.
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	sheetClient, err := gsheet.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.MirrorSpreadsheetID)

	mirrorWorker := worker.NewMirrorWorker(repo, sheetClient, worker.Config{
		PollInterval: cfg.MirrorPollInterval,
		BatchSize:    cfg.MirrorBatchSize,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// Polling sweep catches entries whose queue delivery was missed.
	if err := mirrorWorker.Start(gctx); err != nil {
		logger.Error("Failed to start mirror worker", "error", err)
		os.Exit(1)
	}

	// Queue consumption mirrors entries as they happen. Without AMQP the
	// polling sweep alone keeps the sheet converging.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		g.Go(func() error {
			err := amqpClient.ConsumeEntryEvents(gctx, func(msg *amqp.EntryEventMessage) error {
				return mirrorWorker.HandleEvent(gctx, msg)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	} else {
		logger.Info("AMQP disabled - relying on the polling sweep only")
	}

	// Keep the process alive until a shutdown signal arrives.
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker failed", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Info("Shutting down worker...")
	if err := mirrorWorker.Stop(shutdownCtx); err != nil {
		logger.Warn("Mirror worker did not stop cleanly", "error", err)
	}
	logger.Info("Worker shutdown complete")
}
