package main

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"aruvadai/internal/amqp"
	"aruvadai/internal/cli"
	"aruvadai/internal/core"
	"aruvadai/internal/sheets"
	gsheet "aruvadai/internal/sheets/google"
	memsheet "aruvadai/internal/sheets/memory"
	"aruvadai/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting aruvadai-worker")

	// Spreadsheet mirror target. Without credentials the worker still
	// drains the queue into an in-process store so local runs behave.
	var appender sheets.RecordAppender
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background(), core.DefaultCatalog())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		appender = client
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		appender = memsheet.New()
		logger.Info("Google Sheets disabled, mirroring to in-process store")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirror := worker.NewMirrorWorker(appender)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeRecordEvents(gctx, func(event *amqp.RecordEvent) error {
			return mirror.HandleRecordEvent(gctx, event)
		})
	})

	// Idle heartbeat so the logs show liveness between deliveries.
	g.Go(func() error {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				logger.Info("Worker alive", "queue", cfg.AMQPQueue)
			}
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker shutdown complete")
}
