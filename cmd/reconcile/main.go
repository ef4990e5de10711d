// Command reconcile replays a CSV transaction statement and prints the final
// account snapshots as CSV on stdout.
//
// Usage:
//
//	reconcile <transactions.csv>
//
// With DATABASE_URL set, snapshots are also persisted to postgres; with
// KAFKA_BROKERS set, chargebacks publish account-frozen events.
package main

import (
	"bufio"
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/clearstream/ledger-replay/internal/config"
	"github.com/clearstream/ledger-replay/internal/csvio"
	"github.com/clearstream/ledger-replay/internal/events/kafka"
	"github.com/clearstream/ledger-replay/internal/interfaces"
	"github.com/clearstream/ledger-replay/internal/ledger"
	"github.com/clearstream/ledger-replay/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	logger, err := cfg.NewLogger()
	if err != nil {
		os.Stderr.WriteString("reconcile: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if len(os.Args) != 2 {
		logger.Fatal("usage: reconcile <transactions.csv>")
	}

	file, err := os.Open(os.Args[1])
	if err != nil {
		logger.Fatal("opening transactions file", zap.Error(err))
	}
	defer file.Close()

	var publisher interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	engine := ledger.NewEngine(logger, publisher)
	source := csvio.NewReader(bufio.NewReader(file), logger)

	ctx := context.Background()
	if err := engine.Process(ctx, source); err != nil {
		logger.Fatal("replay aborted", zap.String("run_id", engine.RunID().String()), zap.Error(err))
	}

	snapshots := engine.Snapshots()

	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("connecting to postgres", zap.Error(err))
		}
		defer db.Close()

		store := postgres.NewSnapshotStore(db)
		if err := store.SaveSnapshots(ctx, engine.RunID(), snapshots); err != nil {
			logger.Fatal("persisting snapshots", zap.String("run_id", engine.RunID().String()), zap.Error(err))
		}
	}

	if err := csvio.WriteSnapshots(os.Stdout, snapshots); err != nil {
		logger.Fatal("writing snapshots", zap.Error(err))
	}

	stats := engine.Stats()
	logger.Info("replay complete",
		zap.String("run_id", engine.RunID().String()),
		zap.Int("accounts", len(snapshots)),
		zap.Uint64("processed", stats.Processed),
		zap.Uint64("rejected", stats.Rejected),
		zap.Uint64("skipped", stats.Skipped))
}
