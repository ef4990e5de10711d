// Command server runs the replay engine as an HTTP service. Statements are
// POSTed to /v1/replay as CSV and answered with the snapshot CSV.
package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clearstream/ledger-replay/internal/config"
	"github.com/clearstream/ledger-replay/internal/events/kafka"
	"github.com/clearstream/ledger-replay/internal/interfaces"
	"github.com/clearstream/ledger-replay/internal/server"
	"github.com/clearstream/ledger-replay/internal/storage/memory"
	"github.com/clearstream/ledger-replay/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	logger, err := cfg.NewLogger()
	if err != nil {
		os.Stderr.WriteString("server: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	var store interfaces.SnapshotStore = memory.NewSnapshotStore()
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("connecting to postgres", zap.Error(err))
		}
		defer db.Close()
		store = postgres.NewSnapshotStore(db)
	}

	var publisher interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := server.New(logger, store, publisher)

	logger.Info("starting server", zap.String("addr", cfg.HTTPAddr))
	if err := srv.Router().Run(cfg.HTTPAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
