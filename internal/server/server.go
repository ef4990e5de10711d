// Package server exposes the replay engine over HTTP: POST a CSV statement,
// get the final account snapshots back as CSV. Each request runs its own
// engine; the service keeps no state between requests.
package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clearstream/ledger-replay/internal/csvio"
	"github.com/clearstream/ledger-replay/internal/interfaces"
	"github.com/clearstream/ledger-replay/internal/ledger"
)

type Server struct {
	log       *zap.Logger
	store     interfaces.SnapshotStore  // optional, may be nil
	publisher interfaces.EventPublisher // optional, may be nil
}

func New(log *zap.Logger, store interfaces.SnapshotStore, publisher interfaces.EventPublisher) *Server {
	return &Server{log: log, store: store, publisher: publisher}
}

// Router builds the HTTP handler chain.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.health)

	v1 := r.Group("/v1")
	v1.POST("/replay", s.replay)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// replay runs one engine pass over the CSV request body and streams the
// snapshot CSV back. Bad rows inside the body are skipped, same as the CLI;
// only an unreadable body fails the request.
func (s *Server) replay(c *gin.Context) {
	engine := ledger.NewEngine(s.log, s.publisher)
	source := csvio.NewReader(c.Request.Body, s.log)

	if err := engine.Process(c.Request.Context(), source); err != nil {
		s.log.Error("replay aborted", zap.String("run_id", engine.RunID().String()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable transaction stream"})
		return
	}

	snapshots := engine.Snapshots()

	if s.store != nil {
		if err := s.store.SaveSnapshots(c.Request.Context(), engine.RunID(), snapshots); err != nil {
			// Persistence is a best-effort sink; the response is the source
			// of truth for the caller.
			s.log.Error("persisting snapshots", zap.String("run_id", engine.RunID().String()), zap.Error(err))
		}
	}

	stats := engine.Stats()
	c.Header("X-Run-Id", engine.RunID().String())
	c.Header("X-Records-Processed", strconv.FormatUint(stats.Processed, 10))
	c.Header("X-Records-Rejected", strconv.FormatUint(stats.Rejected, 10))
	c.Header("X-Records-Skipped", strconv.FormatUint(stats.Skipped, 10))
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)

	if err := csvio.WriteSnapshots(c.Writer, snapshots); err != nil {
		s.log.Error("writing snapshot response", zap.String("run_id", engine.RunID().String()), zap.Error(err))
	}
}
