package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // postgres driver

	"github.com/clearstream/ledger-replay/internal/interfaces"
	"github.com/clearstream/ledger-replay/internal/models"
)

// SnapshotStore persists run results in the account_snapshots table:
//
//	account_snapshots(run_id uuid, client_id int, available numeric,
//	                  held numeric, total numeric, locked bool,
//	                  created_at timestamptz)
type SnapshotStore struct {
	db *sql.DB
}

// Open connects to postgres and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return db, nil
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// SaveSnapshots inserts all snapshots of one run in a single transaction so
// a run is either fully persisted or not at all.
func (s *SnapshotStore) SaveSnapshots(ctx context.Context, runID uuid.UUID, snapshots []models.Snapshot) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	const query = `INSERT INTO account_snapshots (run_id, client_id, available, held, total, locked, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now().UTC()
	for _, snap := range snapshots {
		_, err = dbTx.ExecContext(ctx, query,
			runID.String(),
			int64(snap.ClientID),
			snap.Available.Decimal(),
			snap.Held.Decimal(),
			snap.Total.Decimal(),
			snap.Locked,
			now,
		)
		if err != nil {
			return fmt.Errorf("inserting snapshot for client %d: %w", snap.ClientID, err)
		}
	}

	err = dbTx.Commit()
	return err
}

// Compile-time check: SnapshotStore implements the store interface.
var _ interfaces.SnapshotStore = (*SnapshotStore)(nil)
