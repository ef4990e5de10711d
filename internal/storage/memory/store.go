package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/clearstream/ledger-replay/internal/interfaces"
	"github.com/clearstream/ledger-replay/internal/models"
)

// SnapshotStore is an in-memory implementation of interfaces.SnapshotStore,
// used in tests and as the default sink when no database is configured.
// Safe for concurrent use.
type SnapshotStore struct {
	mu   sync.Mutex
	runs map[uuid.UUID][]models.Snapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		runs: make(map[uuid.UUID][]models.Snapshot),
	}
}

// SaveSnapshots stores a copy of the snapshots under the run id. Saving the
// same run id again replaces the previous set.
func (s *SnapshotStore) SaveSnapshots(_ context.Context, runID uuid.UUID, snapshots []models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]models.Snapshot, len(snapshots))
	copy(copied, snapshots)
	s.runs[runID] = copied
	return nil
}

// SnapshotsForRun returns a copy of the snapshots saved for one run, or nil
// if the run is unknown.
func (s *SnapshotStore) SnapshotsForRun(runID uuid.UUID) []models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, ok := s.runs[runID]
	if !ok {
		return nil
	}
	copied := make([]models.Snapshot, len(saved))
	copy(copied, saved)
	return copied
}

// Compile-time check: SnapshotStore implements the store interface.
var _ interfaces.SnapshotStore = (*SnapshotStore)(nil)
