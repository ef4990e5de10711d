package interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/clearstream/ledger-replay/internal/models"
)

// SnapshotStore persists the final snapshots of one engine run. Storage is a
// sink only: the engine never reads state back, each run starts empty.
type SnapshotStore interface {
	SaveSnapshots(ctx context.Context, runID uuid.UUID, snapshots []models.Snapshot) error
}
