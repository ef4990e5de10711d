package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/clearstream/ledger-replay/internal/models"
)

var header = []string{"client", "available", "held", "total", "locked"}

// WriteSnapshots renders snapshots as CSV in the order given, amounts fixed
// to four decimal places.
func WriteSnapshots(w io.Writer, snapshots []models.Snapshot) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing snapshot header: %w", err)
	}
	for _, snap := range snapshots {
		row := []string{
			strconv.FormatUint(uint64(snap.ClientID), 10),
			snap.Available.String(),
			snap.Held.String(),
			snap.Total.String(),
			strconv.FormatBool(snap.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing snapshot for client %d: %w", snap.ClientID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
