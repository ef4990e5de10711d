package csvio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearstream/ledger-replay/internal/models"
	"github.com/clearstream/ledger-replay/internal/money"
)

func TestWriteSnapshotsFormatsFourDecimalPlaces(t *testing.T) {
	snapshots := []models.Snapshot{
		{
			ClientID:  1,
			Available: money.MustParse("2.5"),
			Held:      money.MustParse("0"),
			Total:     money.MustParse("2.5"),
			Locked:    false,
		},
		{
			ClientID:  2,
			Available: money.MustParse("0"),
			Held:      money.MustParse("0"),
			Total:     money.MustParse("0"),
			Locked:    true,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshots(&buf, snapshots))

	want := "client,available,held,total,locked\n" +
		"1,2.5000,0.0000,2.5000,false\n" +
		"2,0.0000,0.0000,0.0000,true\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteSnapshotsEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshots(&buf, nil))
	assert.Equal(t, "client,available,held,total,locked\n", buf.String())
}
