package csvio

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/clearstream/ledger-replay/internal/models"
)

func readAll(t *testing.T, input string) []models.Transaction {
	t.Helper()
	reader := NewReader(strings.NewReader(input), zap.NewNop())

	var records []models.Transaction
	for {
		rec, err := reader.Next(context.Background())
		if err == io.EOF {
			return records
		}
		require.NoError(t, err)
		records = append(records, rec)
	}
}

func TestReaderDecodesAllKinds(t *testing.T) {
	input := strings.Join([]string{
		"type,client,tx,amount",
		"deposit,1,1,2.5",
		"withdrawal,1,2,1.0",
		"dispute,1,1,",
		"resolve,1,1,",
		"chargeback,1,1,",
	}, "\n") + "\n"

	records := readAll(t, input)
	require.Len(t, records, 5)

	assert.Equal(t, models.Transaction{Kind: models.KindDeposit, Client: 1, Tx: 1, Amount: "2.5"}, records[0])
	assert.Equal(t, models.KindWithdrawal, records[1].Kind)
	assert.Equal(t, models.KindDispute, records[2].Kind)
	assert.Equal(t, "", records[2].Amount)
	assert.Equal(t, models.KindResolve, records[3].Kind)
	assert.Equal(t, models.KindChargeback, records[4].Kind)
}

func TestReaderTrimsWhitespaceAndIgnoresCase(t *testing.T) {
	records := readAll(t, "type,client,tx,amount\n Deposit , 2 , 7 , 1.5 \n")
	require.Len(t, records, 1)
	assert.Equal(t, models.Transaction{Kind: models.KindDeposit, Client: 2, Tx: 7, Amount: "1.5"}, records[0])
}

func TestReaderSkipsUndecodableRows(t *testing.T) {
	input := strings.Join([]string{
		"type,client,tx,amount",
		"teleport,1,1,2.5",     // unknown kind
		"deposit,abc,2,1.0",    // non-integer client
		"deposit,1,xyz,1.0",    // non-integer tx
		"deposit,1",            // too few columns
		"deposit,1,3,1.0,oops", // too many columns
		"deposit,1,4,2.0",
	}, "\n") + "\n"

	records := readAll(t, input)
	require.Len(t, records, 1)
	assert.Equal(t, int64(4), records[0].Tx)
}

func TestReaderWithoutHeaderRow(t *testing.T) {
	records := readAll(t, "deposit,1,1,2.5\n")
	require.Len(t, records, 1)
	assert.Equal(t, models.KindDeposit, records[0].Kind)
}

func TestReaderMissingAmountColumnPassesThroughEmpty(t *testing.T) {
	// Amount validation is the engine's job; the reader only reports that
	// the column was absent.
	records := readAll(t, "type,client,tx,amount\ndeposit,1,1,\n")
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Amount)
}

func TestReaderEmptyInput(t *testing.T) {
	assert.Empty(t, readAll(t, ""))
	assert.Empty(t, readAll(t, "type,client,tx,amount\n"))
}

func TestReaderHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewReader(strings.NewReader("deposit,1,1,2.5\n"), zap.NewNop())
	_, err := reader.Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
