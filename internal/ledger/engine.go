// Package ledger implements the transaction replay engine: per-client
// accounts, their dispute lifecycle and the single-pass record loop that
// drives them.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clearstream/ledger-replay/internal/interfaces"
	"github.com/clearstream/ledger-replay/internal/models"
	"github.com/clearstream/ledger-replay/internal/models/events"
	"github.com/clearstream/ledger-replay/internal/money"
)

// RecordSource supplies decoded transaction records one at a time. Next
// returns io.EOF when the stream is exhausted; any other error is fatal to
// the run. Sources are expected to deal with recoverable framing problems
// (bad rows) themselves.
type RecordSource interface {
	Next(ctx context.Context) (models.Transaction, error)
}

// Stats counts what happened to the records of one run.
type Stats struct {
	Processed uint64 // applied to an account
	Rejected  uint64 // failed validation or an operation precondition
	Skipped   uint64 // addressed to a locked account
}

// Engine replays a record stream against a population of accounts. It is the
// core service of the reconciler: one engine per run, no state shared across
// runs. Records for the same client are applied strictly in arrival order;
// a rejected record never aborts the stream.
type Engine struct {
	runID     uuid.UUID
	log       *zap.Logger
	publisher interfaces.EventPublisher // optional, may be nil
	accounts  map[uint16]*Account
	stats     Stats
}

// NewEngine creates an engine for a single run. publisher may be nil when no
// event sink is configured.
func NewEngine(log *zap.Logger, publisher interfaces.EventPublisher) *Engine {
	return &Engine{
		runID:     uuid.New(),
		log:       log,
		publisher: publisher,
		accounts:  make(map[uint16]*Account),
	}
}

func (e *Engine) RunID() uuid.UUID { return e.runID }

func (e *Engine) Stats() Stats { return e.stats }

// Process consumes the source until io.EOF, applying each record to its
// client's account. Per-record failures are logged and counted; only a
// source failure ends the run early.
func (e *Engine) Process(ctx context.Context, src RecordSource) error {
	for {
		rec, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading transaction stream: %w", err)
		}
		e.apply(rec)
	}
}

// validated is a record whose ids and amount passed semantic validation.
type validated struct {
	client uint16
	tx     uint32
	amount money.Amount // zero unless the kind carries an amount
}

func (e *Engine) validate(rec models.Transaction) (validated, error) {
	if rec.Client < 1 || rec.Client > math.MaxUint16 {
		return validated{}, ErrInvalidClientID
	}
	if rec.Tx < 1 || rec.Tx > math.MaxUint32 {
		return validated{}, ErrInvalidTransactionID
	}
	v := validated{client: uint16(rec.Client), tx: uint32(rec.Tx)}

	// Dispute, resolve and chargeback never consult the amount column.
	if !rec.Kind.HasAmount() {
		return v, nil
	}
	if rec.Amount == "" {
		return validated{}, ErrMissingAmount
	}
	amount, err := money.Parse(rec.Amount)
	if err != nil {
		return validated{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if !amount.IsPositive() {
		return validated{}, ErrInvalidAmount
	}
	v.amount = amount
	return v, nil
}

func (e *Engine) apply(rec models.Transaction) {
	v, err := e.validate(rec)
	if err != nil {
		e.stats.Rejected++
		e.log.Warn("rejected record",
			zap.String("run_id", e.runID.String()),
			zap.Stringer("kind", rec.Kind),
			zap.Int64("client", rec.Client),
			zap.Int64("tx", rec.Tx),
			zap.Error(err))
		return
	}

	account, ok := e.accounts[v.client]
	if !ok {
		account = NewAccount(v.client)
		e.accounts[v.client] = account
	}

	switch rec.Kind {
	case models.KindDeposit:
		err = account.Deposit(v.tx, v.amount)
	case models.KindWithdrawal:
		err = account.Withdraw(v.amount)
	case models.KindDispute:
		err = account.Dispute(v.tx)
	case models.KindResolve:
		err = account.Resolve(v.tx)
	case models.KindChargeback:
		var amount money.Amount
		amount, err = account.Chargeback(v.tx)
		if err == nil {
			e.publishFrozen(v.client, v.tx, amount)
		}
	default:
		err = fmt.Errorf("unhandled transaction kind %v", rec.Kind)
	}

	switch {
	case err == nil:
		e.stats.Processed++
	case errors.Is(err, ErrAccountLocked):
		// Account-level freeze: the record is consumed and dropped, it is
		// not a malformed input.
		e.stats.Skipped++
		e.log.Warn("skipping record for locked account",
			zap.String("run_id", e.runID.String()),
			zap.Stringer("kind", rec.Kind),
			zap.Uint16("client", v.client),
			zap.Uint32("tx", v.tx))
	default:
		e.stats.Rejected++
		e.log.Warn("rejected record",
			zap.String("run_id", e.runID.String()),
			zap.Stringer("kind", rec.Kind),
			zap.Uint16("client", v.client),
			zap.Uint32("tx", v.tx),
			zap.Error(err))
	}
}

func (e *Engine) publishFrozen(client uint16, tx uint32, amount money.Amount) {
	if e.publisher == nil {
		return
	}
	event := events.AccountFrozen{
		RunID:      e.runID.String(),
		ClientID:   client,
		Tx:         tx,
		Amount:     amount,
		OccurredAt: time.Now().UTC(),
	}
	if err := e.publisher.Publish(events.TopicAccountFrozen, event); err != nil {
		e.log.Error("publishing account frozen event",
			zap.String("run_id", e.runID.String()),
			zap.Uint16("client", client),
			zap.Error(err))
	}
}

// Snapshots returns one snapshot per client seen during the run, in
// ascending client id order so output is deterministic for a given input.
func (e *Engine) Snapshots() []models.Snapshot {
	snapshots := make([]models.Snapshot, 0, len(e.accounts))
	for _, account := range e.accounts {
		snapshots = append(snapshots, account.Snapshot())
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ClientID < snapshots[j].ClientID
	})
	return snapshots
}
