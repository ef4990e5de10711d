package ledger

import (
	"github.com/clearstream/ledger-replay/internal/models"
	"github.com/clearstream/ledger-replay/internal/money"
)

type depositStatus uint8

const (
	statusNormal depositStatus = iota
	statusDisputed
	statusReversed // charged back; the id can never be disputed or reused
)

// depositEntry is the only transaction history an account retains.
// Withdrawals are applied and discarded, they can never be revisited.
type depositEntry struct {
	amount money.Amount
	status depositStatus
}

// Account is the per-client balance state plus its deposit ledger. All
// mutation goes through the five operation methods; every method either
// applies its full effect or returns an error and changes nothing.
//
// Invariants: Available and Held never go negative, and once Locked is set
// by a chargeback no operation mutates balances again.
type Account struct {
	ID        uint16
	Available money.Amount
	Held      money.Amount
	Locked    bool

	deposits map[uint32]*depositEntry
}

func NewAccount(id uint16) *Account {
	return &Account{
		ID:       id,
		deposits: make(map[uint32]*depositEntry),
	}
}

// Total is derived, never stored.
func (a *Account) Total() money.Amount {
	return a.Available.Add(a.Held)
}

// Deposit credits available funds and records the transaction as disputable.
// A transaction id already present in the deposit ledger, including one left
// behind by a chargeback, is rejected rather than double-applied.
func (a *Account) Deposit(tx uint32, amount money.Amount) error {
	if a.Locked {
		return ErrAccountLocked
	}
	if _, ok := a.deposits[tx]; ok {
		return ErrDuplicateTransaction
	}
	a.Available = a.Available.Add(amount)
	a.deposits[tx] = &depositEntry{amount: amount}
	return nil
}

// Withdraw debits available funds. Withdrawals keep no history.
func (a *Account) Withdraw(amount money.Amount) error {
	if a.Locked {
		return ErrAccountLocked
	}
	if a.Available.LessThan(amount) {
		return ErrInsufficientAvailable
	}
	a.Available = a.Available.Sub(amount)
	return nil
}

// Dispute moves a previously deposited amount from available to held. The
// referenced deposit must exist and not be under dispute already, and the
// available balance must cover it so that Available stays non-negative.
func (a *Account) Dispute(tx uint32) error {
	if a.Locked {
		return ErrAccountLocked
	}
	entry, ok := a.deposits[tx]
	if !ok {
		return ErrUnknownTransaction
	}
	switch entry.status {
	case statusDisputed:
		return ErrAlreadyDisputed
	case statusReversed:
		return ErrTransactionReversed
	}
	if a.Available.LessThan(entry.amount) {
		return ErrInsufficientAvailable
	}
	a.Available = a.Available.Sub(entry.amount)
	a.Held = a.Held.Add(entry.amount)
	entry.status = statusDisputed
	return nil
}

// Resolve reverses a dispute, returning the held amount to available. The
// deposit goes back to normal and may be disputed again later.
func (a *Account) Resolve(tx uint32) error {
	if a.Locked {
		return ErrAccountLocked
	}
	entry, ok := a.deposits[tx]
	if !ok {
		return ErrUnknownTransaction
	}
	if entry.status != statusDisputed {
		return ErrNotDisputed
	}
	if a.Held.LessThan(entry.amount) {
		return ErrInsufficientHeld
	}
	a.Held = a.Held.Sub(entry.amount)
	a.Available = a.Available.Add(entry.amount)
	entry.status = statusNormal
	return nil
}

// Chargeback finalizes a dispute against the client: the held amount is
// withdrawn permanently and the account is frozen. The entry stays in the
// deposit ledger as reversed so its id is invalid from here on.
func (a *Account) Chargeback(tx uint32) (money.Amount, error) {
	if a.Locked {
		return money.Amount{}, ErrAccountLocked
	}
	entry, ok := a.deposits[tx]
	if !ok {
		return money.Amount{}, ErrUnknownTransaction
	}
	if entry.status != statusDisputed {
		return money.Amount{}, ErrNotDisputed
	}
	if a.Held.LessThan(entry.amount) {
		return money.Amount{}, ErrInsufficientHeld
	}
	a.Held = a.Held.Sub(entry.amount)
	entry.status = statusReversed
	a.Locked = true
	return entry.amount, nil
}

// Snapshot captures the account's current state for emission.
func (a *Account) Snapshot() models.Snapshot {
	return models.Snapshot{
		ClientID:  a.ID,
		Available: a.Available,
		Held:      a.Held,
		Total:     a.Total(),
		Locked:    a.Locked,
	}
}
