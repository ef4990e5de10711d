package ledger

import "errors"

// Domain errors for a single record. All of them are non-fatal: the engine
// logs the rejection and moves on to the next record. Callers match with
// errors.Is.
var (
	ErrAccountLocked         = errors.New("account is locked")
	ErrInsufficientAvailable = errors.New("insufficient available funds")
	ErrInsufficientHeld      = errors.New("insufficient held funds")
	ErrDuplicateTransaction  = errors.New("transaction id already used")
	ErrUnknownTransaction    = errors.New("transaction is unknown")
	ErrAlreadyDisputed       = errors.New("transaction is already in dispute")
	ErrNotDisputed           = errors.New("transaction is not under dispute")
	ErrTransactionReversed   = errors.New("transaction was charged back")

	ErrInvalidClientID      = errors.New("invalid client id")
	ErrInvalidTransactionID = errors.New("invalid transaction id")
	ErrMissingAmount        = errors.New("missing amount")
	ErrInvalidAmount        = errors.New("invalid amount")
)
