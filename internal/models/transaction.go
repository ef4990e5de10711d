package models

import "fmt"

// Kind is the closed set of transaction types the engine understands.
type Kind uint8

const (
	KindDeposit Kind = iota
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

// ParseKind maps the textual type column onto a Kind. Anything outside the
// five known types is a decode failure, never a silent default.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "deposit":
		return KindDeposit, nil
	case "withdrawal":
		return KindWithdrawal, nil
	case "dispute":
		return KindDispute, nil
	case "resolve":
		return KindResolve, nil
	case "chargeback":
		return KindChargeback, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %q", s)
	}
}

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// HasAmount reports whether records of this kind carry an amount column.
// Dispute, resolve and chargeback reference an existing transaction instead.
func (k Kind) HasAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Transaction is one field-decoded input record, before semantic validation.
// Client and Tx are kept wide so out-of-range ids survive decoding and can be
// rejected (and logged) by the engine rather than mangled upstream. Amount is
// the raw column text; empty means the column was absent.
type Transaction struct {
	Kind   Kind
	Client int64
	Tx     int64
	Amount string
}
