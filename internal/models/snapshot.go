package models

import "github.com/clearstream/ledger-replay/internal/money"

// Snapshot is the final state of one account at end of stream.
type Snapshot struct {
	ClientID  uint16       `json:"client"`
	Available money.Amount `json:"available"`
	Held      money.Amount `json:"held"`
	Total     money.Amount `json:"total"` // always available + held
	Locked    bool         `json:"locked"`
}
