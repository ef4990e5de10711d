package events

import (
	"time"

	"github.com/clearstream/ledger-replay/internal/money"
)

// TopicAccountFrozen is the topic account freeze notifications go out on.
const TopicAccountFrozen = "account_frozen"

// AccountFrozen is published when a chargeback locks an account.
type AccountFrozen struct {
	RunID      string       `json:"run_id"`
	ClientID   uint16       `json:"client_id"`
	Tx         uint32       `json:"tx"`
	Amount     money.Amount `json:"amount"`
	OccurredAt time.Time    `json:"occurred_at"`
}
