package models

import (
	"time"

	"github.com/uptrace/bun"
)

type TransactionType string

const (
	TxTypeSend    TransactionType = "send"
	TxTypeSwap    TransactionType = "swap"
	TxTypeStake   TransactionType = "stake"
	TxTypeUnstake TransactionType = "unstake"
	TxTypeClaim   TransactionType = "claim"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TxTypeSend, TxTypeSwap, TxTypeStake, TxTypeUnstake, TxTypeClaim:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TxStatusPending   TransactionStatus = "pending"
	TxStatusConfirmed TransactionStatus = "confirmed"
	TxStatusFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) Terminal() bool {
	return s == TxStatusConfirmed || s == TxStatusFailed
}

type Transaction struct {
	bun.BaseModel `bun:"table:transactions"`
	Signature     string            `bun:"signature,pk" json:"signature"`
	WalletAddress string            `bun:"wallet_address" json:"wallet_address"`
	Type          TransactionType   `bun:"type" json:"type"`
	Amount        float64           `bun:"amount" json:"amount"`
	Token         string            `bun:"token" json:"token"`
	Status        TransactionStatus `bun:"status" json:"status"`
	FromAddress   *string           `bun:"from_address" json:"from_address,omitempty"`
	ToAddress     *string           `bun:"to_address" json:"to_address,omitempty"`
	Fee           *float64          `bun:"fee" json:"fee,omitempty"`
	Slot          *int64            `bun:"slot" json:"slot,omitempty"`
	FailureReason *string           `bun:"failure_reason" json:"failure_reason,omitempty"`
	CreatedAt     time.Time         `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time         `bun:"updated_at" json:"updated_at"`

	// filled on read for API responses, never stored
	ExplorerURL string `bun:"-" json:"explorer_url,omitempty"`
}

// ChainStatus is the confirmation detail reported by the explorer for a signature.
type ChainStatus struct {
	Status TransactionStatus `json:"status"`
	Slot   *int64            `json:"slot,omitempty"`
	Fee    *float64          `json:"fee,omitempty"`
}

// TransactionEvent is raised by the tracker whenever a record is created or its
// status changes. Previous is empty for the initial pending event.
type TransactionEvent struct {
	Transaction *Transaction
	Previous    TransactionStatus
}
