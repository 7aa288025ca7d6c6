package models

import (
	"gorm.io/gorm"
)

// TransactionKind distinguishes pay-ins from peer transfers
type TransactionKind string

const (
	TransactionKindPayment  TransactionKind = "payment"
	TransactionKindTransfer TransactionKind = "transfer"
)

// TransactionCodeType tells which gateway code a Transaction row carries
type TransactionCodeType string

const (
	CodeTypeAccess   TransactionCodeType = "access_code"
	CodeTypeTransfer TransactionCodeType = "transfer_code"
)

// Gateway-reported statuses that close a transaction. Once one of these is
// recorded, no later confirmation may touch the wallet balance again.
const (
	StatusSuccess  = "success"
	StatusFailed   = "failed"
	StatusReversed = "reversed"
)

// TerminalStatuses is used in conditional updates guarding the credit path.
var TerminalStatuses = []string{StatusSuccess, StatusFailed, StatusReversed}

// Transaction records one gateway-side operation. Reference is caller
// generated, globally unique, and the only correlation key between this row
// and the gateway operation.
type Transaction struct {
	gorm.Model
	OwnerID              uint                `gorm:"not null;index" json:"ownerId"`
	Kind                 TransactionKind     `gorm:"type:varchar(20);not null" json:"kind"`
	Currency             string              `gorm:"size:3;default:'NGN'" json:"currency"`
	Amount               int64               `gorm:"not null" json:"amount"` // minor units
	RecipientAccountNo   string              `gorm:"size:10" json:"recipientAccountNo,omitempty"`
	RecipientBankName    string              `json:"recipientBankName,omitempty"`
	RecipientAccountName string              `json:"recipientAccountName,omitempty"`
	RecipientWalletID    string              `json:"recipientWalletId,omitempty"`
	Description          string              `json:"description,omitempty"`
	Code                 string              `json:"code"` // access code or transfer code from the gateway
	CodeType             TransactionCodeType `gorm:"type:varchar(20)" json:"codeType"`
	Reference            string              `gorm:"column:transaction_reference;uniqueIndex;not null" json:"reference"`
	Status               string              `json:"status"` // empty until a confirmation path reports one
}

// IsTerminal reports whether the transaction has reached a closing status.
func (t *Transaction) IsTerminal() bool {
	switch t.Status {
	case StatusSuccess, StatusFailed, StatusReversed:
		return true
	}
	return false
}
