package models

import (
	"gorm.io/gorm"
)

// Wallet holds a single balance per user in minor currency units (kobo).
// Balance is mutated only by the reconciliation flow, on a confirmed inbound
// transfer event, at most once per transaction reference.
type Wallet struct {
	gorm.Model
	OwnerID       uint   `gorm:"uniqueIndex;not null" json:"ownerId"`
	Balance       int64  `gorm:"not null;default:0" json:"balance"`
	Currency      string `gorm:"size:3;default:'NGN'" json:"currency"`
	AccountNumber string `gorm:"size:10" json:"accountNumber"`
	BankCode      string `json:"bankCode"`
	RecipientCode string `json:"recipientCode"` // set once a transfer recipient is created on the gateway
	CustomerCode  string `json:"customerCode"`  // set once a gateway customer is created
	IsDeleted     bool   `gorm:"default:false" json:"-"`
}
