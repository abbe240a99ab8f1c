package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentIntentModel struct {
	ID            string `gorm:"primaryKey"`
	OrderID       string `gorm:"index"`
	Method        string `gorm:"index"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2)"`
	Currency      string
	Status        string `gorm:"index"`
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PaymentIntentModel) TableName() string {
	return "payment_intents"
}

type PaymentRefundModel struct {
	ID            string `gorm:"primaryKey"`
	IntentID      string `gorm:"index"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2)"`
	Reason        string
	ManualProcess bool
	CreatedAt     time.Time
}

func (PaymentRefundModel) TableName() string {
	return "payment_refunds"
}
