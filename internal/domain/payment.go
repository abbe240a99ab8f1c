package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentCompleted     PaymentStatus = "COMPLETED"
	PaymentFailed        PaymentStatus = "FAILED"
	PaymentRefundPending PaymentStatus = "REFUND_PENDING"
	PaymentRefunded      PaymentStatus = "REFUNDED"
)

// PaymentIntent is owned by the gateway that issued it; the order pipeline
// holds the ID and routes every state change back through that gateway.
type PaymentIntent struct {
	ID            string
	OrderID       string
	Method        string
	Amount        decimal.Decimal
	Currency      string
	Status        PaymentStatus
	FailureReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PaymentRefund struct {
	ID            string
	IntentID      string
	Amount        decimal.Decimal
	Reason        string
	ManualProcess bool
	CreatedAt     time.Time
}
