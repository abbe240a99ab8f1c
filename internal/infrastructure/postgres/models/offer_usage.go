package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OfferUsageModel is the audit row behind at-most-once recording: one row per
// (kind, offer, order), enforced by the unique index.
type OfferUsageModel struct {
	ID         string          `gorm:"primaryKey"`
	Kind       string          `gorm:"uniqueIndex:idx_offer_usage_once"`
	OfferID    string          `gorm:"uniqueIndex:idx_offer_usage_once;index"`
	OrderID    string          `gorm:"uniqueIndex:idx_offer_usage_once;index"`
	UserID     string          `gorm:"index"`
	Discount   decimal.Decimal `gorm:"type:numeric(12,2)"`
	RecordedAt time.Time
}

func (OfferUsageModel) TableName() string {
	return "offer_usages"
}
