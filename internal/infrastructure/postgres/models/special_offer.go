package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type SpecialOfferModel struct {
	ID              string `gorm:"primaryKey"`
	OfferType       string `gorm:"index"`
	NameEn          string
	NameAr          string
	ButtonTextEn    string
	ButtonTextAr    string
	BuyQuantity     int
	FreeQuantity    int
	DiscountType    string
	DiscountValue   decimal.Decimal `gorm:"type:numeric(12,2)"`
	StartTime       time.Time       `gorm:"index"`
	EndTime         time.Time       `gorm:"index"`
	DisplayPriority int32
	IsActive        bool `gorm:"index"`
	TotalUsageLimit int64
	UsageCount      int64
	PerUserLimit    int64
	Scope           string
	CategoryIDs     pq.StringArray `gorm:"type:text[]"`
	ProductIDs      pq.StringArray `gorm:"type:text[]"`
	Combinable      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (SpecialOfferModel) TableName() string {
	return "special_offers"
}
