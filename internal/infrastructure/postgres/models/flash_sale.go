package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type FlashSaleModel struct {
	ID              string `gorm:"primaryKey"`
	NameEn          string
	NameAr          string
	DescriptionEn   string
	DescriptionAr   string
	StartTime       time.Time `gorm:"index"`
	EndTime         time.Time `gorm:"index"`
	DisplayPriority int32
	IsActive        bool `gorm:"index"`
	TotalUsageLimit int64
	UsageCount      int64
	DiscountType    string
	DiscountValue   decimal.Decimal `gorm:"type:numeric(12,2)"`
	ProductIDs      pq.StringArray  `gorm:"type:text[]"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (FlashSaleModel) TableName() string {
	return "flash_sales"
}
