package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OfferKind string

const (
	KindFlashSale    OfferKind = "FLASH_SALE"
	KindSpecialOffer OfferKind = "SPECIAL_OFFER"
)

type OfferType string

const (
	OfferBuyXGetYFree     OfferType = "BUY_X_GET_Y_FREE"
	OfferBuyXFreeShipping OfferType = "BUY_X_FREE_SHIPPING"
	OfferBundleDiscount   OfferType = "BUNDLE_DISCOUNT"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

type OfferScope string

const (
	ScopeGlobal   OfferScope = "GLOBAL"
	ScopeCategory OfferScope = "CATEGORY"
	ScopeProduct  OfferScope = "PRODUCT"
)

type FlashSale struct {
	ID              string
	NameEn          string
	NameAr          string
	DescriptionEn   string
	DescriptionAr   string
	StartTime       time.Time
	EndTime         time.Time
	DisplayPriority int32
	IsActive        bool
	// TotalUsageLimit == 0 means uncapped
	TotalUsageLimit int64
	UsageCount      int64
	DiscountType    DiscountType
	DiscountValue   decimal.Decimal
	ProductIDs      []string
}

// ActiveAt reports whether the sale may be applied at the given instant:
// flag on, now inside [StartTime, EndTime), cap not yet exhausted.
func (f *FlashSale) ActiveAt(now time.Time) bool {
	if !f.IsActive {
		return false
	}
	if now.Before(f.StartTime) || !now.Before(f.EndTime) {
		return false
	}
	if f.TotalUsageLimit > 0 && f.UsageCount >= f.TotalUsageLimit {
		return false
	}
	return true
}

func (f *FlashSale) Covers(productID string) bool {
	for _, id := range f.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}

type SpecialOffer struct {
	ID              string
	OfferType       OfferType
	NameEn          string
	NameAr          string
	ButtonTextEn    string
	ButtonTextAr    string
	BuyQuantity     int
	FreeQuantity    int
	DiscountType    DiscountType
	DiscountValue   decimal.Decimal
	StartTime       time.Time
	EndTime         time.Time
	DisplayPriority int32
	IsActive        bool
	TotalUsageLimit int64
	UsageCount      int64
	// PerUserLimit == 0 means unlimited per user
	PerUserLimit int64
	Scope        OfferScope
	CategoryIDs  []string
	ProductIDs   []string
	// Combinable offers may stack on items already claimed by a better offer
	Combinable bool
}

func (o *SpecialOffer) ActiveAt(now time.Time) bool {
	if !o.IsActive {
		return false
	}
	if now.Before(o.StartTime) || !now.Before(o.EndTime) {
		return false
	}
	if o.TotalUsageLimit > 0 && o.UsageCount >= o.TotalUsageLimit {
		return false
	}
	return true
}

func (o *SpecialOffer) AppliesTo(item CartItem) bool {
	switch o.Scope {
	case ScopeGlobal:
		return true
	case ScopeCategory:
		for _, id := range o.CategoryIDs {
			if id == item.CategoryID {
				return true
			}
		}
	case ScopeProduct:
		for _, id := range o.ProductIDs {
			if id == item.ProductID {
				return true
			}
		}
	}
	return false
}

type CartItem struct {
	ProductID  string
	CategoryID string
	UnitPrice  decimal.Decimal
	Quantity   int
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type AppliedOffer struct {
	Kind         OfferKind
	OfferID      string
	OfferType    OfferType
	ProductIDs   []string
	Discount     decimal.Decimal
	FreeShipping bool
}

type EvaluationResult struct {
	Applied       []AppliedOffer
	ItemDiscounts map[string]decimal.Decimal
	TotalDiscount decimal.Decimal
	FreeShipping  bool
}

type OfferUsage struct {
	ID         string
	Kind       OfferKind
	OfferID    string
	OrderID    string
	UserID     string
	Discount   decimal.Decimal
	RecordedAt time.Time
}
