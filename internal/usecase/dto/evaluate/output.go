package evaluatedto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AppliedOfferOutput struct {
	Kind         string          `json:"kind"`
	OfferID      string          `json:"offer_id"`
	OfferType    string          `json:"offer_type,omitempty"`
	ProductIDs   []string        `json:"product_ids"`
	Discount     decimal.Decimal `json:"discount"`
	FreeShipping bool            `json:"free_shipping"`
}

type EvaluateOutput struct {
	Applied       []AppliedOfferOutput       `json:"applied"`
	ItemDiscounts map[string]decimal.Decimal `json:"item_discounts"`
	TotalDiscount decimal.Decimal            `json:"total_discount"`
	FreeShipping  bool                       `json:"free_shipping"`
}

type ActiveOfferOutput struct {
	Kind            string    `json:"kind"`
	ID              string    `json:"id"`
	OfferType       string    `json:"offer_type,omitempty"`
	NameEn          string    `json:"name_en"`
	NameAr          string    `json:"name_ar"`
	ButtonTextEn    string    `json:"button_text_en,omitempty"`
	ButtonTextAr    string    `json:"button_text_ar,omitempty"`
	DisplayPriority int32     `json:"display_priority"`
	EndTime         time.Time `json:"end_time"`
}

type ActiveOffersOutput struct {
	Offers []ActiveOfferOutput `json:"offers"`
}
