package usagedto

import "github.com/shopspring/decimal"

type AppliedUsageInput struct {
	Kind     string          `json:"kind"`
	OfferID  string          `json:"offer_id"`
	Discount decimal.Decimal `json:"discount"`
}

type RecordUsageInput struct {
	OrderID string              `json:"order_id"`
	UserID  string              `json:"user_id"`
	Applied []AppliedUsageInput `json:"applied"`
}
