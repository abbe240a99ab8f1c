package paymentdto

import "github.com/shopspring/decimal"

type PaymentOutput struct {
	Success               bool            `json:"success"`
	IntentID              string          `json:"intent_id,omitempty"`
	OrderID               string          `json:"order_id,omitempty"`
	Method                string          `json:"method,omitempty"`
	Amount                decimal.Decimal `json:"amount"`
	Currency              string          `json:"currency,omitempty"`
	Status                string          `json:"status,omitempty"`
	Code                  string          `json:"code,omitempty"`
	Message               string          `json:"message,omitempty"`
	Retryable             bool            `json:"retryable,omitempty"`
	ManualProcessRequired bool            `json:"manual_process_required,omitempty"`
}
