package paymentdto

import "github.com/shopspring/decimal"

type CreatePaymentInput struct {
	OrderID  string            `json:"order_id"`
	UserID   string            `json:"user_id"`
	Method   string            `json:"method"`
	Amount   decimal.Decimal   `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type CapturePaymentInput struct {
	IntentID string `json:"intent_id"`
	// Amount captures partially when set; nil captures the full intent amount
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

type RefundPaymentInput struct {
	IntentID string          `json:"intent_id"`
	Amount   decimal.Decimal `json:"amount"`
	Reason   string          `json:"reason,omitempty"`
}

type WebhookInput struct {
	Method    string
	Payload   []byte
	Signature string
	Headers   map[string]string
}
