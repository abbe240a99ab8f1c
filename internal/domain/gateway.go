package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type GatewayCode string

const (
	CodeValidation GatewayCode = "VALIDATION_ERROR"
	CodeNotFound   GatewayCode = "NOT_FOUND"
	CodeExternal   GatewayCode = "EXTERNAL_GATEWAY_ERROR"
	CodeTimeout    GatewayCode = "GATEWAY_TIMEOUT"
)

// GatewayResult is the only thing a gateway operation returns; gateways never
// panic or leak errors across the boundary. Callers branch on Success and the
// machine-readable Code.
type GatewayResult struct {
	Success               bool
	IntentID              string
	Status                PaymentStatus
	Code                  GatewayCode
	Message               string
	Retryable             bool
	ManualProcessRequired bool
}

func GatewayOK(intentID string, status PaymentStatus) GatewayResult {
	return GatewayResult{Success: true, IntentID: intentID, Status: status}
}

func GatewayFail(code GatewayCode, message string) GatewayResult {
	return GatewayResult{Success: false, Code: code, Message: message}
}

type OrderContext struct {
	OrderID  string
	UserID   string
	Metadata map[string]string
}

// PaymentGateway is implemented once per payment method. Every method, online
// or offline, satisfies the full set so the order pipeline never branches on
// method-specific logic. Offline methods implement webhook handling as a
// trivially successful no-op.
type PaymentGateway interface {
	Method() string
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency string, order OrderContext) GatewayResult
	CapturePayment(ctx context.Context, intentID string, amount *decimal.Decimal) GatewayResult
	RefundPayment(ctx context.Context, transactionID string, amount decimal.Decimal, reason string) GatewayResult
	GetPaymentStatus(ctx context.Context, intentID string) GatewayResult
	HandleWebhook(ctx context.Context, payload []byte, headers map[string]string) GatewayResult
	VerifyWebhookSignature(payload []byte, signature string, headers map[string]string) bool
	// Per-currency bounds; unknown currency falls back to the gateway default.
	MinimumAmount(currency string) decimal.Decimal
	MaximumAmount(currency string) decimal.Decimal
}
