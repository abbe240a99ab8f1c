package cod

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/karimfayez/souq-promo-service/internal/domain"
	"github.com/shopspring/decimal"
)

const Method = "cash_on_delivery"

const defaultCurrency = "EGP"

type amountBounds struct {
	min decimal.Decimal
	max decimal.Decimal
}

// Collection limits per currency; the courier will not carry change below or
// cash above these. Unknown currencies use the EGP bounds.
var bounds = map[string]amountBounds{
	"EGP": {min: decimal.NewFromInt(50), max: decimal.NewFromInt(10000)},
	"SAR": {min: decimal.NewFromInt(10), max: decimal.NewFromInt(2000)},
	"AED": {min: decimal.NewFromInt(10), max: decimal.NewFromInt(2000)},
}

// Gateway settles orders in cash at the door. Captures and refunds are pure
// status transitions; nothing here ever calls out to a payment processor.
type Gateway struct {
	intents domain.PaymentIntentRepository
	newID   func() string
}

func New(intents domain.PaymentIntentRepository) (*Gateway, error) {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	return &Gateway{intents: intents, newID: idGenerator}, nil
}

func (g *Gateway) Method() string {
	return Method
}

func (g *Gateway) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency string, order domain.OrderContext) domain.GatewayResult {
	min := g.MinimumAmount(currency)
	max := g.MaximumAmount(currency)
	if amount.LessThan(min) {
		return domain.GatewayFail(domain.CodeValidation,
			fmt.Sprintf("amount %s is below the %s %s minimum for cash on delivery", amount, min, currency))
	}
	if amount.GreaterThan(max) {
		return domain.GatewayFail(domain.CodeValidation,
			fmt.Sprintf("amount %s exceeds the %s %s maximum for cash on delivery", amount, max, currency))
	}

	now := time.Now().UTC()
	intent := &domain.PaymentIntent{
		ID:        "cod_" + g.newID(),
		OrderID:   order.OrderID,
		Method:    Method,
		Amount:    amount,
		Currency:  currency,
		Status:    domain.PaymentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := g.intents.SaveIntent(ctx, intent); err != nil {
		result := domain.GatewayFail(domain.CodeExternal, err.Error())
		result.Retryable = true
		return result
	}

	return domain.GatewayOK(intent.ID, domain.PaymentPending)
}

// CapturePayment marks the cash as collected. Cash is collected in full: a
// partial capture amount is rejected.
func (g *Gateway) CapturePayment(ctx context.Context, intentID string, amount *decimal.Decimal) domain.GatewayResult {
	intent, err := g.intents.GetIntentByID(ctx, intentID)
	if errors.Is(err, domain.ErrIntentNotFound) {
		return domain.GatewayFail(domain.CodeNotFound, "payment intent not found")
	}
	if err != nil {
		result := domain.GatewayFail(domain.CodeExternal, err.Error())
		result.Retryable = true
		return result
	}

	if amount != nil && !amount.Equal(intent.Amount) {
		return domain.GatewayFail(domain.CodeValidation, "cash on delivery does not support partial capture")
	}

	if err := g.intents.TransitionStatus(ctx, intentID, domain.PaymentPending, domain.PaymentCompleted, ""); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return domain.GatewayFail(domain.CodeValidation,
				fmt.Sprintf("intent is %s, expected %s", intent.Status, domain.PaymentPending))
		}
		result := domain.GatewayFail(domain.CodeExternal, err.Error())
		result.Retryable = true
		return result
	}

	return domain.GatewayOK(intentID, domain.PaymentCompleted)
}

// RefundPayment queues a manual cash refund; support settles it by hand.
func (g *Gateway) RefundPayment(ctx context.Context, transactionID string, amount decimal.Decimal, reason string) domain.GatewayResult {
	intent, err := g.intents.GetIntentByID(ctx, transactionID)
	if errors.Is(err, domain.ErrIntentNotFound) {
		return domain.GatewayFail(domain.CodeNotFound, "payment intent not found")
	}
	if err != nil {
		result := domain.GatewayFail(domain.CodeExternal, err.Error())
		result.Retryable = true
		return result
	}

	if !amount.IsPositive() || amount.GreaterThan(intent.Amount) {
		return domain.GatewayFail(domain.CodeValidation, "refund amount must be positive and within the captured amount")
	}

	if err := g.intents.TransitionStatus(ctx, transactionID, domain.PaymentCompleted, domain.PaymentRefundPending, reason); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return domain.GatewayFail(domain.CodeValidation,
				fmt.Sprintf("intent is %s, expected %s", intent.Status, domain.PaymentCompleted))
		}
		result := domain.GatewayFail(domain.CodeExternal, err.Error())
		result.Retryable = true
		return result
	}

	refund := &domain.PaymentRefund{
		ID:            "codr_" + g.newID(),
		IntentID:      transactionID,
		Amount:        amount,
		Reason:        reason,
		ManualProcess: true,
		CreatedAt:     time.Now().UTC(),
	}
	if err := g.intents.SaveRefund(ctx, refund); err != nil {
		result := domain.GatewayFail(domain.CodeExternal, err.Error())
		result.Retryable = true
		return result
	}

	result := domain.GatewayOK(transactionID, domain.PaymentRefundPending)
	result.ManualProcessRequired = true
	return result
}

func (g *Gateway) GetPaymentStatus(ctx context.Context, intentID string) domain.GatewayResult {
	intent, err := g.intents.GetIntentByID(ctx, intentID)
	if errors.Is(err, domain.ErrIntentNotFound) {
		return domain.GatewayFail(domain.CodeNotFound, "payment intent not found")
	}
	if err != nil {
		result := domain.GatewayFail(domain.CodeExternal, err.Error())
		result.Retryable = true
		return result
	}
	return domain.GatewayOK(intent.ID, intent.Status)
}

// Cash on delivery has no webhooks; both operations succeed trivially so the
// order pipeline can treat every gateway the same way.
func (g *Gateway) HandleWebhook(ctx context.Context, payload []byte, headers map[string]string) domain.GatewayResult {
	return domain.GatewayResult{Success: true, Message: "cash on delivery does not emit webhooks"}
}

func (g *Gateway) VerifyWebhookSignature(payload []byte, signature string, headers map[string]string) bool {
	return true
}

func (g *Gateway) MinimumAmount(currency string) decimal.Decimal {
	if b, ok := bounds[currency]; ok {
		return b.min
	}
	return bounds[defaultCurrency].min
}

func (g *Gateway) MaximumAmount(currency string) decimal.Decimal {
	if b, ok := bounds[currency]; ok {
		return b.max
	}
	return bounds[defaultCurrency].max
}
