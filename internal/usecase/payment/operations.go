package payment

import (
	"context"
	"errors"
	"time"

	"github.com/karimfayez/souq-promo-service/internal/domain"
	publisher "github.com/karimfayez/souq-promo-service/internal/infrastructure/kafka"
	paymentdto "github.com/karimfayez/souq-promo-service/internal/usecase/dto/payment"
)

func (uc *DefaultPaymentUsecase) CapturePayment(ctx context.Context, input *paymentdto.CapturePaymentInput) (*paymentdto.PaymentOutput, error) {
	gw, intent, err := uc.resolveByIntent(ctx, input.IntentID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, gatewayCallTimeout)
	defer cancel()

	started := time.Now()
	res := gw.CapturePayment(ctx, input.IntentID, input.Amount)
	uc.Metrics.ObserveGatewayCall(intent.Method, "capture", time.Since(started).Seconds())
	uc.Metrics.RecordCapture(intent.Method, res.Success)

	if res.Success {
		uc.publishPaymentEvent(publisher.PaymentEvent{
			IntentID:  intent.ID,
			OrderID:   intent.OrderID,
			Method:    intent.Method,
			Amount:    intent.Amount.String(),
			Currency:  intent.Currency,
			Status:    string(res.Status),
			Timestamp: time.Now().UTC(),
		})
	}

	return withIntent(resultOutput(res), intent), nil
}

func (uc *DefaultPaymentUsecase) RefundPayment(ctx context.Context, input *paymentdto.RefundPaymentInput) (*paymentdto.PaymentOutput, error) {
	gw, intent, err := uc.resolveByIntent(ctx, input.IntentID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, gatewayCallTimeout)
	defer cancel()

	started := time.Now()
	res := gw.RefundPayment(ctx, input.IntentID, input.Amount, input.Reason)
	uc.Metrics.ObserveGatewayCall(intent.Method, "refund", time.Since(started).Seconds())
	uc.Metrics.RecordRefund(intent.Method, res.Success)

	if res.Success {
		uc.publishPaymentEvent(publisher.PaymentEvent{
			IntentID:  intent.ID,
			OrderID:   intent.OrderID,
			Method:    intent.Method,
			Amount:    input.Amount.String(),
			Currency:  intent.Currency,
			Status:    string(res.Status),
			Reason:    input.Reason,
			Timestamp: time.Now().UTC(),
		})
	}

	return withIntent(resultOutput(res), intent), nil
}

func (uc *DefaultPaymentUsecase) GetPaymentStatus(ctx context.Context, intentID string) (*paymentdto.PaymentOutput, error) {
	gw, intent, err := uc.resolveByIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	res := gw.GetPaymentStatus(ctx, intentID)
	return withIntent(resultOutput(res), intent), nil
}

// HandleWebhook dispatches a processor callback to the gateway selected by
// the order's payment-method key. Signature verification happens before the
// payload is touched.
func (uc *DefaultPaymentUsecase) HandleWebhook(ctx context.Context, input *paymentdto.WebhookInput) (*paymentdto.PaymentOutput, error) {
	gw, err := uc.Registry.Resolve(input.Method)
	if err != nil {
		return nil, err
	}

	if !gw.VerifyWebhookSignature(input.Payload, input.Signature, input.Headers) {
		uc.Metrics.RecordWebhook(input.Method, false)
		return resultOutput(domain.GatewayFail(domain.CodeValidation, "webhook signature verification failed")), nil
	}

	ctx, cancel := context.WithTimeout(ctx, gatewayCallTimeout)
	defer cancel()

	res := gw.HandleWebhook(ctx, input.Payload, input.Headers)
	uc.Metrics.RecordWebhook(input.Method, res.Success)
	return resultOutput(res), nil
}

func withIntent(out *paymentdto.PaymentOutput, intent *domain.PaymentIntent) *paymentdto.PaymentOutput {
	out.OrderID = intent.OrderID
	out.Method = intent.Method
	out.Amount = intent.Amount
	out.Currency = intent.Currency
	return out
}

// IsNotFound lets delivery map routing failures onto 404s without peeking at
// repo internals.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrIntentNotFound) || errors.Is(err, domain.ErrUnknownMethod)
}
