package payment

import (
	"context"
	"time"

	"github.com/karimfayez/souq-promo-service/internal/domain"
	"github.com/karimfayez/souq-promo-service/internal/gateway"
	"github.com/karimfayez/souq-promo-service/internal/infrastructure/metrics"
	paymentdto "github.com/karimfayez/souq-promo-service/internal/usecase/dto/payment"
)

// Online processors must answer within this budget; past it the intent stays
// pending for later reconciliation instead of being assumed failed.
const gatewayCallTimeout = 10 * time.Second

type PaymentUsecase interface {
	CreatePayment(ctx context.Context, input *paymentdto.CreatePaymentInput) (*paymentdto.PaymentOutput, error)
	CapturePayment(ctx context.Context, input *paymentdto.CapturePaymentInput) (*paymentdto.PaymentOutput, error)
	RefundPayment(ctx context.Context, input *paymentdto.RefundPaymentInput) (*paymentdto.PaymentOutput, error)
	GetPaymentStatus(ctx context.Context, intentID string) (*paymentdto.PaymentOutput, error)
	HandleWebhook(ctx context.Context, input *paymentdto.WebhookInput) (*paymentdto.PaymentOutput, error)
}

type DefaultPaymentUsecase struct {
	Registry   *gateway.Registry
	IntentRepo domain.PaymentIntentRepository
	Publisher  domain.PublisherPort
	Metrics    *metrics.PaymentMetrics
}

func NewDefaultPaymentUsecase(
	registry *gateway.Registry,
	intentRepo domain.PaymentIntentRepository,
	pub domain.PublisherPort,
	paymentMetrics *metrics.PaymentMetrics) *DefaultPaymentUsecase {

	return &DefaultPaymentUsecase{
		Registry:   registry,
		IntentRepo: intentRepo,
		Publisher:  pub,
		Metrics:    paymentMetrics,
	}
}

// resolveByIntent routes an intent-scoped operation to the gateway that
// issued the intent.
func (uc *DefaultPaymentUsecase) resolveByIntent(ctx context.Context, intentID string) (domain.PaymentGateway, *domain.PaymentIntent, error) {
	intent, err := uc.IntentRepo.GetIntentByID(ctx, intentID)
	if err != nil {
		return nil, nil, err
	}
	gw, err := uc.Registry.Resolve(intent.Method)
	if err != nil {
		return nil, nil, err
	}
	return gw, intent, nil
}

func resultOutput(res domain.GatewayResult) *paymentdto.PaymentOutput {
	return &paymentdto.PaymentOutput{
		Success:               res.Success,
		IntentID:              res.IntentID,
		Status:                string(res.Status),
		Code:                  string(res.Code),
		Message:               res.Message,
		Retryable:             res.Retryable,
		ManualProcessRequired: res.ManualProcessRequired,
	}
}
