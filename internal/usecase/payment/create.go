package payment

import (
	"context"
	"log/slog"
	"time"

	"github.com/karimfayez/souq-promo-service/internal/domain"
	publisher "github.com/karimfayez/souq-promo-service/internal/infrastructure/kafka"
	paymentdto "github.com/karimfayez/souq-promo-service/internal/usecase/dto/payment"
)

func (uc *DefaultPaymentUsecase) CreatePayment(ctx context.Context, input *paymentdto.CreatePaymentInput) (*paymentdto.PaymentOutput, error) {
	gw, err := uc.Registry.Resolve(input.Method)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, gatewayCallTimeout)
	defer cancel()

	started := time.Now()
	res := gw.CreatePaymentIntent(ctx, input.Amount, input.Currency, domain.OrderContext{
		OrderID:  input.OrderID,
		UserID:   input.UserID,
		Metadata: input.Metadata,
	})
	uc.Metrics.ObserveGatewayCall(input.Method, "create", time.Since(started).Seconds())

	if !res.Success {
		uc.Metrics.RecordIntentFailed(input.Method, string(res.Code))
		return withOrder(resultOutput(res), input), nil
	}

	amount, _ := input.Amount.Float64()
	uc.Metrics.RecordIntentCreated(input.Method, input.Currency, amount)
	uc.publishPaymentEvent(publisher.PaymentEvent{
		IntentID:  res.IntentID,
		OrderID:   input.OrderID,
		Method:    input.Method,
		Amount:    input.Amount.String(),
		Currency:  input.Currency,
		Status:    string(res.Status),
		Timestamp: time.Now().UTC(),
	})

	return withOrder(resultOutput(res), input), nil
}

func withOrder(out *paymentdto.PaymentOutput, input *paymentdto.CreatePaymentInput) *paymentdto.PaymentOutput {
	out.OrderID = input.OrderID
	out.Method = input.Method
	out.Amount = input.Amount
	out.Currency = input.Currency
	return out
}

func (uc *DefaultPaymentUsecase) publishPaymentEvent(event publisher.PaymentEvent) {
	if uc.Publisher == nil {
		return
	}
	go func() {
		if err := publisher.PublishPayment(uc.Publisher, event); err != nil {
			slog.Error("failed to publish payment event",
				"intent_id", event.IntentID,
				"order_id", event.OrderID,
				"error", err.Error())
		}
	}()
}
