package usage

import (
	"context"
	"encoding/json"
	"log/slog"

	publisher "github.com/karimfayez/souq-promo-service/internal/infrastructure/kafka"
	usagedto "github.com/karimfayez/souq-promo-service/internal/usecase/dto/usage"
)

// StartOrderEventsWorker consumes order-pipeline completion events and records
// the offers the order consumed. Runs until the subscription channel closes
// or the context is canceled.
func (uc *DefaultUsageUsecase) StartOrderEventsWorker(ctx context.Context) {
	if uc.Subscriber == nil {
		return
	}

	msgs, err := uc.Subscriber.Subscribe(publisher.TopicOrderEvents, "promo-service")
	if err != nil {
		slog.Error("failed to subscribe to order events", "error", err.Error())
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var event publisher.OrderCompletedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				slog.Error("failed to decode order event", "error", err.Error())
				continue
			}
			if event.Status != "COMPLETED" || len(event.AppliedOffers) == 0 {
				continue
			}

			input := &usagedto.RecordUsageInput{
				OrderID: event.OrderID,
				UserID:  event.UserID,
			}
			for _, a := range event.AppliedOffers {
				input.Applied = append(input.Applied, usagedto.AppliedUsageInput{
					Kind:     a.Kind,
					OfferID:  a.OfferID,
					Discount: a.Discount,
				})
			}

			if err := uc.RecordUsage(ctx, input); err != nil {
				slog.Error("failed to record offer usage from order event",
					"order_id", event.OrderID,
					"error", err.Error())
			}
		}
	}
}
