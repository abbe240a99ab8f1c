package usage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/karimfayez/souq-promo-service/internal/domain"
	publisher "github.com/karimfayez/souq-promo-service/internal/infrastructure/kafka"
	"github.com/karimfayez/souq-promo-service/internal/infrastructure/metrics"
	usagedto "github.com/karimfayez/souq-promo-service/internal/usecase/dto/usage"
)

type UsageUsecase interface {
	RecordUsage(ctx context.Context, input *usagedto.RecordUsageInput) error
	StartOrderEventsWorker(ctx context.Context)
}

// DefaultUsageUsecase owns the only mutation of offer state. Evaluation is a
// free preview; consumption is recorded here once per completed order.
type DefaultUsageUsecase struct {
	UsageRepo  domain.UsageRepository
	Publisher  domain.PublisherPort
	Subscriber domain.SubscriberPort
	Metrics    *metrics.PromoMetrics
}

func NewDefaultUsageUsecase(
	usageRepo domain.UsageRepository,
	pub domain.PublisherPort,
	sub domain.SubscriberPort,
	promoMetrics *metrics.PromoMetrics) *DefaultUsageUsecase {

	return &DefaultUsageUsecase{
		UsageRepo:  usageRepo,
		Publisher:  pub,
		Subscriber: sub,
		Metrics:    promoMetrics,
	}
}

// RecordUsage consumes every offer applied to the order. A replay of the same
// order is a no-op: the per-order audit row makes the recording idempotent.
// A capped offer whose limit is already spent rejects the recording.
func (uc *DefaultUsageUsecase) RecordUsage(ctx context.Context, input *usagedto.RecordUsageInput) error {
	now := time.Now().UTC()

	for _, applied := range input.Applied {
		usage := &domain.OfferUsage{
			ID:         uuid.New().String(),
			Kind:       domain.OfferKind(applied.Kind),
			OfferID:    applied.OfferID,
			OrderID:    input.OrderID,
			UserID:     input.UserID,
			Discount:   applied.Discount,
			RecordedAt: now,
		}

		err := uc.UsageRepo.RecordUsage(ctx, usage)
		if errors.Is(err, domain.ErrUsageAlreadyRecorded) {
			uc.Metrics.RecordUsageRejected(applied.Kind, "already_recorded")
			continue
		}
		if errors.Is(err, domain.ErrUsageLimitReached) {
			uc.Metrics.RecordUsageRejected(applied.Kind, "limit_reached")
			return err
		}
		if err != nil {
			return err
		}

		uc.Metrics.RecordUsage(applied.Kind)
		uc.publishUsageEvent(usage)
	}

	return nil
}

func (uc *DefaultUsageUsecase) publishUsageEvent(usage *domain.OfferUsage) {
	if uc.Publisher == nil {
		return
	}
	event := publisher.PromoUsageEvent{
		UsageID:    usage.ID,
		Kind:       string(usage.Kind),
		OfferID:    usage.OfferID,
		OrderID:    usage.OrderID,
		UserID:     usage.UserID,
		Discount:   usage.Discount.String(),
		RecordedAt: usage.RecordedAt,
	}
	go func() {
		if err := publisher.PublishPromoUsage(uc.Publisher, event); err != nil {
			slog.Error("failed to publish promo usage event",
				"offer_id", event.OfferID,
				"order_id", event.OrderID,
				"error", err.Error())
		}
	}()
}
