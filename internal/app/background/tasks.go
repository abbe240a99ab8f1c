package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/karimfayez/souq-promo-service/internal/domain"
	"github.com/karimfayez/souq-promo-service/internal/usecase/usage"
)

type BackgroundTasks struct {
	UsageUsecase usage.UsageUsecase
	OfferRepo    domain.OfferRepository
}

func NewBackgroundTasks(usageUC usage.UsageUsecase, offerRepo domain.OfferRepository) *BackgroundTasks {
	return &BackgroundTasks{
		UsageUsecase: usageUC,
		OfferRepo:    offerRepo,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.UsageUsecase.StartOrderEventsWorker(ctx)
	go bt.startExpiredOfferSweep(ctx)
}

// startExpiredOfferSweep retires promotions whose window has passed so the
// active-offer queries stay cheap.
func (bt *BackgroundTasks) startExpiredOfferSweep(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			retired, err := bt.OfferRepo.DeactivateExpired(ctx, time.Now().UTC())
			if err != nil {
				slog.Error("expired offer sweep failed", "error", err.Error())
				continue
			}
			if retired > 0 {
				slog.Info("retired expired offers", "count", retired)
			}
		}
	}
}
