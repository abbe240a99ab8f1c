package evaluator

import (
	"context"
	"time"

	"github.com/karimfayez/souq-promo-service/internal/domain"
	"github.com/karimfayez/souq-promo-service/internal/infrastructure/metrics"
	evaluatedto "github.com/karimfayez/souq-promo-service/internal/usecase/dto/evaluate"
)

type EvaluatorUsecase interface {
	// Evaluate is a pure preview: it never mutates offer state and may be
	// replayed any number of times for the same cart.
	Evaluate(ctx context.Context, input *evaluatedto.EvaluateInput) (*evaluatedto.EvaluateOutput, error)
	ListActiveOffers(ctx context.Context, now time.Time) (*evaluatedto.ActiveOffersOutput, error)
}

type DefaultEvaluatorUsecase struct {
	OfferRepo domain.OfferRepository
	UsageRepo domain.UsageRepository
	Metrics   *metrics.PromoMetrics
}

func NewDefaultEvaluatorUsecase(
	offerRepo domain.OfferRepository,
	usageRepo domain.UsageRepository,
	promoMetrics *metrics.PromoMetrics) *DefaultEvaluatorUsecase {

	return &DefaultEvaluatorUsecase{
		OfferRepo: offerRepo,
		UsageRepo: usageRepo,
		Metrics:   promoMetrics,
	}
}
