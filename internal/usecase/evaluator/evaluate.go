package evaluator

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/karimfayez/souq-promo-service/internal/domain"
	evaluatedto "github.com/karimfayez/souq-promo-service/internal/usecase/dto/evaluate"
	"github.com/shopspring/decimal"
)

// evaluation accumulates the state of a single pass over the cart.
// An item claimed by a line discount is off the table for later offers
// unless the later offer is marked combinable. The shipping waiver is a
// separate channel and never competes with line discounts.
type evaluation struct {
	items         []domain.CartItem
	claimed       map[string]bool
	itemDiscounts map[string]decimal.Decimal
	applied       []domain.AppliedOffer
	freeShipping  bool
}

func newEvaluation(items []domain.CartItem) *evaluation {
	return &evaluation{
		items:         items,
		claimed:       make(map[string]bool),
		itemDiscounts: make(map[string]decimal.Decimal),
	}
}

func (e *evaluation) addItemDiscount(productID string, discount decimal.Decimal) {
	e.itemDiscounts[productID] = e.itemDiscounts[productID].Add(discount)
}

func (e *evaluation) totalDiscount() decimal.Decimal {
	total := decimal.Zero
	for _, d := range e.itemDiscounts {
		total = total.Add(d)
	}
	return total
}

func (uc *DefaultEvaluatorUsecase) Evaluate(ctx context.Context, input *evaluatedto.EvaluateInput) (*evaluatedto.EvaluateOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	items := make([]domain.CartItem, 0, len(input.Items))
	for _, it := range input.Items {
		if it.Quantity <= 0 {
			continue
		}
		items = append(items, domain.CartItem{
			ProductID:  it.ProductID,
			CategoryID: it.CategoryID,
			UnitPrice:  it.UnitPrice,
			Quantity:   it.Quantity,
		})
	}

	state := newEvaluation(items)

	sales, err := uc.OfferRepo.GetActiveFlashSales(ctx, now)
	if err != nil {
		return nil, err
	}
	offers, err := uc.OfferRepo.GetActiveSpecialOffers(ctx, now)
	if err != nil {
		return nil, err
	}

	// Flash sales apply strictly before special offers
	sortFlashSales(sales)
	for _, sale := range sales {
		if !sale.ActiveAt(now) {
			continue
		}
		uc.applyFlashSale(state, sale)
	}

	sortSpecialOffers(offers)
	for _, offer := range offers {
		if !offer.ActiveAt(now) {
			continue
		}
		if skip, err := uc.userLimitReached(ctx, offer, input.UserID); err != nil {
			return nil, err
		} else if skip {
			continue
		}
		switch offer.OfferType {
		case domain.OfferBuyXGetYFree:
			uc.applyBuyXGetYFree(state, offer)
		case domain.OfferBuyXFreeShipping:
			uc.applyFreeShipping(state, offer)
		case domain.OfferBundleDiscount:
			uc.applyBundleDiscount(state, offer)
		default:
			slog.Warn("skipping offer with unknown type",
				"offer_id", offer.ID,
				"offer_type", string(offer.OfferType))
			uc.Metrics.RecordUnknownOfferType(string(offer.OfferType))
		}
	}

	uc.recordEvaluationMetrics(state)

	return buildOutput(state), nil
}

func (uc *DefaultEvaluatorUsecase) userLimitReached(ctx context.Context, offer *domain.SpecialOffer, userID string) (bool, error) {
	if offer.PerUserLimit <= 0 || userID == "" || uc.UsageRepo == nil {
		return false, nil
	}
	count, err := uc.UsageRepo.CountUserUsage(ctx, offer.ID, userID)
	if err != nil {
		return false, err
	}
	return count >= offer.PerUserLimit, nil
}

// Higher display priority wins; ID breaks the tie so a pass is deterministic.
func sortFlashSales(sales []*domain.FlashSale) {
	sort.SliceStable(sales, func(i, j int) bool {
		if sales[i].DisplayPriority != sales[j].DisplayPriority {
			return sales[i].DisplayPriority > sales[j].DisplayPriority
		}
		return sales[i].ID < sales[j].ID
	})
}

func sortSpecialOffers(offers []*domain.SpecialOffer) {
	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].DisplayPriority != offers[j].DisplayPriority {
			return offers[i].DisplayPriority > offers[j].DisplayPriority
		}
		return offers[i].ID < offers[j].ID
	})
}

func buildOutput(state *evaluation) *evaluatedto.EvaluateOutput {
	out := &evaluatedto.EvaluateOutput{
		Applied:       make([]evaluatedto.AppliedOfferOutput, 0, len(state.applied)),
		ItemDiscounts: state.itemDiscounts,
		TotalDiscount: state.totalDiscount(),
		FreeShipping:  state.freeShipping,
	}
	for _, a := range state.applied {
		out.Applied = append(out.Applied, evaluatedto.AppliedOfferOutput{
			Kind:         string(a.Kind),
			OfferID:      a.OfferID,
			OfferType:    string(a.OfferType),
			ProductIDs:   a.ProductIDs,
			Discount:     a.Discount,
			FreeShipping: a.FreeShipping,
		})
	}
	return out
}
