package evaluator

import (
	"context"
	"time"

	evaluatedto "github.com/karimfayez/souq-promo-service/internal/usecase/dto/evaluate"
)

// ListActiveOffers returns the promotions the storefront should render at the
// given instant, flash sales first, best display priority on top.
func (uc *DefaultEvaluatorUsecase) ListActiveOffers(ctx context.Context, now time.Time) (*evaluatedto.ActiveOffersOutput, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	sales, err := uc.OfferRepo.GetActiveFlashSales(ctx, now)
	if err != nil {
		return nil, err
	}
	offers, err := uc.OfferRepo.GetActiveSpecialOffers(ctx, now)
	if err != nil {
		return nil, err
	}

	sortFlashSales(sales)
	sortSpecialOffers(offers)

	out := &evaluatedto.ActiveOffersOutput{
		Offers: make([]evaluatedto.ActiveOfferOutput, 0, len(sales)+len(offers)),
	}
	for _, sale := range sales {
		if !sale.ActiveAt(now) {
			continue
		}
		out.Offers = append(out.Offers, evaluatedto.ActiveOfferOutput{
			Kind:            "FLASH_SALE",
			ID:              sale.ID,
			NameEn:          sale.NameEn,
			NameAr:          sale.NameAr,
			DisplayPriority: sale.DisplayPriority,
			EndTime:         sale.EndTime,
		})
	}
	for _, offer := range offers {
		if !offer.ActiveAt(now) {
			continue
		}
		out.Offers = append(out.Offers, evaluatedto.ActiveOfferOutput{
			Kind:            "SPECIAL_OFFER",
			ID:              offer.ID,
			OfferType:       string(offer.OfferType),
			NameEn:          offer.NameEn,
			NameAr:          offer.NameAr,
			ButtonTextEn:    offer.ButtonTextEn,
			ButtonTextAr:    offer.ButtonTextAr,
			DisplayPriority: offer.DisplayPriority,
			EndTime:         offer.EndTime,
		})
	}
	return out, nil
}
