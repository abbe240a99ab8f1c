package evaluator

import (
	"github.com/karimfayez/souq-promo-service/internal/domain"
	"github.com/shopspring/decimal"
)

// eligibleItems returns cart items the offer's scope covers. Claimed items
// are excluded unless the offer is combinable.
func eligibleItems(state *evaluation, offer *domain.SpecialOffer, includeClaimed bool) []domain.CartItem {
	var out []domain.CartItem
	for _, item := range state.items {
		if !offer.AppliesTo(item) {
			continue
		}
		if !includeClaimed && !offer.Combinable && state.claimed[item.ProductID] {
			continue
		}
		out = append(out, item)
	}
	return out
}

// applyBuyXGetYFree discounts, per complete group of buy+free units of one
// item, the free units of the group to zero. Units of a single line share a
// price, so the cheapest free units are simply free-count units of the line.
func (uc *DefaultEvaluatorUsecase) applyBuyXGetYFree(state *evaluation, offer *domain.SpecialOffer) {
	groupSize := offer.BuyQuantity + offer.FreeQuantity
	if groupSize <= 0 || offer.FreeQuantity <= 0 {
		return
	}

	var matched []string
	discount := decimal.Zero

	for _, item := range eligibleItems(state, offer, false) {
		groups := item.Quantity / groupSize
		if groups == 0 {
			continue
		}
		freeUnits := int64(groups * offer.FreeQuantity)
		d := item.UnitPrice.Mul(decimal.NewFromInt(freeUnits))
		state.claimed[item.ProductID] = true
		state.addItemDiscount(item.ProductID, d)
		matched = append(matched, item.ProductID)
		discount = discount.Add(d)
	}

	if len(matched) == 0 {
		return
	}
	state.applied = append(state.applied, domain.AppliedOffer{
		Kind:       domain.KindSpecialOffer,
		OfferID:    offer.ID,
		OfferType:  offer.OfferType,
		ProductIDs: matched,
		Discount:   discount,
	})
}

// applyFreeShipping waives the shipping fee when the total matching quantity
// reaches the threshold. It claims no items: the waiver rides a separate
// channel from line discounts.
func (uc *DefaultEvaluatorUsecase) applyFreeShipping(state *evaluation, offer *domain.SpecialOffer) {
	if state.freeShipping || offer.BuyQuantity <= 0 {
		return
	}

	total := 0
	var matched []string
	for _, item := range eligibleItems(state, offer, true) {
		total += item.Quantity
		matched = append(matched, item.ProductID)
	}
	if total < offer.BuyQuantity {
		return
	}

	state.freeShipping = true
	state.applied = append(state.applied, domain.AppliedOffer{
		Kind:         domain.KindSpecialOffer,
		OfferID:      offer.ID,
		OfferType:    offer.OfferType,
		ProductIDs:   matched,
		Discount:     decimal.Zero,
		FreeShipping: true,
	})
}

// applyBundleDiscount applies the discount across the matched subset once at
// least buy_quantity distinct eligible items are in the cart. A fixed value
// is one discount over the whole subset, spread pro-rata by line total.
func (uc *DefaultEvaluatorUsecase) applyBundleDiscount(state *evaluation, offer *domain.SpecialOffer) {
	items := eligibleItems(state, offer, false)
	if offer.BuyQuantity <= 0 || len(items) < offer.BuyQuantity {
		return
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	if subtotal.IsZero() {
		return
	}

	var total decimal.Decimal
	switch offer.DiscountType {
	case domain.DiscountPercentage:
		total = subtotal.Mul(offer.DiscountValue).Div(hundred)
	case domain.DiscountFixed:
		total = offer.DiscountValue
	default:
		return
	}
	if total.GreaterThan(subtotal) {
		total = subtotal
	}
	if !total.IsPositive() {
		return
	}

	var matched []string
	for _, item := range items {
		share := total.Mul(item.LineTotal()).Div(subtotal)
		state.claimed[item.ProductID] = true
		state.addItemDiscount(item.ProductID, share)
		matched = append(matched, item.ProductID)
	}

	state.applied = append(state.applied, domain.AppliedOffer{
		Kind:       domain.KindSpecialOffer,
		OfferID:    offer.ID,
		OfferType:  offer.OfferType,
		ProductIDs: matched,
		Discount:   total,
	})
}
