package evaluator

import (
	"github.com/karimfayez/souq-promo-service/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// applyFlashSale claims every unclaimed cart item in the sale's product set,
// best-priority sale first. A capped sale may only claim as many items as it
// has applications left; once spent it matches nothing else this pass.
func (uc *DefaultEvaluatorUsecase) applyFlashSale(state *evaluation, sale *domain.FlashSale) {
	remaining := int64(-1)
	if sale.TotalUsageLimit > 0 {
		remaining = sale.TotalUsageLimit - sale.UsageCount
		if remaining <= 0 {
			return
		}
	}

	var matched []string
	discount := decimal.Zero

	for _, item := range state.items {
		if remaining == 0 {
			break
		}
		if state.claimed[item.ProductID] || !sale.Covers(item.ProductID) {
			continue
		}
		d := lineDiscount(item, sale.DiscountType, sale.DiscountValue)
		if d.IsZero() {
			continue
		}
		state.claimed[item.ProductID] = true
		state.addItemDiscount(item.ProductID, d)
		matched = append(matched, item.ProductID)
		discount = discount.Add(d)
		if remaining > 0 {
			remaining--
		}
	}

	if len(matched) == 0 {
		return
	}
	state.applied = append(state.applied, domain.AppliedOffer{
		Kind:       domain.KindFlashSale,
		OfferID:    sale.ID,
		ProductIDs: matched,
		Discount:   discount,
	})
}

// lineDiscount computes the discount for one cart line, clamped so a line
// never goes negative. Fixed discounts are per unit.
func lineDiscount(item domain.CartItem, dt domain.DiscountType, value decimal.Decimal) decimal.Decimal {
	lineTotal := item.LineTotal()
	var d decimal.Decimal
	switch dt {
	case domain.DiscountPercentage:
		d = lineTotal.Mul(value).Div(hundred)
	case domain.DiscountFixed:
		d = value.Mul(decimal.NewFromInt(int64(item.Quantity)))
	default:
		return decimal.Zero
	}
	if d.GreaterThan(lineTotal) {
		return lineTotal
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
