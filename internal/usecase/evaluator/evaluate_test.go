package evaluator

import (
	"context"
	"testing"
	"time"

	"github.com/karimfayez/souq-promo-service/internal/domain"
	evaluatedto "github.com/karimfayez/souq-promo-service/internal/usecase/dto/evaluate"
	"github.com/shopspring/decimal"
)

type fakeOfferRepo struct {
	sales  []*domain.FlashSale
	offers []*domain.SpecialOffer
}

func (f *fakeOfferRepo) GetActiveFlashSales(ctx context.Context, now time.Time) ([]*domain.FlashSale, error) {
	return f.sales, nil
}

func (f *fakeOfferRepo) GetActiveSpecialOffers(ctx context.Context, now time.Time) ([]*domain.SpecialOffer, error) {
	return f.offers, nil
}

func (f *fakeOfferRepo) GetFlashSaleByID(ctx context.Context, saleID string) (*domain.FlashSale, error) {
	return nil, domain.ErrOfferNotFound
}

func (f *fakeOfferRepo) GetSpecialOfferByID(ctx context.Context, offerID string) (*domain.SpecialOffer, error) {
	return nil, domain.ErrOfferNotFound
}

func (f *fakeOfferRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

type fakeUsageRepo struct {
	recordCalls int
	userCounts  map[string]int64
}

func (f *fakeUsageRepo) RecordUsage(ctx context.Context, usage *domain.OfferUsage) error {
	f.recordCalls++
	return nil
}

func (f *fakeUsageRepo) CountUserUsage(ctx context.Context, offerID, userID string) (int64, error) {
	return f.userCounts[offerID+"/"+userID], nil
}

var evalNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func window() (time.Time, time.Time) {
	return evalNow.Add(-time.Hour), evalNow.Add(time.Hour)
}

func specialOffer(id string, offerType domain.OfferType) *domain.SpecialOffer {
	start, end := window()
	return &domain.SpecialOffer{
		ID:        id,
		OfferType: offerType,
		StartTime: start,
		EndTime:   end,
		IsActive:  true,
		Scope:     domain.ScopeGlobal,
	}
}

func newEvaluator(repo *fakeOfferRepo, usageRepo *fakeUsageRepo) *DefaultEvaluatorUsecase {
	return NewDefaultEvaluatorUsecase(repo, usageRepo, nil)
}

func evaluate(t *testing.T, uc *DefaultEvaluatorUsecase, items ...evaluatedto.CartItemInput) *evaluatedto.EvaluateOutput {
	t.Helper()
	out, err := uc.Evaluate(context.Background(), &evaluatedto.EvaluateInput{
		UserID: "user-1",
		Items:  items,
		Now:    evalNow,
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	return out
}

func item(productID string, price int64, qty int) evaluatedto.CartItemInput {
	return evaluatedto.CartItemInput{
		ProductID:  productID,
		CategoryID: "general",
		UnitPrice:  decimal.NewFromInt(price),
		Quantity:   qty,
	}
}

func TestBuyTwoGetOneFree(t *testing.T) {
	offer := specialOffer("bogo", domain.OfferBuyXGetYFree)
	offer.BuyQuantity = 2
	offer.FreeQuantity = 1

	uc := newEvaluator(&fakeOfferRepo{offers: []*domain.SpecialOffer{offer}}, &fakeUsageRepo{})
	out := evaluate(t, uc, item("p1", 100, 3))

	if !out.TotalDiscount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("total discount = %s, want 100", out.TotalDiscount)
	}
	if len(out.Applied) != 1 || out.Applied[0].OfferID != "bogo" {
		t.Fatalf("applied = %+v, want single bogo application", out.Applied)
	}
	// 3 units at 100: one unit free, charge 200
	charged := decimal.NewFromInt(300).Sub(out.TotalDiscount)
	if !charged.Equal(decimal.NewFromInt(200)) {
		t.Errorf("charged = %s, want 200", charged)
	}
}

func TestBuyXGetYFreeNeedsCompleteGroup(t *testing.T) {
	offer := specialOffer("bogo", domain.OfferBuyXGetYFree)
	offer.BuyQuantity = 2
	offer.FreeQuantity = 1

	uc := newEvaluator(&fakeOfferRepo{offers: []*domain.SpecialOffer{offer}}, &fakeUsageRepo{})
	out := evaluate(t, uc, item("p1", 100, 2))

	if !out.TotalDiscount.IsZero() {
		t.Errorf("total discount = %s, want 0 for an incomplete group", out.TotalDiscount)
	}
	if len(out.Applied) != 0 {
		t.Errorf("applied = %+v, want none", out.Applied)
	}
}

func TestFreeShippingThreshold(t *testing.T) {
	offer := specialOffer("ship3", domain.OfferBuyXFreeShipping)
	offer.BuyQuantity = 3

	uc := newEvaluator(&fakeOfferRepo{offers: []*domain.SpecialOffer{offer}}, &fakeUsageRepo{})

	below := evaluate(t, uc, item("p1", 50, 2))
	if below.FreeShipping {
		t.Error("quantity 2 must not waive shipping")
	}

	at := evaluate(t, uc, item("p1", 50, 3))
	if !at.FreeShipping {
		t.Error("quantity 3 must waive shipping")
	}
	if !at.TotalDiscount.IsZero() {
		t.Errorf("shipping waiver must not produce a line discount, got %s", at.TotalDiscount)
	}
}

func TestBundleDiscountPercentage(t *testing.T) {
	offer := specialOffer("bundle", domain.OfferBundleDiscount)
	offer.BuyQuantity = 2
	offer.DiscountType = domain.DiscountPercentage
	offer.DiscountValue = decimal.NewFromInt(20)

	uc := newEvaluator(&fakeOfferRepo{offers: []*domain.SpecialOffer{offer}}, &fakeUsageRepo{})
	out := evaluate(t, uc, item("p1", 100, 1), item("p2", 150, 1))

	// 20% over 250 brings the total to 200
	if !out.TotalDiscount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("total discount = %s, want 50", out.TotalDiscount)
	}
}

func TestBundleDiscountNeedsDistinctItems(t *testing.T) {
	offer := specialOffer("bundle", domain.OfferBundleDiscount)
	offer.BuyQuantity = 2
	offer.DiscountType = domain.DiscountPercentage
	offer.DiscountValue = decimal.NewFromInt(20)

	uc := newEvaluator(&fakeOfferRepo{offers: []*domain.SpecialOffer{offer}}, &fakeUsageRepo{})
	out := evaluate(t, uc, item("p1", 100, 5))

	if len(out.Applied) != 0 {
		t.Errorf("one distinct item must not trigger a 2-item bundle, applied = %+v", out.Applied)
	}
}

func TestFlashSaleAppliesBeforeSpecialOffers(t *testing.T) {
	start, end := window()
	sale := &domain.FlashSale{
		ID:            "fs1",
		StartTime:     start,
		EndTime:       end,
		IsActive:      true,
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(50),
		ProductIDs:    []string{"p1"},
	}
	offer := specialOffer("bundle", domain.OfferBundleDiscount)
	offer.BuyQuantity = 1
	offer.DiscountType = domain.DiscountPercentage
	offer.DiscountValue = decimal.NewFromInt(10)

	uc := newEvaluator(&fakeOfferRepo{
		sales:  []*domain.FlashSale{sale},
		offers: []*domain.SpecialOffer{offer},
	}, &fakeUsageRepo{})
	out := evaluate(t, uc, item("p1", 100, 1))

	// The flash sale claims p1; the non-combinable bundle finds no item left.
	if len(out.Applied) != 1 {
		t.Fatalf("applied = %+v, want only the flash sale", out.Applied)
	}
	if out.Applied[0].Kind != string(domain.KindFlashSale) {
		t.Errorf("winner kind = %s, want flash sale", out.Applied[0].Kind)
	}
	if !out.TotalDiscount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("total discount = %s, want 50", out.TotalDiscount)
	}
}

func TestHigherPriorityFlashSaleClaimsItem(t *testing.T) {
	start, end := window()
	low := &domain.FlashSale{
		ID: "low", StartTime: start, EndTime: end, IsActive: true,
		DisplayPriority: 1,
		DiscountType:    domain.DiscountPercentage,
		DiscountValue:   decimal.NewFromInt(90),
		ProductIDs:      []string{"p1"},
	}
	high := &domain.FlashSale{
		ID: "high", StartTime: start, EndTime: end, IsActive: true,
		DisplayPriority: 10,
		DiscountType:    domain.DiscountPercentage,
		DiscountValue:   decimal.NewFromInt(10),
		ProductIDs:      []string{"p1"},
	}

	uc := newEvaluator(&fakeOfferRepo{sales: []*domain.FlashSale{low, high}}, &fakeUsageRepo{})
	out := evaluate(t, uc, item("p1", 100, 1))

	// Author-declared priority wins even when the other discount is larger.
	if len(out.Applied) != 1 || out.Applied[0].OfferID != "high" {
		t.Fatalf("applied = %+v, want only the high-priority sale", out.Applied)
	}
	if !out.TotalDiscount.Equal(decimal.NewFromInt(10)) {
		t.Errorf("total discount = %s, want 10", out.TotalDiscount)
	}
}

func TestUnknownOfferTypeIsSkipped(t *testing.T) {
	bogus := specialOffer("mystery", domain.OfferType("LOYALTY_CASHBACK"))
	known := specialOffer("ship", domain.OfferBuyXFreeShipping)
	known.BuyQuantity = 1

	uc := newEvaluator(&fakeOfferRepo{offers: []*domain.SpecialOffer{bogus, known}}, &fakeUsageRepo{})
	out := evaluate(t, uc, item("p1", 100, 1))

	if !out.FreeShipping {
		t.Error("evaluation must continue past an unknown offer type")
	}
	for _, a := range out.Applied {
		if a.OfferID == "mystery" {
			t.Error("unknown offer type must not be applied")
		}
	}
}

func TestEvaluationIsPurePreview(t *testing.T) {
	offer := specialOffer("bogo", domain.OfferBuyXGetYFree)
	offer.BuyQuantity = 2
	offer.FreeQuantity = 1

	usageRepo := &fakeUsageRepo{}
	uc := newEvaluator(&fakeOfferRepo{offers: []*domain.SpecialOffer{offer}}, usageRepo)

	first := evaluate(t, uc, item("p1", 100, 3))
	second := evaluate(t, uc, item("p1", 100, 3))

	if usageRepo.recordCalls != 0 {
		t.Errorf("evaluation recorded usage %d times, want 0", usageRepo.recordCalls)
	}
	if !first.TotalDiscount.Equal(second.TotalDiscount) {
		t.Errorf("replayed evaluation differs: %s vs %s", first.TotalDiscount, second.TotalDiscount)
	}
}

func TestExhaustedCapIsExcluded(t *testing.T) {
	offer := specialOffer("bogo", domain.OfferBuyXGetYFree)
	offer.BuyQuantity = 2
	offer.FreeQuantity = 1
	offer.TotalUsageLimit = 3
	offer.UsageCount = 3

	uc := newEvaluator(&fakeOfferRepo{offers: []*domain.SpecialOffer{offer}}, &fakeUsageRepo{})
	out := evaluate(t, uc, item("p1", 100, 3))

	if len(out.Applied) != 0 {
		t.Errorf("spent offer must not match, applied = %+v", out.Applied)
	}
}

func TestPerUserLimitSkipsOffer(t *testing.T) {
	offer := specialOffer("once", domain.OfferBuyXGetYFree)
	offer.BuyQuantity = 1
	offer.FreeQuantity = 1
	offer.PerUserLimit = 1

	usageRepo := &fakeUsageRepo{userCounts: map[string]int64{"once/user-1": 1}}
	uc := newEvaluator(&fakeOfferRepo{offers: []*domain.SpecialOffer{offer}}, usageRepo)
	out := evaluate(t, uc, item("p1", 100, 2))

	if len(out.Applied) != 0 {
		t.Errorf("user already consumed the offer, applied = %+v", out.Applied)
	}
}

func TestListActiveOffersOrdering(t *testing.T) {
	start, end := window()
	sale := &domain.FlashSale{
		ID: "fs", StartTime: start, EndTime: end, IsActive: true,
		NameEn: "Summer", DisplayPriority: 1,
	}
	offer := specialOffer("so", domain.OfferBundleDiscount)
	offer.DisplayPriority = 99

	uc := newEvaluator(&fakeOfferRepo{
		sales:  []*domain.FlashSale{sale},
		offers: []*domain.SpecialOffer{offer},
	}, &fakeUsageRepo{})

	out, err := uc.ListActiveOffers(context.Background(), evalNow)
	if err != nil {
		t.Fatalf("ListActiveOffers: %v", err)
	}
	if len(out.Offers) != 2 {
		t.Fatalf("offers = %d, want 2", len(out.Offers))
	}
	if out.Offers[0].Kind != "FLASH_SALE" {
		t.Error("flash sales must be listed before special offers")
	}
}
