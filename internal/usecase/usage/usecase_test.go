package usage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/karimfayez/souq-promo-service/internal/domain"
	usagedto "github.com/karimfayez/souq-promo-service/internal/usecase/dto/usage"
	"github.com/shopspring/decimal"
)

// memUsageRepo mirrors the postgres semantics: a unique audit row per
// (kind, offer, order) plus a usage counter guarded by the offer's limit.
type memUsageRepo struct {
	mu     sync.Mutex
	seen   map[string]bool
	counts map[string]int64
	limits map[string]int64
}

func newMemUsageRepo(limits map[string]int64) *memUsageRepo {
	return &memUsageRepo{
		seen:   make(map[string]bool),
		counts: make(map[string]int64),
		limits: limits,
	}
}

func (r *memUsageRepo) RecordUsage(ctx context.Context, usage *domain.OfferUsage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := string(usage.Kind) + "/" + usage.OfferID + "/" + usage.OrderID
	if r.seen[key] {
		return domain.ErrUsageAlreadyRecorded
	}
	if limit := r.limits[usage.OfferID]; limit > 0 && r.counts[usage.OfferID] >= limit {
		return domain.ErrUsageLimitReached
	}
	r.seen[key] = true
	r.counts[usage.OfferID]++
	return nil
}

func (r *memUsageRepo) CountUserUsage(ctx context.Context, offerID, userID string) (int64, error) {
	return 0, nil
}

func (r *memUsageRepo) count(offerID string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[offerID]
}

func recordInput(orderID string) *usagedto.RecordUsageInput {
	return &usagedto.RecordUsageInput{
		OrderID: orderID,
		UserID:  "user-1",
		Applied: []usagedto.AppliedUsageInput{
			{Kind: "SPECIAL_OFFER", OfferID: "offer-1", Discount: decimal.NewFromInt(50)},
		},
	}
}

func TestRecordUsageIsIdempotentPerOrder(t *testing.T) {
	repo := newMemUsageRepo(nil)
	uc := NewDefaultUsageUsecase(repo, nil, nil, nil)

	if err := uc.RecordUsage(context.Background(), recordInput("order-1")); err != nil {
		t.Fatalf("first recording: %v", err)
	}
	if err := uc.RecordUsage(context.Background(), recordInput("order-1")); err != nil {
		t.Fatalf("replay must be a no-op, got %v", err)
	}

	if got := repo.count("offer-1"); got != 1 {
		t.Errorf("usage count = %d, want 1", got)
	}
}

func TestRecordUsageRejectsSpentLimit(t *testing.T) {
	repo := newMemUsageRepo(map[string]int64{"offer-1": 1})
	uc := NewDefaultUsageUsecase(repo, nil, nil, nil)

	if err := uc.RecordUsage(context.Background(), recordInput("order-1")); err != nil {
		t.Fatalf("first recording: %v", err)
	}

	err := uc.RecordUsage(context.Background(), recordInput("order-2"))
	if !errors.Is(err, domain.ErrUsageLimitReached) {
		t.Fatalf("err = %v, want ErrUsageLimitReached", err)
	}
	if got := repo.count("offer-1"); got != 1 {
		t.Errorf("usage count = %d, want 1", got)
	}
}

func TestConcurrentRecordingAdmitsExactlyOne(t *testing.T) {
	repo := newMemUsageRepo(map[string]int64{"offer-1": 1})
	uc := NewDefaultUsageUsecase(repo, nil, nil, nil)

	const workers = 8
	errCh := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			orderID := "order-" + string(rune('a'+n))
			errCh <- uc.RecordUsage(context.Background(), recordInput(orderID))
		}(i)
	}
	wg.Wait()
	close(errCh)

	var admitted, rejected int
	for err := range errCh {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, domain.ErrUsageLimitReached):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if admitted != 1 {
		t.Errorf("admitted = %d, want exactly 1", admitted)
	}
	if rejected != workers-1 {
		t.Errorf("rejected = %d, want %d", rejected, workers-1)
	}
	if got := repo.count("offer-1"); got != 1 {
		t.Errorf("usage count = %d, want 1", got)
	}
}

func TestRecordUsageContinuesPastDuplicateLine(t *testing.T) {
	repo := newMemUsageRepo(nil)
	uc := NewDefaultUsageUsecase(repo, nil, nil, nil)

	input := &usagedto.RecordUsageInput{
		OrderID: "order-1",
		UserID:  "user-1",
		Applied: []usagedto.AppliedUsageInput{
			{Kind: "FLASH_SALE", OfferID: "sale-1", Discount: decimal.NewFromInt(10)},
			{Kind: "SPECIAL_OFFER", OfferID: "offer-1", Discount: decimal.NewFromInt(20)},
		},
	}
	if err := uc.RecordUsage(context.Background(), input); err != nil {
		t.Fatalf("first recording: %v", err)
	}

	// A partially replayed order skips the recorded line and records the rest.
	input.Applied = append(input.Applied,
		usagedto.AppliedUsageInput{Kind: "SPECIAL_OFFER", OfferID: "offer-2", Discount: decimal.NewFromInt(5)})
	if err := uc.RecordUsage(context.Background(), input); err != nil {
		t.Fatalf("partial replay: %v", err)
	}

	if got := repo.count("offer-2"); got != 1 {
		t.Errorf("offer-2 count = %d, want 1", got)
	}
	if got := repo.count("sale-1"); got != 1 {
		t.Errorf("sale-1 count = %d, want 1", got)
	}
}
