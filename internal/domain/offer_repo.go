package domain

import (
	"context"
	"time"
)

type OfferRepository interface {
	GetActiveFlashSales(ctx context.Context, now time.Time) ([]*FlashSale, error)
	GetActiveSpecialOffers(ctx context.Context, now time.Time) ([]*SpecialOffer, error)
	GetFlashSaleByID(ctx context.Context, saleID string) (*FlashSale, error)
	GetSpecialOfferByID(ctx context.Context, offerID string) (*SpecialOffer, error)
	// DeactivateExpired clears the active flag on records whose window passed.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type UsageRepository interface {
	// RecordUsage stores the audit row and increments the offer usage counter
	// in one transaction. The counter update is a single guarded UPDATE, so a
	// cap of N admits at most N recordings under concurrency.
	RecordUsage(ctx context.Context, usage *OfferUsage) error
	CountUserUsage(ctx context.Context, offerID, userID string) (int64, error)
}
