package repository

import (
	"context"
	"errors"

	"github.com/karimfayez/souq-promo-service/internal/domain"
	"github.com/karimfayez/souq-promo-service/internal/infrastructure/postgres/mappers"
	"github.com/karimfayez/souq-promo-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultUsageRepository struct {
	DB *gorm.DB
}

func NewDefaultUsageRepository(db *gorm.DB) *DefaultUsageRepository {
	return &DefaultUsageRepository{DB: db}
}

// RecordUsage inserts the audit row and spends one unit of the offer's cap in
// one transaction. The duplicate-key error on the audit row carries the
// idempotency; the guarded UPDATE carries the cap. Two concurrent recordings
// against a cap of one cannot both pass: the losing UPDATE touches zero rows
// and the whole transaction rolls back.
func (r *DefaultUsageRepository) RecordUsage(ctx context.Context, usage *domain.OfferUsage) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(mappers.ToUsageModel(usage)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrUsageAlreadyRecorded
			}
			return err
		}
		return incrementUsageCount(tx, usage.Kind, usage.OfferID)
	})
}

func incrementUsageCount(tx *gorm.DB, kind domain.OfferKind, offerID string) error {
	var query *gorm.DB
	switch kind {
	case domain.KindFlashSale:
		query = tx.Model(&models.FlashSaleModel{})
	case domain.KindSpecialOffer:
		query = tx.Model(&models.SpecialOfferModel{})
	default:
		return domain.ErrOfferNotFound
	}

	res := query.
		Where("id = ? AND (total_usage_limit = 0 OR usage_count < total_usage_limit)", offerID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if !offerExists(tx, kind, offerID) {
			return domain.ErrOfferNotFound
		}
		return domain.ErrUsageLimitReached
	}
	return nil
}

func offerExists(tx *gorm.DB, kind domain.OfferKind, offerID string) bool {
	var count int64
	switch kind {
	case domain.KindFlashSale:
		tx.Model(&models.FlashSaleModel{}).Where("id = ?", offerID).Count(&count)
	case domain.KindSpecialOffer:
		tx.Model(&models.SpecialOfferModel{}).Where("id = ?", offerID).Count(&count)
	}
	return count > 0
}

func (r *DefaultUsageRepository) CountUserUsage(ctx context.Context, offerID, userID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.OfferUsageModel{}).
		Where("offer_id = ? AND user_id = ?", offerID, userID).
		Count(&count).Error
	return count, err
}
