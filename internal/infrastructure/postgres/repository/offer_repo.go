package repository

import (
	"context"
	"errors"
	"time"

	"github.com/karimfayez/souq-promo-service/internal/domain"
	"github.com/karimfayez/souq-promo-service/internal/infrastructure/postgres/mappers"
	"github.com/karimfayez/souq-promo-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultOfferRepository struct {
	DB *gorm.DB
}

func NewDefaultOfferRepository(db *gorm.DB) *DefaultOfferRepository {
	return &DefaultOfferRepository{DB: db}
}

func (r *DefaultOfferRepository) GetActiveFlashSales(ctx context.Context, now time.Time) ([]*domain.FlashSale, error) {
	var saleModels []models.FlashSaleModel
	err := r.DB.WithContext(ctx).
		Where("is_active = ? AND start_time <= ? AND end_time > ?", true, now, now).
		Where("total_usage_limit = 0 OR usage_count < total_usage_limit").
		Order("display_priority DESC").
		Find(&saleModels).Error
	if err != nil {
		return nil, err
	}

	sales := make([]*domain.FlashSale, len(saleModels))
	for i := range saleModels {
		sales[i] = mappers.ToDomainFlashSale(&saleModels[i])
	}
	return sales, nil
}

func (r *DefaultOfferRepository) GetActiveSpecialOffers(ctx context.Context, now time.Time) ([]*domain.SpecialOffer, error) {
	var offerModels []models.SpecialOfferModel
	err := r.DB.WithContext(ctx).
		Where("is_active = ? AND start_time <= ? AND end_time > ?", true, now, now).
		Where("total_usage_limit = 0 OR usage_count < total_usage_limit").
		Order("display_priority DESC").
		Find(&offerModels).Error
	if err != nil {
		return nil, err
	}

	offers := make([]*domain.SpecialOffer, len(offerModels))
	for i := range offerModels {
		offers[i] = mappers.ToDomainSpecialOffer(&offerModels[i])
	}
	return offers, nil
}

func (r *DefaultOfferRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	sales := r.DB.WithContext(ctx).
		Model(&models.FlashSaleModel{}).
		Where("is_active = ? AND end_time <= ?", true, now).
		UpdateColumn("is_active", false)
	if sales.Error != nil {
		return 0, sales.Error
	}

	offers := r.DB.WithContext(ctx).
		Model(&models.SpecialOfferModel{}).
		Where("is_active = ? AND end_time <= ?", true, now).
		UpdateColumn("is_active", false)
	if offers.Error != nil {
		return sales.RowsAffected, offers.Error
	}

	return sales.RowsAffected + offers.RowsAffected, nil
}

func (r *DefaultOfferRepository) GetFlashSaleByID(ctx context.Context, saleID string) (*domain.FlashSale, error) {
	var saleModel models.FlashSaleModel
	err := r.DB.WithContext(ctx).First(&saleModel, "id = ?", saleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOfferNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainFlashSale(&saleModel), nil
}

func (r *DefaultOfferRepository) GetSpecialOfferByID(ctx context.Context, offerID string) (*domain.SpecialOffer, error) {
	var offerModel models.SpecialOfferModel
	err := r.DB.WithContext(ctx).First(&offerModel, "id = ?", offerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOfferNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainSpecialOffer(&offerModel), nil
}
