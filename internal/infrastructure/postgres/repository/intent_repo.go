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

type DefaultPaymentIntentRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentIntentRepository(db *gorm.DB) *DefaultPaymentIntentRepository {
	return &DefaultPaymentIntentRepository{DB: db}
}

func (r *DefaultPaymentIntentRepository) SaveIntent(ctx context.Context, intent *domain.PaymentIntent) error {
	return r.DB.WithContext(ctx).Create(mappers.ToIntentModel(intent)).Error
}

func (r *DefaultPaymentIntentRepository) GetIntentByID(ctx context.Context, intentID string) (*domain.PaymentIntent, error) {
	var intentModel models.PaymentIntentModel
	err := r.DB.WithContext(ctx).First(&intentModel, "id = ?", intentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrIntentNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainIntent(&intentModel), nil
}

func (r *DefaultPaymentIntentRepository) GetIntentByOrderID(ctx context.Context, orderID string) (*domain.PaymentIntent, error) {
	var intentModel models.PaymentIntentModel
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		First(&intentModel, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrIntentNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainIntent(&intentModel), nil
}

// TransitionStatus is a compare-and-swap on the status column: a replayed or
// out-of-order transition touches zero rows and fails instead of clobbering.
func (r *DefaultPaymentIntentRepository) TransitionStatus(ctx context.Context, intentID string, from, to domain.PaymentStatus, reason string) error {
	res := r.DB.WithContext(ctx).
		Model(&models.PaymentIntentModel{}).
		Where("id = ? AND status = ?", intentID, string(from)).
		Updates(map[string]interface{}{
			"status":         string(to),
			"failure_reason": reason,
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		r.DB.WithContext(ctx).Model(&models.PaymentIntentModel{}).Where("id = ?", intentID).Count(&count)
		if count == 0 {
			return domain.ErrIntentNotFound
		}
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *DefaultPaymentIntentRepository) SaveRefund(ctx context.Context, refund *domain.PaymentRefund) error {
	return r.DB.WithContext(ctx).Create(mappers.ToRefundModel(refund)).Error
}
