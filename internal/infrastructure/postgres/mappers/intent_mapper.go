package mappers

import (
	"github.com/karimfayez/souq-promo-service/internal/domain"
	"github.com/karimfayez/souq-promo-service/internal/infrastructure/postgres/models"
)

func ToIntentModel(i *domain.PaymentIntent) *models.PaymentIntentModel {
	return &models.PaymentIntentModel{
		ID:            i.ID,
		OrderID:       i.OrderID,
		Method:        i.Method,
		Amount:        i.Amount,
		Currency:      i.Currency,
		Status:        string(i.Status),
		FailureReason: i.FailureReason,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func ToDomainIntent(m *models.PaymentIntentModel) *domain.PaymentIntent {
	return &domain.PaymentIntent{
		ID:            m.ID,
		OrderID:       m.OrderID,
		Method:        m.Method,
		Amount:        m.Amount,
		Currency:      m.Currency,
		Status:        domain.PaymentStatus(m.Status),
		FailureReason: m.FailureReason,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToRefundModel(r *domain.PaymentRefund) *models.PaymentRefundModel {
	return &models.PaymentRefundModel{
		ID:            r.ID,
		IntentID:      r.IntentID,
		Amount:        r.Amount,
		Reason:        r.Reason,
		ManualProcess: r.ManualProcess,
		CreatedAt:     r.CreatedAt,
	}
}
