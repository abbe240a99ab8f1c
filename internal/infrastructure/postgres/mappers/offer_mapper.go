package mappers

import (
	"github.com/karimfayez/souq-promo-service/internal/domain"
	"github.com/karimfayez/souq-promo-service/internal/infrastructure/postgres/models"
)

func ToDomainFlashSale(m *models.FlashSaleModel) *domain.FlashSale {
	return &domain.FlashSale{
		ID:              m.ID,
		NameEn:          m.NameEn,
		NameAr:          m.NameAr,
		DescriptionEn:   m.DescriptionEn,
		DescriptionAr:   m.DescriptionAr,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		DisplayPriority: m.DisplayPriority,
		IsActive:        m.IsActive,
		TotalUsageLimit: m.TotalUsageLimit,
		UsageCount:      m.UsageCount,
		DiscountType:    domain.DiscountType(m.DiscountType),
		DiscountValue:   m.DiscountValue,
		ProductIDs:      m.ProductIDs,
	}
}

func ToDomainSpecialOffer(m *models.SpecialOfferModel) *domain.SpecialOffer {
	return &domain.SpecialOffer{
		ID:              m.ID,
		OfferType:       domain.OfferType(m.OfferType),
		NameEn:          m.NameEn,
		NameAr:          m.NameAr,
		ButtonTextEn:    m.ButtonTextEn,
		ButtonTextAr:    m.ButtonTextAr,
		BuyQuantity:     m.BuyQuantity,
		FreeQuantity:    m.FreeQuantity,
		DiscountType:    domain.DiscountType(m.DiscountType),
		DiscountValue:   m.DiscountValue,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		DisplayPriority: m.DisplayPriority,
		IsActive:        m.IsActive,
		TotalUsageLimit: m.TotalUsageLimit,
		UsageCount:      m.UsageCount,
		PerUserLimit:    m.PerUserLimit,
		Scope:           domain.OfferScope(m.Scope),
		CategoryIDs:     m.CategoryIDs,
		ProductIDs:      m.ProductIDs,
		Combinable:      m.Combinable,
	}
}

func ToUsageModel(u *domain.OfferUsage) *models.OfferUsageModel {
	return &models.OfferUsageModel{
		ID:         u.ID,
		Kind:       string(u.Kind),
		OfferID:    u.OfferID,
		OrderID:    u.OrderID,
		UserID:     u.UserID,
		Discount:   u.Discount,
		RecordedAt: u.RecordedAt,
	}
}
