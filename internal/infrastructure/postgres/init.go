package postgres

import (
	"log"

	"github.com/karimfayez/souq-promo-service/internal/config"
	"github.com/karimfayez/souq-promo-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.PromoConfig) *gorm.DB {
	dsn := cfg.PromoDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.FlashSaleModel{},
		&models.SpecialOfferModel{},
		&models.OfferUsageModel{},
		&models.PaymentIntentModel{},
		&models.PaymentRefundModel{},
	)

	return db
}
