package kafka

import (
	"encoding/json"
	"time"

	"github.com/karimfayez/souq-promo-service/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	TopicPromoUsageEvents = "promo-usage-events"
	TopicOrderEvents      = "order-events"
)

// PromoUsageEvent goes to the notification subsystem after an offer
// consumption is recorded.
type PromoUsageEvent struct {
	UsageID    string    `json:"usage_id"`
	Kind       string    `json:"kind"`
	OfferID    string    `json:"offer_id"`
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	Discount   string    `json:"discount"`
	RecordedAt time.Time `json:"recorded_at"`
}

// OrderCompletedEvent is what the order pipeline publishes when an order
// settles; the usage worker consumes it.
type OrderCompletedEvent struct {
	OrderID       string            `json:"order_id"`
	UserID        string            `json:"user_id"`
	Status        string            `json:"status"`
	AppliedOffers []AppliedOfferRef `json:"applied_offers,omitempty"`
}

type AppliedOfferRef struct {
	Kind     string          `json:"kind"`
	OfferID  string          `json:"offer_id"`
	Discount decimal.Decimal `json:"discount"`
}

func PublishPromoUsage(pub domain.PublisherPort, event PromoUsageEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return pub.Publish(TopicPromoUsageEvents, domain.Message{Key: []byte(event.OrderID), Value: v})
}
