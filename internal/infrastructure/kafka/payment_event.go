package kafka

import (
	"encoding/json"
	"time"

	"github.com/karimfayez/souq-promo-service/internal/domain"
)

const TopicPaymentEvents = "payment-events"

// PaymentEvent mirrors intent lifecycle transitions for downstream consumers.
type PaymentEvent struct {
	IntentID  string    `json:"intent_id"`
	OrderID   string    `json:"order_id"`
	Method    string    `json:"method"`
	Amount    string    `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func PublishPayment(pub domain.PublisherPort, event PaymentEvent) error {
	v, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return pub.Publish(TopicPaymentEvents, domain.Message{Key: []byte(event.OrderID), Value: v})
}
