package domain

type Message struct {
	Key   []byte
	Value []byte
}

// PublisherPort hides the broker from the usecases; promo-usage and payment
// events go out through it.
type PublisherPort interface {
	Publish(topic string, msgs ...Message) error
}

// SubscriberPort feeds order-pipeline events back in (usage recording on
// order completion).
type SubscriberPort interface {
	Subscribe(topic, groupID string) (<-chan Message, error)
}
