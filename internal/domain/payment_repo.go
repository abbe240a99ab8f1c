package domain

import "context"

type PaymentIntentRepository interface {
	SaveIntent(ctx context.Context, intent *PaymentIntent) error
	GetIntentByID(ctx context.Context, intentID string) (*PaymentIntent, error)
	GetIntentByOrderID(ctx context.Context, orderID string) (*PaymentIntent, error)
	// TransitionStatus moves the intent from one status to another in a single
	// guarded UPDATE; ErrInvalidTransition when the current status differs.
	TransitionStatus(ctx context.Context, intentID string, from, to PaymentStatus, reason string) error
	SaveRefund(ctx context.Context, refund *PaymentRefund) error
}
