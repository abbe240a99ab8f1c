package domain

import "errors"

var (
	ErrOfferNotFound        = errors.New("offer not found")
	ErrUsageLimitReached    = errors.New("offer usage limit reached")
	ErrUsageAlreadyRecorded = errors.New("offer usage already recorded for order")
	ErrIntentNotFound       = errors.New("payment intent not found")
	ErrInvalidTransition    = errors.New("invalid payment status transition")
	ErrUnknownMethod        = errors.New("unknown payment method")
)
