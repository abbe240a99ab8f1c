package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PromoMetrics covers the offer pipeline: previews, applications, recorded
// consumption and skipped definitions.
type PromoMetrics struct {
	EvaluationsTotal          prometheus.Counter
	FreeShippingGrantedTotal  prometheus.Counter
	OffersAppliedTotal        prometheus.CounterVec
	OffersDiscountAmountTotal prometheus.CounterVec
	UsageRecordedTotal        prometheus.CounterVec
	UsageRejectedTotal        prometheus.CounterVec
	UnknownOfferTypeTotal     prometheus.CounterVec
}

func NewPromoMetrics() *PromoMetrics {
	return &PromoMetrics{
		EvaluationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "promo_evaluations_total",
				Help: "Total number of cart evaluations",
			},
		),

		FreeShippingGrantedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "promo_free_shipping_granted_total",
				Help: "Total number of evaluations that waived the shipping fee",
			},
		),

		OffersAppliedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promo_offers_applied_total",
				Help: "Total number of offers applied during evaluation",
			},
			[]string{"kind", "offer_type"},
		),

		OffersDiscountAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promo_offers_discount_amount_total",
				Help: "Total discount amount granted during evaluation",
			},
			[]string{"kind", "offer_type"},
		),

		UsageRecordedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promo_usage_recorded_total",
				Help: "Total number of offer consumptions recorded",
			},
			[]string{"kind"},
		),

		UsageRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promo_usage_rejected_total",
				Help: "Total number of offer consumptions rejected",
			},
			[]string{"kind", "reason"},
		),

		UnknownOfferTypeTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promo_unknown_offer_type_total",
				Help: "Total number of offers skipped because of an unknown type",
			},
			[]string{"offer_type"},
		),
	}
}

func (m *PromoMetrics) RecordEvaluation(freeShipping bool) {
	if m == nil {
		return
	}
	m.EvaluationsTotal.Inc()
	if freeShipping {
		m.FreeShippingGrantedTotal.Inc()
	}
}

func (m *PromoMetrics) RecordOfferApplied(kind, offerType string, discount float64) {
	if m == nil {
		return
	}
	m.OffersAppliedTotal.WithLabelValues(kind, offerType).Inc()
	m.OffersDiscountAmountTotal.WithLabelValues(kind, offerType).Add(discount)
}

func (m *PromoMetrics) RecordUsage(kind string) {
	if m == nil {
		return
	}
	m.UsageRecordedTotal.WithLabelValues(kind).Inc()
}

func (m *PromoMetrics) RecordUsageRejected(kind, reason string) {
	if m == nil {
		return
	}
	m.UsageRejectedTotal.WithLabelValues(kind, reason).Inc()
}

func (m *PromoMetrics) RecordUnknownOfferType(offerType string) {
	if m == nil {
		return
	}
	m.UnknownOfferTypeTotal.WithLabelValues(offerType).Inc()
}

// PaymentMetrics covers the gateway pipeline.
type PaymentMetrics struct {
	IntentsCreatedTotal       prometheus.CounterVec
	IntentsCreatedAmountTotal prometheus.CounterVec
	IntentsFailedTotal        prometheus.CounterVec
	CapturesTotal             prometheus.CounterVec
	RefundsTotal              prometheus.CounterVec
	WebhooksTotal             prometheus.CounterVec
	GatewayCallDuration       prometheus.HistogramVec
}

func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		IntentsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_intents_created_total",
				Help: "Total number of payment intents created",
			},
			[]string{"method", "currency"},
		),

		IntentsCreatedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_intents_created_amount_total",
				Help: "Total amount of payment intents created",
			},
			[]string{"method", "currency"},
		),

		IntentsFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_intents_failed_total",
				Help: "Total number of failed intent creations",
			},
			[]string{"method", "code"},
		),

		CapturesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_captures_total",
				Help: "Total number of capture attempts",
			},
			[]string{"method", "success"},
		),

		RefundsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_refunds_total",
				Help: "Total number of refund attempts",
			},
			[]string{"method", "success"},
		),

		WebhooksTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_webhooks_total",
				Help: "Total number of webhooks handled",
			},
			[]string{"method", "success"},
		),

		GatewayCallDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_gateway_call_duration_seconds",
				Help:    "Duration of gateway operations in seconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
			[]string{"method", "operation"},
		),
	}
}

func (m *PaymentMetrics) RecordIntentCreated(method, currency string, amount float64) {
	if m == nil {
		return
	}
	m.IntentsCreatedTotal.WithLabelValues(method, currency).Inc()
	m.IntentsCreatedAmountTotal.WithLabelValues(method, currency).Add(amount)
}

func (m *PaymentMetrics) RecordIntentFailed(method, code string) {
	if m == nil {
		return
	}
	m.IntentsFailedTotal.WithLabelValues(method, code).Inc()
}

func (m *PaymentMetrics) RecordCapture(method string, success bool) {
	if m == nil {
		return
	}
	m.CapturesTotal.WithLabelValues(method, boolLabel(success)).Inc()
}

func (m *PaymentMetrics) RecordRefund(method string, success bool) {
	if m == nil {
		return
	}
	m.RefundsTotal.WithLabelValues(method, boolLabel(success)).Inc()
}

func (m *PaymentMetrics) RecordWebhook(method string, success bool) {
	if m == nil {
		return
	}
	m.WebhooksTotal.WithLabelValues(method, boolLabel(success)).Inc()
}

func (m *PaymentMetrics) ObserveGatewayCall(method, operation string, seconds float64) {
	if m == nil {
		return
	}
	m.GatewayCallDuration.WithLabelValues(method, operation).Observe(seconds)
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
