package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/karimfayez/souq-promo-service/internal/delivery/http/handlers"
	"github.com/karimfayez/souq-promo-service/internal/delivery/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the HTTP router for the promo-service
func NewRouter(promoHandler *handlers.PromoHandler, paymentHandler *handlers.PaymentHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Route("/promo", func(r chi.Router) {
		r.Post("/evaluate", promoHandler.Evaluate)
		r.Get("/offers/active", promoHandler.ListActiveOffers)
		r.Post("/usage", promoHandler.RecordUsage)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Post("/intents", paymentHandler.CreateIntent)
		r.Get("/intents/{intentID}", paymentHandler.GetStatus)
		r.Post("/intents/{intentID}/capture", paymentHandler.Capture)
		r.Post("/intents/{intentID}/refund", paymentHandler.Refund)
		r.Post("/webhooks/{method}", paymentHandler.Webhook)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
