package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/karimfayez/souq-promo-service/internal/domain"
	paymentdto "github.com/karimfayez/souq-promo-service/internal/usecase/dto/payment"
	"github.com/karimfayez/souq-promo-service/internal/usecase/payment"
	"github.com/shopspring/decimal"
)

func decimalFromNumber(n json.Number) (*decimal.Decimal, error) {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return nil, err
	}
	return &d, nil
}

const signatureHeader = "X-Webhook-Signature"

type PaymentHandler struct {
	paymentUc payment.PaymentUsecase
}

func NewPaymentHandler(paymentUc payment.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{paymentUc: paymentUc}
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var input paymentdto.CreatePaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.OrderID == "" || input.Method == "" || input.Currency == "" {
		respondError(w, http.StatusBadRequest, "order_id, method and currency are required")
		return
	}

	out, err := h.paymentUc.CreatePayment(r.Context(), &input)
	if errors.Is(err, domain.ErrUnknownMethod) {
		respondError(w, http.StatusBadRequest, "unknown payment method")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create payment intent")
		return
	}

	status := http.StatusCreated
	if !out.Success {
		// validation failures surface as 422 with the gateway's reason
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, out)
}

type captureRequest struct {
	Amount *json.Number `json:"amount,omitempty"`
}

func (h *PaymentHandler) Capture(w http.ResponseWriter, r *http.Request) {
	input := paymentdto.CapturePaymentInput{IntentID: chi.URLParam(r, "intentID")}

	var req captureRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Amount != nil {
			amount, err := decimalFromNumber(*req.Amount)
			if err != nil {
				respondError(w, http.StatusBadRequest, "invalid amount")
				return
			}
			input.Amount = amount
		}
	}

	out, err := h.paymentUc.CapturePayment(r.Context(), &input)
	if payment.IsNotFound(err) {
		respondError(w, http.StatusNotFound, "payment intent not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to capture payment")
		return
	}

	status := http.StatusOK
	if !out.Success {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, out)
}

func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	var input paymentdto.RefundPaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input.IntentID = chi.URLParam(r, "intentID")

	out, err := h.paymentUc.RefundPayment(r.Context(), &input)
	if payment.IsNotFound(err) {
		respondError(w, http.StatusNotFound, "payment intent not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to refund payment")
		return
	}

	status := http.StatusOK
	if !out.Success {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, out)
}

func (h *PaymentHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	out, err := h.paymentUc.GetPaymentStatus(r.Context(), chi.URLParam(r, "intentID"))
	if payment.IsNotFound(err) {
		respondError(w, http.StatusNotFound, "payment intent not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to fetch payment status")
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read payload")
		return
	}

	headers := make(map[string]string, len(r.Header))
	for k := range r.Header {
		headers[k] = r.Header.Get(k)
	}

	input := &paymentdto.WebhookInput{
		Method:    chi.URLParam(r, "method"),
		Payload:   payload,
		Signature: r.Header.Get(signatureHeader),
		Headers:   headers,
	}

	out, err := h.paymentUc.HandleWebhook(r.Context(), input)
	if errors.Is(err, domain.ErrUnknownMethod) {
		respondError(w, http.StatusNotFound, "unknown payment method")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to handle webhook")
		return
	}

	status := http.StatusOK
	if !out.Success {
		status = http.StatusBadRequest
	}
	respondJSON(w, status, out)
}
