package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/karimfayez/souq-promo-service/internal/domain"
	evaluatedto "github.com/karimfayez/souq-promo-service/internal/usecase/dto/evaluate"
	usagedto "github.com/karimfayez/souq-promo-service/internal/usecase/dto/usage"
	"github.com/karimfayez/souq-promo-service/internal/usecase/evaluator"
	"github.com/karimfayez/souq-promo-service/internal/usecase/usage"
	"github.com/shopspring/decimal"
)

type PromoHandler struct {
	evaluatorUc evaluator.EvaluatorUsecase
	usageUc     usage.UsageUsecase
}

func NewPromoHandler(evaluatorUc evaluator.EvaluatorUsecase, usageUc usage.UsageUsecase) *PromoHandler {
	return &PromoHandler{evaluatorUc: evaluatorUc, usageUc: usageUc}
}

type evaluateRequest struct {
	UserID string            `json:"user_id"`
	Items  []cartItemRequest `json:"items"`
}

type cartItemRequest struct {
	ProductID  string          `json:"product_id"`
	CategoryID string          `json:"category_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
}

func (h *PromoHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest, "items must not be empty")
		return
	}

	input := &evaluatedto.EvaluateInput{UserID: req.UserID}
	for _, it := range req.Items {
		input.Items = append(input.Items, evaluatedto.CartItemInput{
			ProductID:  it.ProductID,
			CategoryID: it.CategoryID,
			UnitPrice:  it.UnitPrice,
			Quantity:   it.Quantity,
		})
	}

	out, err := h.evaluatorUc.Evaluate(r.Context(), input)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "evaluation failed")
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *PromoHandler) ListActiveOffers(w http.ResponseWriter, r *http.Request) {
	out, err := h.evaluatorUc.ListActiveOffers(r.Context(), time.Now().UTC())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list offers")
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *PromoHandler) RecordUsage(w http.ResponseWriter, r *http.Request) {
	var input usagedto.RecordUsageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.OrderID == "" || len(input.Applied) == 0 {
		respondError(w, http.StatusBadRequest, "order_id and applied offers are required")
		return
	}

	err := h.usageUc.RecordUsage(r.Context(), &input)
	switch {
	case errors.Is(err, domain.ErrUsageLimitReached):
		respondError(w, http.StatusConflict, "offer usage limit reached")
	case errors.Is(err, domain.ErrOfferNotFound):
		respondError(w, http.StatusNotFound, "offer not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "failed to record usage")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
