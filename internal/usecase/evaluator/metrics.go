package evaluator

func (uc *DefaultEvaluatorUsecase) recordEvaluationMetrics(state *evaluation) {
	if uc.Metrics == nil {
		return
	}

	uc.Metrics.RecordEvaluation(state.freeShipping)
	for _, a := range state.applied {
		discount, _ := a.Discount.Float64()
		uc.Metrics.RecordOfferApplied(string(a.Kind), string(a.OfferType), discount)
	}
}
