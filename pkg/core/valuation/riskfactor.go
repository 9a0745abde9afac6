package valuation

// Risk factor summation constants: each rating point moves the valuation by
// 5%, and the net adjustment is clamped to +/-30%.
const (
	RiskAdjustmentStep = 0.05
	RiskAdjustmentCap  = 0.30
)

// RiskFactorInput holds the inputs for a risk factor summation valuation.
// Ratings maps catalogue keys to ratings in [-2,+2]; factors left unrated
// contribute no adjustment.
type RiskFactorInput struct {
	BaseValuation float64
	Ratings       map[string]float64
}

// RiskFactorDetail is the per-factor slice of the breakdown.
type RiskFactorDetail struct {
	Key        string  `json:"key"`
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	Adjustment float64 `json:"adjustment"`
}

// RiskFactorBreakdown carries the full adjustment derivation. RawAdjustment
// is the unclamped sum; TotalAdjustment is what priced the valuation.
type RiskFactorBreakdown struct {
	BaseValuation   float64            `json:"base_valuation"`
	Factors         []RiskFactorDetail `json:"factors"`
	RawAdjustment   float64            `json:"raw_adjustment"`
	TotalAdjustment float64            `json:"total_adjustment"`
}

// RiskFactorSummation adjusts a base valuation by the capped sum of the
// per-factor adjustments:
//
//	total     = clamp(sum(rating_i * 0.05), -0.30, +0.30)
//	valuation = base * (1 + total)
func (e *Engine) RiskFactorSummation(input RiskFactorInput) Result {
	if !isFinite(input.BaseValuation) || input.BaseValuation <= 0 {
		return failure(MethodRiskFactor, "base valuation must be positive")
	}

	// Reject ratings for factors outside the catalogue before pricing.
	for key := range input.Ratings {
		if _, ok := e.ref.RiskFactor(key); !ok {
			return failure(MethodRiskFactor, "unknown risk factor %q", key)
		}
	}

	var details []RiskFactorDetail
	var raw float64
	for _, factor := range e.ref.RiskFactors() {
		rating, ok := input.Ratings[factor.Key]
		if !ok {
			continue
		}
		if !isFinite(rating) || rating < -2 || rating > 2 {
			return failure(MethodRiskFactor, "risk rating for %q must be between -2 and 2", factor.Key)
		}

		adjustment := rating * RiskAdjustmentStep
		raw += adjustment

		details = append(details, RiskFactorDetail{
			Key:        factor.Key,
			Name:       factor.DisplayName,
			Rating:     rating,
			Adjustment: adjustment,
		})
	}

	total := raw
	if total > RiskAdjustmentCap {
		total = RiskAdjustmentCap
	}
	if total < -RiskAdjustmentCap {
		total = -RiskAdjustmentCap
	}

	valuation := input.BaseValuation * (1 + total)

	return success(MethodRiskFactor, valuation, RiskFactorBreakdown{
		BaseValuation:   input.BaseValuation,
		Factors:         details,
		RawAdjustment:   raw,
		TotalAdjustment: total,
	})
}
