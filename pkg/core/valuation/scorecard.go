package valuation

import (
	"math"

	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/refdata"
)

// ScorecardReferenceScore is the "meets expectations" midpoint of the 0-5
// scale; a criterion scored at this value contributes no adjustment.
const ScorecardReferenceScore = 3.0

// ScorecardWeights selects between the catalogue's default weights and a
// caller-supplied custom set. The zero value means default weights.
type ScorecardWeights struct {
	custom map[string]float64
}

// DefaultScorecardWeights selects the catalogue default weights.
func DefaultScorecardWeights() ScorecardWeights {
	return ScorecardWeights{}
}

// CustomScorecardWeights selects an explicit weight per criterion key.
// The weights must cover every catalogue criterion and sum to 1.0.
func CustomScorecardWeights(weights map[string]float64) ScorecardWeights {
	copied := make(map[string]float64, len(weights))
	for k, v := range weights {
		copied[k] = v
	}
	return ScorecardWeights{custom: copied}
}

// IsCustom reports whether a custom weight set was supplied.
func (w ScorecardWeights) IsCustom() bool { return w.custom != nil }

// ScorecardInput holds the inputs for a scorecard valuation.
type ScorecardInput struct {
	BaseValuation float64
	Scores        map[string]float64 // criterion key -> score in [0,5]
	Weights       ScorecardWeights
}

// ScorecardCriterionDetail is the per-criterion slice of the breakdown.
type ScorecardCriterionDetail struct {
	Key        string  `json:"key"`
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
	Weight     float64 `json:"weight"`
	Adjustment float64 `json:"adjustment"`
}

// ScorecardBreakdown carries the full adjustment derivation.
type ScorecardBreakdown struct {
	BaseValuation    float64                    `json:"base_valuation"`
	Criteria         []ScorecardCriterionDetail `json:"criteria"`
	TotalAdjustment  float64                    `json:"total_adjustment"`
	AdjustmentFactor float64                    `json:"adjustment_factor"`
}

// Scorecard adjusts a regional base valuation by a weighted comparison of
// criterion scores against the reference score:
//
//	adjustment_i = weight_i * (score_i/reference - 1)
//	valuation    = base * (1 + sum(adjustment_i))
func (e *Engine) Scorecard(input ScorecardInput) Result {
	if !isFinite(input.BaseValuation) || input.BaseValuation <= 0 {
		return failure(MethodScorecard, "base valuation must be positive")
	}

	weights, errResult := e.resolveScorecardWeights(input.Weights)
	if errResult != nil {
		return *errResult
	}

	catalogue := e.ref.ScorecardCriteria()
	details := make([]ScorecardCriterionDetail, 0, len(catalogue))
	var totalAdjustment float64

	for _, criterion := range catalogue {
		score, ok := input.Scores[criterion.Key]
		if !ok {
			return failure(MethodScorecard, "missing score for criterion %q", criterion.Key)
		}
		if !isFinite(score) || score < 0 || score > 5 {
			return failure(MethodScorecard, "score for %q must be between 0 and 5", criterion.Key)
		}

		weight := weights[criterion.Key]
		adjustment := weight * (score/ScorecardReferenceScore - 1)
		totalAdjustment += adjustment

		details = append(details, ScorecardCriterionDetail{
			Key:        criterion.Key,
			Name:       criterion.DisplayName,
			Score:      score,
			Weight:     weight,
			Adjustment: adjustment,
		})
	}

	factor := 1 + totalAdjustment
	valuation := input.BaseValuation * factor

	return success(MethodScorecard, valuation, ScorecardBreakdown{
		BaseValuation:    input.BaseValuation,
		Criteria:         details,
		TotalAdjustment:  totalAdjustment,
		AdjustmentFactor: factor,
	})
}

// resolveScorecardWeights returns the weight per catalogue key, enforcing
// coverage and the unit-sum invariant for custom sets.
func (e *Engine) resolveScorecardWeights(w ScorecardWeights) (map[string]float64, *Result) {
	if !w.IsCustom() {
		return e.ref.DefaultScorecardWeights(), nil
	}

	var sum float64
	resolved := make(map[string]float64, len(w.custom))
	for _, criterion := range e.ref.ScorecardCriteria() {
		weight, ok := w.custom[criterion.Key]
		if !ok {
			r := failure(MethodScorecard, "missing custom weight for criterion %q", criterion.Key)
			return nil, &r
		}
		if !isFinite(weight) || weight < 0 {
			r := failure(MethodScorecard, "custom weight for %q must be a non-negative number", criterion.Key)
			return nil, &r
		}
		resolved[criterion.Key] = weight
		sum += weight
	}
	if math.Abs(sum-1.0) > refdata.WeightSumTolerance {
		r := failure(MethodScorecard, "custom weights must sum to 1.0 (got %.6f)", sum)
		return nil, &r
	}
	return resolved, nil
}
