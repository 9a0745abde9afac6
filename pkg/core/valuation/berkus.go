package valuation

import "github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/refdata"

// BerkusInput holds the criterion scores for a Berkus valuation. All five
// catalogue criteria must be scored; there is no defaulting.
type BerkusInput struct {
	Scores map[string]float64 // criterion key -> score in [0,5]
}

// BerkusCriterionDetail is the per-criterion slice of the breakdown.
type BerkusCriterionDetail struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Value    float64 `json:"value"`
	MaxValue float64 `json:"max_value"`
}

// BerkusBreakdown carries the per-criterion monetary attribution.
type BerkusBreakdown struct {
	Criteria    []BerkusCriterionDetail `json:"criteria"`
	MaxPossible float64                 `json:"max_possible"`
}

// Berkus assigns each of the five risk-mitigation criteria a monetary value
// proportional to its score:
//
//	value_i   = min(score_i, 5)/5 * maxValue_i
//	valuation = sum(value_i), capped at the program-wide maximum
//
// With the standard tables the cap is reached by construction at full
// scores, not by clamping.
func (e *Engine) Berkus(input BerkusInput) Result {
	catalogue := e.ref.BerkusCriteria()
	details := make([]BerkusCriterionDetail, 0, len(catalogue))
	var total float64

	for _, criterion := range catalogue {
		score, ok := input.Scores[criterion.Key]
		if !ok {
			return failure(MethodBerkus, "missing required criterion: %s", criterion.Key)
		}
		if !isFinite(score) || score < 0 || score > 5 {
			return failure(MethodBerkus, "score for %q must be between 0 and 5", criterion.Key)
		}

		capped := score
		if capped > 5 {
			capped = 5
		}
		value := capped / 5.0 * criterion.MaxValue
		total += value

		details = append(details, BerkusCriterionDetail{
			Key:      criterion.Key,
			Name:     criterion.DisplayName,
			Score:    score,
			Value:    value,
			MaxValue: criterion.MaxValue,
		})
	}

	if total > refdata.BerkusValuationCap {
		total = refdata.BerkusValuationCap
	}

	return success(MethodBerkus, total, BerkusBreakdown{
		Criteria:    details,
		MaxPossible: refdata.BerkusValuationCap,
	})
}
