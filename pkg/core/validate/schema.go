package validate

import (
	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/refdata"
	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/valuation"
)

// FieldKind is the declared shape of one request field.
type FieldKind string

const (
	// KindNumber is a single real number (sanitized from any decoration).
	KindNumber FieldKind = "number"
	// KindInteger is a number truncated to its integer part after
	// sanitization.
	KindInteger FieldKind = "integer"
	// KindSeries is an ordered list of numbers (cash flow projections).
	KindSeries FieldKind = "number_series"
	// KindScoreMap maps catalogue keys to numbers, each range-checked.
	KindScoreMap FieldKind = "score_map"
	// KindWeightMap maps catalogue keys to weights that must sum to 1.0.
	KindWeightMap FieldKind = "weight_map"
	// KindChoice is a string restricted to a fixed set of options.
	KindChoice FieldKind = "choice"
)

// FieldSpec declares one field of a method schema: its shape, whether it is
// required, and its numeric bounds. For series and map kinds the bounds
// apply per element. For score and weight maps, Keys lists the catalogue
// keys; RequireAllKeys demands a value for every key.
type FieldSpec struct {
	Name           string    `json:"name"`
	Kind           FieldKind `json:"kind"`
	Required       bool      `json:"required"`
	Min            float64   `json:"min,omitempty"`
	Max            float64   `json:"max,omitempty"`
	Choices        []string  `json:"choices,omitempty"`
	Keys           []string  `json:"keys,omitempty"`
	RequireAllKeys bool      `json:"require_all_keys,omitempty"`
	Description    string    `json:"description,omitempty"`
}

// MethodSchema is the declarative requirements of one valuation method,
// exposed as metadata for form-building collaborators.
type MethodSchema struct {
	Method valuation.Method `json:"method"`
	Fields []FieldSpec      `json:"fields"`
}

// RequiredFields lists the names of the required fields in order.
func (s MethodSchema) RequiredFields() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// Field looks up one field spec by name.
func (s MethodSchema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// buildSchemas derives the per-method schemas from the reference tables.
// Catalogue-driven choices and keys are resolved here once, at engine
// construction.
func buildSchemas(ref *refdata.Tables) map[valuation.Method]MethodSchema {
	scorecardKeys := criterionKeys(ref.ScorecardCriteria())
	berkusKeys := berkusKeys(ref.BerkusCriteria())
	riskKeys := riskKeys(ref.RiskFactors())

	return map[valuation.Method]MethodSchema{
		valuation.MethodDCF: {
			Method: valuation.MethodDCF,
			Fields: []FieldSpec{
				{Name: "cash_flows", Kind: KindSeries, Required: true, Min: -1_000_000_000, Max: 1_000_000_000_000,
					Description: "Projected annual cash flows, year 1 first"},
				{Name: "discount_rate", Kind: KindNumber, Required: true, Min: 0.01, Max: 0.50,
					Description: "Discount rate (WACC) as a decimal"},
				{Name: "terminal_growth", Kind: KindNumber, Required: true, Min: 0.0, Max: 0.10,
					Description: "Perpetuity growth rate as a decimal"},
				{Name: "growth_rate", Kind: KindNumber, Required: false, Min: -1.0, Max: 10.0,
					Description: "Legacy field, accepted but unused by the calculation"},
			},
		},
		valuation.MethodMarketMultiples: {
			Method: valuation.MethodMarketMultiples,
			Fields: []FieldSpec{
				{Name: "sector", Kind: KindChoice, Required: true, Choices: ref.Sectors(),
					Description: "Industry sector from the reference tables"},
				{Name: "metric_type", Kind: KindChoice, Required: true, Choices: ref.MetricTypes(),
					Description: "Financial metric the multiple applies to"},
				{Name: "metric_value", Kind: KindNumber, Required: true, Min: 0, Max: 100_000_000_000,
					Description: "Value of the chosen metric"},
				{Name: "multiple", Kind: KindNumber, Required: true, Min: 0.1, Max: 50.0,
					Description: "Valuation multiple"},
			},
		},
		valuation.MethodScorecard: {
			Method: valuation.MethodScorecard,
			Fields: []FieldSpec{
				{Name: "base_valuation", Kind: KindNumber, Required: true, Min: 10_000, Max: 1_000_000_000,
					Description: "Regional base valuation for comparable startups"},
				{Name: "criteria_scores", Kind: KindScoreMap, Required: true, Min: 0, Max: 5,
					Keys: scorecardKeys, RequireAllKeys: true,
					Description: "Score per scorecard criterion (0-5)"},
				{Name: "criteria_weights", Kind: KindWeightMap, Required: false, Min: 0, Max: 1,
					Keys: scorecardKeys, RequireAllKeys: true,
					Description: "Optional custom weights, must sum to 1.0"},
			},
		},
		valuation.MethodBerkus: {
			Method: valuation.MethodBerkus,
			Fields: []FieldSpec{
				{Name: "criteria_scores", Kind: KindScoreMap, Required: true, Min: 0, Max: 5,
					Keys: berkusKeys, RequireAllKeys: true,
					Description: "Score per Berkus criterion (0-5), all five required"},
			},
		},
		valuation.MethodRiskFactor: {
			Method: valuation.MethodRiskFactor,
			Fields: []FieldSpec{
				{Name: "base_valuation", Kind: KindNumber, Required: true, Min: 10_000, Max: 1_000_000_000,
					Description: "Base valuation before risk adjustment"},
				{Name: "risk_factors", Kind: KindScoreMap, Required: true, Min: -2, Max: 2,
					Keys: riskKeys,
					Description: "Rating per risk factor (-2 to +2); unrated factors are neutral"},
			},
		},
		valuation.MethodVentureCapital: {
			Method: valuation.MethodVentureCapital,
			Fields: []FieldSpec{
				{Name: "expected_revenue", Kind: KindNumber, Required: true, Min: 100_000, Max: 10_000_000_000,
					Description: "Projected revenue at exit"},
				{Name: "exit_multiple", Kind: KindNumber, Required: true, Min: 0.5, Max: 20.0,
					Description: "Revenue multiple at exit"},
				{Name: "required_return", Kind: KindNumber, Required: true, Min: 0.10, Max: 1.00,
					Description: "Required annual return as a decimal"},
				{Name: "years_to_exit", Kind: KindInteger, Required: true, Min: 1, Max: 15,
					Description: "Years until the exit event"},
				{Name: "investment_needed", Kind: KindNumber, Required: false, Min: 10_000, Max: 1_000_000_000,
					Description: "Optional round size for deal-term derivation"},
			},
		},
	}
}

func criterionKeys(criteria []refdata.ScorecardCriterion) []string {
	out := make([]string, 0, len(criteria))
	for _, c := range criteria {
		out = append(out, c.Key)
	}
	return out
}

func berkusKeys(criteria []refdata.BerkusCriterion) []string {
	out := make([]string, 0, len(criteria))
	for _, c := range criteria {
		out = append(out, c.Key)
	}
	return out
}

func riskKeys(factors []refdata.RiskFactor) []string {
	out := make([]string, 0, len(factors))
	for _, f := range factors {
		out = append(out, f.Key)
	}
	return out
}
