package valuation

import "github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/refdata"

// Engine evaluates the six valuation methods against one immutable set of
// reference tables. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	ref *refdata.Tables
}

// NewEngine builds an engine over the given tables. A nil argument selects
// the compiled-in defaults.
func NewEngine(ref *refdata.Tables) *Engine {
	if ref == nil {
		ref = refdata.Default()
	}
	return &Engine{ref: ref}
}

// Reference exposes the tables the engine prices against.
func (e *Engine) Reference() *refdata.Tables { return e.ref }

// handlers maps every Method to the function that decodes a sanitized
// payload and runs the calculator. The registry is complete by
// construction; TestHandlerRegistryCoversAllMethods pins that down.
var handlers = map[Method]func(*Engine, map[string]interface{}) Result{
	MethodDCF:             (*Engine).calculateDCF,
	MethodMarketMultiples: (*Engine).calculateMarketMultiples,
	MethodScorecard:       (*Engine).calculateScorecard,
	MethodBerkus:          (*Engine).calculateBerkus,
	MethodRiskFactor:      (*Engine).calculateRiskFactor,
	MethodVentureCapital:  (*Engine).calculateVentureCapital,
}

// Calculate dispatches a sanitized field payload (as produced by the
// validation engine) to the method's calculator. Malformed payloads come
// back as tagged failures, never as panics.
func (e *Engine) Calculate(method Method, data map[string]interface{}) Result {
	handler, ok := handlers[method]
	if !ok {
		return failure(method, "unknown valuation method: %s", method)
	}
	return handler(e, data)
}

func (e *Engine) calculateDCF(data map[string]interface{}) Result {
	cashFlows, ok := floatSlice(data["cash_flows"])
	if !ok {
		return failure(MethodDCF, "cash_flows must be a list of numbers")
	}
	rate, ok := floatValue(data["discount_rate"])
	if !ok {
		return failure(MethodDCF, "discount_rate must be a number")
	}
	growth, ok := floatValue(data["terminal_growth"])
	if !ok {
		return failure(MethodDCF, "terminal_growth must be a number")
	}
	legacyGrowth, _ := floatValue(data["growth_rate"]) // accepted, unused

	return e.DCF(DCFInput{
		CashFlows:      cashFlows,
		DiscountRate:   rate,
		TerminalGrowth: growth,
		GrowthRate:     legacyGrowth,
	})
}

func (e *Engine) calculateMarketMultiples(data map[string]interface{}) Result {
	metricValue, ok := floatValue(data["metric_value"])
	if !ok {
		return failure(MethodMarketMultiples, "metric_value must be a number")
	}
	multiple, ok := floatValue(data["multiple"])
	if !ok {
		return failure(MethodMarketMultiples, "multiple must be a number")
	}
	metricType, _ := data["metric_type"].(string)
	sector, _ := data["sector"].(string)

	return e.MarketMultiples(MarketMultiplesInput{
		MetricValue: metricValue,
		Multiple:    multiple,
		MetricType:  metricType,
		Sector:      sector,
	})
}

func (e *Engine) calculateScorecard(data map[string]interface{}) Result {
	base, ok := floatValue(data["base_valuation"])
	if !ok {
		return failure(MethodScorecard, "base_valuation must be a number")
	}
	scores, ok := floatMap(data["criteria_scores"])
	if !ok {
		return failure(MethodScorecard, "criteria_scores must map criteria to numbers")
	}

	weights := DefaultScorecardWeights()
	if raw, present := data["criteria_weights"]; present && raw != nil {
		custom, ok := floatMap(raw)
		if !ok {
			return failure(MethodScorecard, "criteria_weights must map criteria to numbers")
		}
		weights = CustomScorecardWeights(custom)
	}

	return e.Scorecard(ScorecardInput{
		BaseValuation: base,
		Scores:        scores,
		Weights:       weights,
	})
}

func (e *Engine) calculateBerkus(data map[string]interface{}) Result {
	scores, ok := floatMap(data["criteria_scores"])
	if !ok {
		return failure(MethodBerkus, "criteria_scores must map criteria to numbers")
	}
	return e.Berkus(BerkusInput{Scores: scores})
}

func (e *Engine) calculateRiskFactor(data map[string]interface{}) Result {
	base, ok := floatValue(data["base_valuation"])
	if !ok {
		return failure(MethodRiskFactor, "base_valuation must be a number")
	}
	ratings, ok := floatMap(data["risk_factors"])
	if !ok {
		return failure(MethodRiskFactor, "risk_factors must map factors to ratings")
	}
	return e.RiskFactorSummation(RiskFactorInput{
		BaseValuation: base,
		Ratings:       ratings,
	})
}

func (e *Engine) calculateVentureCapital(data map[string]interface{}) Result {
	revenue, ok := floatValue(data["expected_revenue"])
	if !ok {
		return failure(MethodVentureCapital, "expected_revenue must be a number")
	}
	multiple, ok := floatValue(data["exit_multiple"])
	if !ok {
		return failure(MethodVentureCapital, "exit_multiple must be a number")
	}
	requiredReturn, ok := floatValue(data["required_return"])
	if !ok {
		return failure(MethodVentureCapital, "required_return must be a number")
	}
	years, ok := floatValue(data["years_to_exit"])
	if !ok {
		return failure(MethodVentureCapital, "years_to_exit must be a number")
	}

	input := VentureCapitalInput{
		ExpectedRevenue: revenue,
		ExitMultiple:    multiple,
		RequiredReturn:  requiredReturn,
		YearsToExit:     int(years),
	}
	if raw, present := data["investment_needed"]; present && raw != nil {
		investment, ok := floatValue(raw)
		if !ok {
			return failure(MethodVentureCapital, "investment_needed must be a number")
		}
		input.InvestmentNeeded = &investment
	}

	return e.VentureCapital(input)
}

// floatValue extracts a float64 from the payload forms that survive JSON
// decoding and sanitization.
func floatValue(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func floatSlice(raw interface{}) ([]float64, bool) {
	switch v := raw.(type) {
	case []float64:
		out := make([]float64, len(v))
		copy(out, v)
		return out, true
	case []interface{}:
		out := make([]float64, 0, len(v))
		for _, item := range v {
			f, ok := floatValue(item)
			if !ok {
				return nil, false
			}
			out = append(out, f)
		}
		return out, true
	default:
		return nil, false
	}
}

func floatMap(raw interface{}) (map[string]float64, bool) {
	switch v := raw.(type) {
	case map[string]float64:
		out := make(map[string]float64, len(v))
		for k, f := range v {
			out[k] = f
		}
		return out, true
	case map[string]interface{}:
		out := make(map[string]float64, len(v))
		for k, item := range v {
			f, ok := floatValue(item)
			if !ok {
				return nil, false
			}
			out[k] = f
		}
		return out, true
	default:
		return nil, false
	}
}
