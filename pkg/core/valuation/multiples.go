package valuation

// MarketMultiplesInput holds the inputs for a market multiples valuation.
// Sector and MetricType are descriptive; the multiple itself is what prices
// the company.
type MarketMultiplesInput struct {
	MetricValue float64
	Multiple    float64
	MetricType  string // e.g. "Revenue" or "EBITDA"
	Sector      string
}

// MarketMultiplesBreakdown echoes the priced inputs.
type MarketMultiplesBreakdown struct {
	MetricValue float64 `json:"metric"`
	Multiple    float64 `json:"multiple"`
	MetricType  string  `json:"metric_type"`
	Sector      string  `json:"sector,omitempty"`
}

// MarketMultiples values the company as metricValue * multiple.
func (e *Engine) MarketMultiples(input MarketMultiplesInput) Result {
	if !isFinite(input.MetricValue) || !isFinite(input.Multiple) {
		return failure(MethodMarketMultiples, "metric value and multiple must be finite numbers")
	}
	if input.MetricValue < 0 {
		return failure(MethodMarketMultiples, "financial metric cannot be negative")
	}
	if input.Multiple <= 0 {
		return failure(MethodMarketMultiples, "multiple must be positive")
	}

	valuation := input.MetricValue * input.Multiple

	return success(MethodMarketMultiples, valuation, MarketMultiplesBreakdown{
		MetricValue: input.MetricValue,
		Multiple:    input.Multiple,
		MetricType:  input.MetricType,
		Sector:      input.Sector,
	})
}
