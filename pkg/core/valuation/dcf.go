package valuation

import (
	"math"

	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/finmath"
)

// DCFInput holds the inputs for a Discounted Cash Flow valuation.
type DCFInput struct {
	CashFlows      []float64
	DiscountRate   float64 // WACC, as a decimal (0.12 = 12%)
	TerminalGrowth float64 // perpetuity growth, as a decimal

	// GrowthRate is accepted for compatibility with the legacy request
	// shape and does not participate in the calculation.
	GrowthRate float64
}

// DCFBreakdown carries every intermediate quantity of the DCF calculation.
type DCFBreakdown struct {
	DiscountedFlows []float64 `json:"discounted_flows"`
	OperatingValue  float64   `json:"operating_value"`
	TerminalValue   float64   `json:"terminal_value"`
	TerminalPV      float64   `json:"terminal_pv"`
	DiscountRate    float64   `json:"discount_rate"`
	TerminalGrowth  float64   `json:"terminal_growth"`
}

// DCF values the company as the present value of its projected cash flows
// plus a Gordon-growth terminal value:
//
//	pv[t]         = cf[t] / (1+r)^(t+1)
//	operating     = sum(pv)
//	terminalValue = cf[last] * (1+g) / (r-g)
//	terminalPV    = terminalValue / (1+r)^n
func (e *Engine) DCF(input DCFInput) Result {
	if !isFinite(input.DiscountRate) || !isFinite(input.TerminalGrowth) {
		return failure(MethodDCF, "discount rate and terminal growth must be finite numbers")
	}
	if input.DiscountRate <= input.TerminalGrowth {
		return failure(MethodDCF, "discount rate must be higher than terminal growth rate")
	}

	pvs, err := finmath.PresentValueSeries(input.CashFlows, input.DiscountRate)
	if err != nil {
		return failure(MethodDCF, "%v", err)
	}

	var operating float64
	for _, pv := range pvs {
		operating += pv
	}

	n := len(input.CashFlows)
	terminalCF := input.CashFlows[n-1] * (1 + input.TerminalGrowth)
	terminalValue := terminalCF / (input.DiscountRate - input.TerminalGrowth)
	terminalPV := terminalValue / math.Pow(1+input.DiscountRate, float64(n))

	total := operating + terminalPV

	return success(MethodDCF, total, DCFBreakdown{
		DiscountedFlows: pvs,
		OperatingValue:  operating,
		TerminalValue:   terminalValue,
		TerminalPV:      terminalPV,
		DiscountRate:    input.DiscountRate,
		TerminalGrowth:  input.TerminalGrowth,
	})
}
