package valuation

import "math"

// VentureCapitalInput holds the inputs for the Venture Capital method.
// InvestmentNeeded is optional; when present it drives the deal-term block
// of the breakdown (ownership, pre-/post-money).
type VentureCapitalInput struct {
	ExpectedRevenue  float64 // revenue at exit
	ExitMultiple     float64 // revenue multiple at exit
	RequiredReturn   float64 // annual required return, as a decimal
	YearsToExit      int
	InvestmentNeeded *float64
}

// VCDealTerms is the optional deal-structure block of the breakdown.
type VCDealTerms struct {
	InvestmentNeeded   float64 `json:"investment_needed"`
	OwnershipFraction  float64 `json:"ownership_percentage"`
	PreMoneyValuation  float64 `json:"pre_money_valuation"`
	PostMoneyValuation float64 `json:"post_money_valuation"`
}

// VentureCapitalBreakdown carries the exit math and, when an investment was
// supplied, the resulting deal terms.
type VentureCapitalBreakdown struct {
	ExitValue      float64      `json:"exit_value"`
	PresentValue   float64      `json:"present_value"`
	RequiredReturn float64      `json:"required_return"`
	YearsToExit    int          `json:"years_to_exit"`
	Deal           *VCDealTerms `json:"deal,omitempty"`
}

// VentureCapital discounts the projected exit value back at the investor's
// required return:
//
//	exitValue    = expectedRevenue * exitMultiple
//	presentValue = exitValue / (1+requiredReturn)^years
//
// When an investment amount is supplied, presentValue is treated as the
// post-money valuation and the implied ownership and pre-money valuation
// are derived. An investment larger than the post-money valuation implies
// ownership above 100% and fails the calculation.
func (e *Engine) VentureCapital(input VentureCapitalInput) Result {
	if !isFinite(input.ExpectedRevenue) || !isFinite(input.ExitMultiple) || !isFinite(input.RequiredReturn) {
		return failure(MethodVentureCapital, "inputs must be finite numbers")
	}
	if input.ExpectedRevenue < 0 {
		return failure(MethodVentureCapital, "expected revenue cannot be negative")
	}
	if input.ExitMultiple <= 0 {
		return failure(MethodVentureCapital, "exit multiple must be positive")
	}
	if input.RequiredReturn <= -1 {
		return failure(MethodVentureCapital, "required return must be greater than -100%%")
	}
	if input.YearsToExit < 0 {
		return failure(MethodVentureCapital, "years to exit cannot be negative")
	}

	exitValue := input.ExpectedRevenue * input.ExitMultiple
	presentValue := exitValue / math.Pow(1+input.RequiredReturn, float64(input.YearsToExit))

	breakdown := VentureCapitalBreakdown{
		ExitValue:      exitValue,
		PresentValue:   presentValue,
		RequiredReturn: input.RequiredReturn,
		YearsToExit:    input.YearsToExit,
	}

	if input.InvestmentNeeded != nil {
		investment := *input.InvestmentNeeded
		if !isFinite(investment) || investment < 0 {
			return failure(MethodVentureCapital, "investment amount cannot be negative")
		}
		if presentValue <= 0 {
			return failure(MethodVentureCapital, "present value must be positive to size an investment")
		}
		if investment > presentValue {
			return failure(MethodVentureCapital, "investment of %.2f exceeds the post-money valuation of %.2f", investment, presentValue)
		}

		breakdown.Deal = &VCDealTerms{
			InvestmentNeeded:   investment,
			OwnershipFraction:  investment / presentValue,
			PreMoneyValuation:  presentValue - investment,
			PostMoneyValuation: presentValue,
		}
	}

	return success(MethodVentureCapital, presentValue, breakdown)
}
