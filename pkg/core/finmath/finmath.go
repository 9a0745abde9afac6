// Package finmath provides the stateless numeric primitives shared by the
// valuation calculators: present value of a cash flow series, net present
// value, and internal rate of return via Newton-Raphson iteration.
//
// Every function is pure: it reads only its arguments and returns freshly
// allocated results, so concurrent use needs no coordination.
package finmath

import (
	"fmt"
	"math"
)

// Solver defaults for InternalRateOfReturn.
const (
	IRRSeed          = 0.10
	IRRMaxIterations = 100
	IRRTolerance     = 1e-6

	// derivativeFloor guards the Newton step against division blow-up
	// when the NPV curve flattens out.
	derivativeFloor = 1e-12
)

// DomainError marks an input that makes a formula mathematically undefined
// (as opposed to merely out of a recommended range).
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string { return e.Msg }

// PresentValueSeries discounts each projected cash flow back to today:
//
//	pv[t] = cashFlows[t] / (1+rate)^(t+1)
//
// The series is 1-indexed in time: the first element is one full period out.
func PresentValueSeries(cashFlows []float64, rate float64) ([]float64, error) {
	if len(cashFlows) == 0 {
		return nil, &DomainError{Msg: "at least one cash flow is required"}
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, &DomainError{Msg: "discount rate must be a finite number"}
	}
	if rate <= -1 {
		return nil, &DomainError{Msg: fmt.Sprintf("discount rate must be greater than -100%% (got %.4f)", rate)}
	}

	pvs := make([]float64, len(cashFlows))
	for i, cf := range cashFlows {
		if math.IsNaN(cf) || math.IsInf(cf, 0) {
			return nil, &DomainError{Msg: fmt.Sprintf("cash flow for year %d is not a finite number", i+1)}
		}
		pvs[i] = cf / math.Pow(1.0+rate, float64(i+1))
	}
	return pvs, nil
}

// NetPresentValue is the discounted sum of the cash flow series minus the
// initial outlay at t=0. Pass initialInvestment=0 when there is no outlay.
func NetPresentValue(cashFlows []float64, rate, initialInvestment float64) (float64, error) {
	pvs, err := PresentValueSeries(cashFlows, rate)
	if err != nil {
		return 0, err
	}

	npv := -initialInvestment
	for _, pv := range pvs {
		npv += pv
	}
	return npv, nil
}

// IRRStatus reports how the IRR search terminated.
type IRRStatus int

const (
	// IRRConverged means a root was found within tolerance.
	IRRConverged IRRStatus = iota
	// IRRNotConverged means the iteration budget was exhausted or the
	// search left the valid rate domain without reaching a root.
	IRRNotConverged
	// IRRDegenerateDerivative means the NPV curve was too flat to take a
	// Newton step; no rate is reported.
	IRRDegenerateDerivative
)

func (s IRRStatus) String() string {
	switch s {
	case IRRConverged:
		return "converged"
	case IRRNotConverged:
		return "not_converged"
	case IRRDegenerateDerivative:
		return "degenerate_derivative"
	default:
		return fmt.Sprintf("IRRStatus(%d)", int(s))
	}
}

// IRRResult is the explicit outcome of the IRR search. Rate is only
// meaningful when Status is IRRConverged; there is no sentinel value.
type IRRResult struct {
	Rate       float64
	Status     IRRStatus
	Iterations int
}

// Converged reports whether Rate holds a valid root.
func (r IRRResult) Converged() bool { return r.Status == IRRConverged }

// InternalRateOfReturn searches for the rate at which the net present value
// of the cash flow series (net of the initial investment) is zero, using
// Newton-Raphson iteration from a fixed 10% seed with the closed-form
// derivative of the NPV polynomial.
//
// maxIterations and tolerance fall back to IRRMaxIterations and IRRTolerance
// when non-positive.
//
// Cash flow sequences with multiple sign changes can admit several
// mathematically valid roots; this routine reports only the root reached
// from the seed trajectory and does not enumerate alternatives.
func InternalRateOfReturn(cashFlows []float64, initialInvestment float64, maxIterations int, tolerance float64) IRRResult {
	if maxIterations <= 0 {
		maxIterations = IRRMaxIterations
	}
	if tolerance <= 0 {
		tolerance = IRRTolerance
	}
	if len(cashFlows) == 0 {
		return IRRResult{Status: IRRNotConverged}
	}
	for _, cf := range cashFlows {
		if math.IsNaN(cf) || math.IsInf(cf, 0) {
			return IRRResult{Status: IRRNotConverged}
		}
	}

	rate := IRRSeed
	for iter := 1; iter <= maxIterations; iter++ {
		if rate <= -1 {
			// Left the valid domain; the seed trajectory found no root.
			return IRRResult{Rate: rate, Status: IRRNotConverged, Iterations: iter}
		}

		// f(r)  = -I + sum cf[t] / (1+r)^(t+1)
		// f'(r) =      sum -(t+1) * cf[t] / (1+r)^(t+2)
		f := -initialInvestment
		df := 0.0
		for t, cf := range cashFlows {
			power := float64(t + 1)
			base := math.Pow(1.0+rate, power)
			f += cf / base
			df -= power * cf / (base * (1.0 + rate))
		}

		if math.Abs(f) < tolerance {
			return IRRResult{Rate: rate, Status: IRRConverged, Iterations: iter}
		}
		if math.Abs(df) < derivativeFloor {
			return IRRResult{Status: IRRDegenerateDerivative, Iterations: iter}
		}

		step := f / df
		rate -= step
		if math.Abs(step) < tolerance {
			return IRRResult{Rate: rate, Status: IRRConverged, Iterations: iter}
		}
	}

	return IRRResult{Rate: rate, Status: IRRNotConverged, Iterations: maxIterations}
}
