package valuation

import (
	"fmt"
	"math"
)

// Result is the uniform envelope every calculator returns. Success results
// carry the valuation and a method-specific breakdown; failures carry a
// human-readable error and nothing else. Calculators never panic and never
// return partial numbers on failure.
type Result struct {
	Success   bool        `json:"success"`
	Valuation float64     `json:"valuation,omitempty"`
	Method    Method      `json:"method"`
	Breakdown interface{} `json:"breakdown,omitempty"`
	Error     string      `json:"error,omitempty"`
}

func success(method Method, valuation float64, breakdown interface{}) Result {
	return Result{
		Success:   true,
		Valuation: valuation,
		Method:    method,
		Breakdown: breakdown,
	}
}

func failure(method Method, format string, args ...interface{}) Result {
	return Result{
		Success: false,
		Method:  method,
		Error:   fmt.Sprintf(format, args...),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
