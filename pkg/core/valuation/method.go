package valuation

// Method identifies one of the supported valuation methods. The string
// values are the canonical wire names used by requests and results.
type Method string

const (
	MethodDCF             Method = "DCF"
	MethodMarketMultiples Method = "Market Multiples"
	MethodScorecard       Method = "Scorecard"
	MethodBerkus          Method = "Berkus"
	MethodRiskFactor      Method = "Risk Factor Summation"
	MethodVentureCapital  Method = "Venture Capital"
)

// Methods returns every supported method in presentation order.
func Methods() []Method {
	return []Method{
		MethodDCF,
		MethodMarketMultiples,
		MethodScorecard,
		MethodBerkus,
		MethodRiskFactor,
		MethodVentureCapital,
	}
}

// ParseMethod maps a wire name to its Method, reporting whether the name
// is known. Matching is exact; the canonical names are what the
// requirements endpoint advertises.
func ParseMethod(name string) (Method, bool) {
	for _, m := range Methods() {
		if string(m) == name {
			return m, true
		}
	}
	return "", false
}
