package validate

import (
	"math"
	"strconv"
	"strings"
)

// CleanNumber coerces a raw field value to a float64, stripping the
// decoration users type into money and rate fields: currency symbols,
// thousands separators, whitespace, a trailing percent sign (divides by
// 100), and K/M/B magnitude suffixes. It reports false when non-numeric
// residue remains.
func CleanNumber(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		return cleanNumericString(v)
	default:
		return 0, false
	}
}

func cleanNumericString(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return 0, false
	}

	// Strip currency symbols, thousands separators, and inner whitespace.
	replacer := strings.NewReplacer("€", "", "$", "", "£", "", ",", "", " ", "", "_", "")
	cleaned = replacer.Replace(cleaned)

	percent := false
	if strings.HasSuffix(cleaned, "%") {
		percent = true
		cleaned = strings.TrimSuffix(cleaned, "%")
	}

	multiplier := 1.0
	switch {
	case hasSuffixFold(cleaned, "K"):
		multiplier = 1_000
		cleaned = cleaned[:len(cleaned)-1]
	case hasSuffixFold(cleaned, "M"):
		multiplier = 1_000_000
		cleaned = cleaned[:len(cleaned)-1]
	case hasSuffixFold(cleaned, "B"):
		multiplier = 1_000_000_000
		cleaned = cleaned[:len(cleaned)-1]
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}

	value *= multiplier
	if percent {
		value /= 100
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) > len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
