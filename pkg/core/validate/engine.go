package validate

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/refdata"
	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/valuation"
)

// largeValueThreshold triggers an advisory warning for suspiciously large
// monetary inputs.
const largeValueThreshold = 1_000_000_000

// maxProjectionYears is the advisory ceiling on cash flow horizon length.
const maxProjectionYears = 15

// minRateSpread is the advisory minimum spread between the discount rate
// and the terminal growth rate.
const minRateSpread = 0.02

// Engine validates raw method inputs against the per-method schemas. It is
// stateless across calls and safe for concurrent use.
type Engine struct {
	ref     *refdata.Tables
	schemas map[valuation.Method]MethodSchema
}

// NewEngine builds a validation engine over the given reference tables.
// A nil argument selects the compiled-in defaults.
func NewEngine(ref *refdata.Tables) *Engine {
	if ref == nil {
		ref = refdata.Default()
	}
	return &Engine{ref: ref, schemas: buildSchemas(ref)}
}

// MethodRequirements returns the declarative schema of one method, purely
// as metadata for form-building collaborators. It performs no validation.
func (e *Engine) MethodRequirements(method valuation.Method) (MethodSchema, bool) {
	schema, ok := e.schemas[method]
	return schema, ok
}

// MethodSchemas returns all method schemas in presentation order.
func (e *Engine) MethodSchemas() []MethodSchema {
	out := make([]MethodSchema, 0, len(e.schemas))
	for _, m := range valuation.Methods() {
		out = append(out, e.schemas[m])
	}
	return out
}

// ValidateMethodInputs checks a raw field payload against the method's
// schema and business rules. The sanitized payload is only populated when
// no error-severity message was produced; warnings and infos never block.
func (e *Engine) ValidateMethodInputs(method valuation.Method, raw map[string]interface{}) Outcome {
	schema, ok := e.schemas[method]
	if !ok {
		return Outcome{
			IsValid: false,
			Messages: []Message{{
				Field:    "method",
				Text:     fmt.Sprintf("unknown valuation method: %s", method),
				Severity: SeverityError,
				Code:     CodeUnknownMethod,
			}},
		}
	}

	c := &collector{}
	sanitized := map[string]interface{}{}

	for _, spec := range schema.Fields {
		value, present := raw[spec.Name]
		if !present || value == nil {
			if spec.Required {
				c.errorMsg(spec.Name, CodeRequiredField, fmt.Sprintf("%s is required", spec.Name))
			}
			continue
		}

		switch spec.Kind {
		case KindNumber:
			if v, ok := e.checkNumber(c, spec, spec.Name, value); ok {
				sanitized[spec.Name] = v
			}
		case KindInteger:
			if v, ok := e.checkNumber(c, spec, spec.Name, value); ok {
				sanitized[spec.Name] = math.Trunc(v)
			}
		case KindSeries:
			if v, ok := e.checkSeries(c, spec, value); ok {
				sanitized[spec.Name] = v
			}
		case KindScoreMap:
			if v, ok := e.checkKeyedNumbers(c, spec, value); ok {
				sanitized[spec.Name] = v
			}
		case KindWeightMap:
			if v, ok := e.checkKeyedNumbers(c, spec, value); ok {
				var sum float64
				for _, w := range v {
					sum += w
				}
				if math.Abs(sum-1.0) > refdata.WeightSumTolerance {
					c.errorMsg(spec.Name, CodeWeightSum,
						fmt.Sprintf("weights must sum to 1.0 (got %.6f)", sum))
				} else {
					sanitized[spec.Name] = v
				}
			}
		case KindChoice:
			if v, ok := e.checkChoice(c, spec, value); ok {
				sanitized[spec.Name] = v
			}
		}
	}

	e.applyBusinessRules(c, method, sanitized)

	outcome := Outcome{IsValid: !c.hasErrors(), Messages: c.messages}
	if outcome.IsValid {
		outcome.Sanitized = sanitized
	}
	return outcome
}

// checkNumber sanitizes and range-checks a single numeric field.
func (e *Engine) checkNumber(c *collector, spec FieldSpec, field string, raw interface{}) (float64, bool) {
	v, ok := CleanNumber(raw)
	if !ok {
		c.errorMsg(field, CodeInvalidFormat, fmt.Sprintf("%s must be a valid number", field))
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		c.errorMsg(field, CodeInvalidNumber, fmt.Sprintf("%s must be a finite number", field))
		return 0, false
	}
	if v < spec.Min {
		c.errorWithSuggestion(field, CodeValueTooLow,
			fmt.Sprintf("%s must be at least %v", field, spec.Min), spec.Min)
		return 0, false
	}
	if spec.Max > spec.Min && v > spec.Max {
		c.errorWithSuggestion(field, CodeValueTooHigh,
			fmt.Sprintf("%s must not exceed %v", field, spec.Max), spec.Max)
		return 0, false
	}

	if v == 0 && spec.Min == 0 {
		c.warn(field, CodeZeroValue, fmt.Sprintf("zero %s may affect calculation accuracy", field))
	}
	if v > largeValueThreshold {
		c.warn(field, CodeLargeValue, fmt.Sprintf("very large value for %s - please verify", field))
	}
	return v, true
}

// checkSeries sanitizes an ordered cash flow list and runs its advisory
// pattern checks.
func (e *Engine) checkSeries(c *collector, spec FieldSpec, raw interface{}) ([]float64, bool) {
	items, ok := asSlice(raw)
	if !ok {
		c.errorMsg(spec.Name, CodeInvalidFormat, fmt.Sprintf("%s must be a list of numbers", spec.Name))
		return nil, false
	}
	if len(items) == 0 {
		c.errorMsg(spec.Name, CodeEmptyList, "at least one cash flow projection is required")
		return nil, false
	}
	if len(items) > maxProjectionYears {
		c.warn(spec.Name, CodeTooManyPeriods,
			fmt.Sprintf("more than %d years may reduce accuracy", maxProjectionYears))
	}

	flows := make([]float64, 0, len(items))
	for i, item := range items {
		elementField := fmt.Sprintf("%s[%d]", spec.Name, i+1)
		v, ok := CleanNumber(item)
		if !ok {
			c.errorMsg(elementField, CodeInvalidFormat, fmt.Sprintf("%s must be a valid number", elementField))
			return nil, false
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			c.errorMsg(elementField, CodeInvalidNumber, fmt.Sprintf("%s must be a finite number", elementField))
			return nil, false
		}
		if v < spec.Min {
			c.errorWithSuggestion(elementField, CodeValueTooLow,
				fmt.Sprintf("%s must be at least %v", elementField, spec.Min), spec.Min)
			return nil, false
		}
		if v > spec.Max {
			c.errorWithSuggestion(elementField, CodeValueTooHigh,
				fmt.Sprintf("%s must not exceed %v", elementField, spec.Max), spec.Max)
			return nil, false
		}
		flows = append(flows, v)
	}

	negatives := 0
	for _, cf := range flows {
		if cf < 0 {
			negatives++
		}
	}
	if float64(negatives) > float64(len(flows))*0.6 {
		c.warn(spec.Name, CodeHighNegativeFlows, "high proportion of negative cash flows detected")
	}

	for i := 1; i < len(flows); i++ {
		if flows[i-1] > 0 && flows[i]/flows[i-1]-1 > 5.0 {
			c.warn(spec.Name, CodeHighGrowth, "extremely high growth rates detected")
			break
		}
	}

	return flows, true
}

// checkKeyedNumbers sanitizes a catalogue-keyed map of numbers (scores,
// ratings, or weights), enforcing key coverage where the schema demands it.
func (e *Engine) checkKeyedNumbers(c *collector, spec FieldSpec, raw interface{}) (map[string]float64, bool) {
	entries, ok := asMap(raw)
	if !ok {
		c.errorMsg(spec.Name, CodeInvalidFormat, fmt.Sprintf("%s must map criteria to numbers", spec.Name))
		return nil, false
	}

	known := make(map[string]bool, len(spec.Keys))
	for _, key := range spec.Keys {
		known[key] = true
	}

	// Deterministic message order for unknown keys.
	var unknown []string
	for key := range entries {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		c.warn(fmt.Sprintf("%s.%s", spec.Name, key), CodeUnknownCriterion,
			fmt.Sprintf("%q is not a known criterion and was ignored", key))
	}

	out := make(map[string]float64, len(entries))
	valid := true
	for _, key := range spec.Keys {
		entryField := fmt.Sprintf("%s.%s", spec.Name, key)
		value, present := entries[key]
		if !present {
			if spec.RequireAllKeys {
				c.errorMsg(entryField, CodeMissingCriterion,
					fmt.Sprintf("missing required criterion: %s", key))
				valid = false
			}
			continue
		}

		v, ok := CleanNumber(value)
		if !ok {
			c.errorMsg(entryField, CodeInvalidFormat, fmt.Sprintf("%s must be a valid number", entryField))
			valid = false
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			c.errorMsg(entryField, CodeInvalidNumber, fmt.Sprintf("%s must be a finite number", entryField))
			valid = false
			continue
		}
		if v < spec.Min {
			c.errorWithSuggestion(entryField, CodeValueTooLow,
				fmt.Sprintf("%s must be at least %v", entryField, spec.Min), spec.Min)
			valid = false
			continue
		}
		if v > spec.Max {
			c.errorWithSuggestion(entryField, CodeValueTooHigh,
				fmt.Sprintf("%s must not exceed %v", entryField, spec.Max), spec.Max)
			valid = false
			continue
		}
		out[key] = v
	}

	if !spec.RequireAllKeys && len(out) == 0 && valid {
		c.errorMsg(spec.Name, CodeRequiredField, fmt.Sprintf("at least one %s entry is required", spec.Name))
		valid = false
	}

	if !valid {
		return nil, false
	}
	return out, true
}

// checkChoice validates a string field against its allowed options.
func (e *Engine) checkChoice(c *collector, spec FieldSpec, raw interface{}) (string, bool) {
	s, ok := raw.(string)
	if !ok {
		c.errorMsg(spec.Name, CodeInvalidFormat, fmt.Sprintf("%s must be a string", spec.Name))
		return "", false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		c.errorMsg(spec.Name, CodeRequiredField, fmt.Sprintf("%s is required", spec.Name))
		return "", false
	}

	for _, choice := range spec.Choices {
		if s == choice {
			return s, true
		}
	}

	code := CodeInvalidFormat
	switch spec.Name {
	case "sector":
		code = CodeInvalidSector
	case "metric_type":
		code = CodeInvalidMetric
	}
	suggested := interface{}(nil)
	if len(spec.Choices) > 0 {
		suggested = spec.Choices[0]
	}
	c.errorWithSuggestion(spec.Name, code,
		fmt.Sprintf("invalid %s %q; must be one of: %s", spec.Name, s, strings.Join(spec.Choices, ", ")),
		suggested)
	return "", false
}

// applyBusinessRules runs the cross-field checks of one method over the
// already-sanitized fields. Rules only fire when every field they touch
// sanitized cleanly.
func (e *Engine) applyBusinessRules(c *collector, method valuation.Method, sanitized map[string]interface{}) {
	switch method {
	case valuation.MethodDCF:
		rate, okRate := sanitized["discount_rate"].(float64)
		growth, okGrowth := sanitized["terminal_growth"].(float64)
		if okRate && okGrowth {
			if rate <= growth {
				c.errorMsg("discount_rate", CodeRateRelationship,
					"discount rate must be higher than terminal growth rate")
			} else if rate-growth < minRateSpread {
				c.warn("discount_rate", CodeLowRateSpread,
					"small spread between discount and terminal growth rates")
			}
		}

	case valuation.MethodMarketMultiples:
		sector, okSector := sanitized["sector"].(string)
		metricType, okMetric := sanitized["metric_type"].(string)
		multiple, okMultiple := sanitized["multiple"].(float64)
		if okSector && okMetric && okMultiple {
			if benchmark, ok := e.ref.Multiple(sector, metricType); ok && multiple > benchmark*2 {
				c.warn("multiple", CodeHighSectorMult,
					fmt.Sprintf("multiple is well above the %s %s benchmark of %.1fx", sector, metricType, benchmark))
			}
		}

	case valuation.MethodScorecard:
		if scores, ok := sanitized["criteria_scores"].(map[string]float64); ok && len(scores) > 0 {
			var sum float64
			for _, s := range scores {
				sum += s
			}
			avg := sum / float64(len(scores))
			if avg < 1.5 {
				c.warn("criteria_scores", CodeLowScores, "overall low scores may indicate high risk")
			} else if avg > 4.5 {
				c.warn("criteria_scores", CodeHighScores, "very high scores - ensure realistic assessment")
			}
		}

	case valuation.MethodBerkus:
		scores, ok := sanitized["criteria_scores"].(map[string]float64)
		if !ok {
			return
		}
		if rollout, present := scores["product_rollout"]; present && rollout > 3 {
			c.warn("criteria_scores.product_rollout", CodeHighRolloutScore,
				"high rollout score - ensure appropriate for a pre-revenue stage")
		}
		var estimate float64
		for _, criterion := range e.ref.BerkusCriteria() {
			if score, present := scores[criterion.Key]; present {
				estimate += score / 5.0 * criterion.MaxValue
			}
		}
		c.info("criteria_scores", CodeValueEstimate,
			fmt.Sprintf("estimated total value: %.0f", estimate))

	case valuation.MethodRiskFactor:
		if ratings, ok := sanitized["risk_factors"].(map[string]float64); ok && len(ratings) > 0 {
			var sum float64
			for _, r := range ratings {
				sum += r
			}
			avg := sum / float64(len(ratings))
			if avg < -1 {
				c.warn("risk_factors", CodeHighRisk, "high overall risk profile detected")
			} else if avg > 1 {
				c.warn("risk_factors", CodeLowRisk, "very positive risk profile - verify assessments")
			}
		}

	case valuation.MethodVentureCapital:
		requiredReturn, okReturn := sanitized["required_return"].(float64)
		years, okYears := sanitized["years_to_exit"].(float64)
		if okReturn && okYears && math.Pow(1+requiredReturn, years) > 50 {
			c.warn("required_return", CodeHighReturn,
				"very high return expectations may be unrealistic")
		}
		if multiple, ok := sanitized["exit_multiple"].(float64); ok && multiple > 10 {
			c.warn("exit_multiple", CodeHighExitMultiple,
				"high exit multiple - verify market conditions")
		}

		revenue, okRevenue := sanitized["expected_revenue"].(float64)
		exitMultiple, okMultiple := sanitized["exit_multiple"].(float64)
		investment, okInvestment := sanitized["investment_needed"].(float64)
		if okRevenue && okMultiple && okReturn && okYears && okInvestment {
			postMoney := revenue * exitMultiple / math.Pow(1+requiredReturn, years)
			if investment > postMoney {
				c.errorMsg("investment_needed", CodeInvestmentExceeds,
					fmt.Sprintf("investment of %.0f exceeds the implied post-money valuation of %.0f", investment, postMoney))
			}
		}
	}
}

func asSlice(raw interface{}) ([]interface{}, bool) {
	switch v := raw.(type) {
	case []interface{}:
		return v, true
	case []float64:
		out := make([]interface{}, len(v))
		for i, f := range v {
			out[i] = f
		}
		return out, true
	case []int:
		out := make([]interface{}, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out, true
	case []string:
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func asMap(raw interface{}) (map[string]interface{}, bool) {
	switch v := raw.(type) {
	case map[string]interface{}:
		return v, true
	case map[string]float64:
		out := make(map[string]interface{}, len(v))
		for k, f := range v {
			out[k] = f
		}
		return out, true
	case map[string]int:
		out := make(map[string]interface{}, len(v))
		for k, n := range v {
			out[k] = n
		}
		return out, true
	default:
		return nil, false
	}
}
