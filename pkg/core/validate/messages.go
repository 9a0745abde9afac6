// Package validate implements the schema-driven input validation layer in
// front of the valuation calculators: numeric sanitization, type and range
// checks against per-method declarative schemas, and cross-field business
// rules, all reported as ordered, severity-tagged diagnostics with stable
// machine-readable codes.
package validate

// Severity classifies a validation message. Only errors block calculation;
// warnings and infos are advisory.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Stable machine-readable message codes. Callers and tests branch on these,
// never on message text.
const (
	CodeRequiredField     = "REQUIRED_FIELD"
	CodeInvalidFormat     = "INVALID_FORMAT"
	CodeInvalidNumber     = "INVALID_NUMBER"
	CodeValueTooLow       = "VALUE_TOO_LOW"
	CodeValueTooHigh      = "VALUE_TOO_HIGH"
	CodeZeroValue         = "ZERO_VALUE"
	CodeLargeValue        = "LARGE_VALUE"
	CodeEmptyList         = "EMPTY_LIST"
	CodeTooManyPeriods    = "TOO_MANY_PERIODS"
	CodeHighNegativeFlows = "HIGH_NEGATIVE_FLOWS"
	CodeHighGrowth        = "HIGH_GROWTH"
	CodeRateRelationship  = "RATE_RELATIONSHIP_ERROR"
	CodeLowRateSpread     = "LOW_RATE_SPREAD"
	CodeUnknownMethod     = "UNKNOWN_METHOD"
	CodeInvalidSector     = "INVALID_SECTOR"
	CodeInvalidMetric     = "INVALID_METRIC"
	CodeHighSectorMult    = "HIGH_SECTOR_MULTIPLE"
	CodeWeightSum         = "WEIGHT_SUM_ERROR"
	CodeMissingCriterion  = "MISSING_CRITERION"
	CodeUnknownCriterion  = "UNKNOWN_CRITERION"
	CodeLowScores         = "LOW_SCORES"
	CodeHighScores        = "HIGH_SCORES"
	CodeHighRolloutScore  = "HIGH_ROLLOUT_SCORE"
	CodeValueEstimate     = "VALUE_ESTIMATE"
	CodeHighRisk          = "HIGH_RISK"
	CodeLowRisk           = "LOW_RISK"
	CodeHighExitMultiple  = "HIGH_EXIT_MULTIPLE"
	CodeHighReturn        = "HIGH_RETURN_EXPECTATION"
	CodeInvestmentExceeds = "INVESTMENT_EXCEEDS_VALUE"
)

// Message is one field-level diagnostic.
type Message struct {
	Field          string      `json:"field"`
	Text           string      `json:"message"`
	Severity       Severity    `json:"severity"`
	Code           string      `json:"code"`
	SuggestedValue interface{} `json:"suggested_value,omitempty"`
}

// Outcome is the full result of validating one request. Sanitized is only
// populated when no error-severity message was produced.
type Outcome struct {
	IsValid   bool                   `json:"is_valid"`
	Messages  []Message              `json:"messages"`
	Sanitized map[string]interface{} `json:"sanitized_data,omitempty"`
}

// Errors returns the error-severity messages in order.
func (o Outcome) Errors() []Message { return o.filter(SeverityError) }

// Warnings returns the warning-severity messages in order.
func (o Outcome) Warnings() []Message { return o.filter(SeverityWarning) }

func (o Outcome) filter(sev Severity) []Message {
	var out []Message
	for _, m := range o.Messages {
		if m.Severity == sev {
			out = append(out, m)
		}
	}
	return out
}

// HasCode reports whether any message carries the given code.
func (o Outcome) HasCode(code string) bool {
	for _, m := range o.Messages {
		if m.Code == code {
			return true
		}
	}
	return false
}

// collector accumulates messages during one validation pass.
type collector struct {
	messages []Message
}

func (c *collector) add(sev Severity, field, code, text string, suggested interface{}) {
	c.messages = append(c.messages, Message{
		Field:          field,
		Text:           text,
		Severity:       sev,
		Code:           code,
		SuggestedValue: suggested,
	})
}

func (c *collector) errorMsg(field, code, text string) {
	c.add(SeverityError, field, code, text, nil)
}

func (c *collector) errorWithSuggestion(field, code, text string, suggested interface{}) {
	c.add(SeverityError, field, code, text, suggested)
}

func (c *collector) warn(field, code, text string) {
	c.add(SeverityWarning, field, code, text, nil)
}

func (c *collector) info(field, code, text string) {
	c.add(SeverityInfo, field, code, text, nil)
}

func (c *collector) hasErrors() bool {
	for _, m := range c.messages {
		if m.Severity == SeverityError {
			return true
		}
	}
	return false
}
