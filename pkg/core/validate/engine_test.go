package validate

import (
	"math"
	"testing"

	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/valuation"
)

func validDCFPayload() map[string]interface{} {
	return map[string]interface{}{
		"cash_flows":      []interface{}{100000.0, 120000.0, 140000.0},
		"discount_rate":   0.12,
		"terminal_growth": 0.03,
	}
}

func TestValidateDCFHappyPath(t *testing.T) {
	engine := NewEngine(nil)

	outcome := engine.ValidateMethodInputs(valuation.MethodDCF, validDCFPayload())
	if !outcome.IsValid {
		t.Fatalf("expected valid outcome, got messages: %+v", outcome.Messages)
	}
	if len(outcome.Errors()) != 0 {
		t.Errorf("expected no errors, got %+v", outcome.Errors())
	}
	if outcome.Sanitized == nil {
		t.Fatal("valid outcome must carry sanitized data")
	}

	flows, ok := outcome.Sanitized["cash_flows"].([]float64)
	if !ok || len(flows) != 3 {
		t.Errorf("sanitized cash_flows = %#v, want []float64 of length 3", outcome.Sanitized["cash_flows"])
	}
	if rate, ok := outcome.Sanitized["discount_rate"].(float64); !ok || rate != 0.12 {
		t.Errorf("sanitized discount_rate = %#v, want 0.12", outcome.Sanitized["discount_rate"])
	}
}

func TestValidateSanitizesDecoratedStrings(t *testing.T) {
	engine := NewEngine(nil)

	outcome := engine.ValidateMethodInputs(valuation.MethodDCF, map[string]interface{}{
		"cash_flows":      []interface{}{"€100,000", "$120K", "140000"},
		"discount_rate":   "12%",
		"terminal_growth": "3%",
	})
	if !outcome.IsValid {
		t.Fatalf("expected valid outcome, got messages: %+v", outcome.Messages)
	}

	flows := outcome.Sanitized["cash_flows"].([]float64)
	if math.Abs(flows[0]-100000) > 1e-9 || math.Abs(flows[1]-120000) > 1e-9 {
		t.Errorf("sanitized flows = %v", flows)
	}
	if rate := outcome.Sanitized["discount_rate"].(float64); math.Abs(rate-0.12) > 1e-9 {
		t.Errorf("sanitized discount_rate = %v, want 0.12", rate)
	}
}

func TestValidateDCFMissingRequiredField(t *testing.T) {
	engine := NewEngine(nil)

	payload := validDCFPayload()
	delete(payload, "discount_rate")

	outcome := engine.ValidateMethodInputs(valuation.MethodDCF, payload)
	if outcome.IsValid {
		t.Fatal("expected invalid outcome")
	}
	if !outcome.HasCode(CodeRequiredField) {
		t.Errorf("expected %s, got %+v", CodeRequiredField, outcome.Messages)
	}
	if outcome.Sanitized != nil {
		t.Error("invalid outcome must not carry sanitized data")
	}
}

func TestValidateDCFRangeViolations(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("Discount rate too high", func(t *testing.T) {
		payload := validDCFPayload()
		payload["discount_rate"] = 0.75

		outcome := engine.ValidateMethodInputs(valuation.MethodDCF, payload)
		if outcome.IsValid {
			t.Fatal("expected invalid outcome")
		}
		if !outcome.HasCode(CodeValueTooHigh) {
			t.Errorf("expected %s, got %+v", CodeValueTooHigh, outcome.Messages)
		}
	})

	t.Run("Discount rate too low", func(t *testing.T) {
		payload := validDCFPayload()
		payload["discount_rate"] = 0.001

		outcome := engine.ValidateMethodInputs(valuation.MethodDCF, payload)
		if outcome.IsValid {
			t.Fatal("expected invalid outcome")
		}
		if !outcome.HasCode(CodeValueTooLow) {
			t.Errorf("expected %s, got %+v", CodeValueTooLow, outcome.Messages)
		}
	})

	t.Run("Suggested value accompanies range errors", func(t *testing.T) {
		payload := validDCFPayload()
		payload["discount_rate"] = 0.75

		outcome := engine.ValidateMethodInputs(valuation.MethodDCF, payload)
		for _, msg := range outcome.Errors() {
			if msg.Code == CodeValueTooHigh && msg.SuggestedValue == nil {
				t.Error("range error should suggest the nearest bound")
			}
		}
	})
}

func TestValidateDCFRateRelationship(t *testing.T) {
	engine := NewEngine(nil)

	payload := validDCFPayload()
	payload["discount_rate"] = 0.03
	payload["terminal_growth"] = 0.05

	outcome := engine.ValidateMethodInputs(valuation.MethodDCF, payload)
	if outcome.IsValid {
		t.Fatal("expected invalid outcome when rate <= growth")
	}
	if !outcome.HasCode(CodeRateRelationship) {
		t.Errorf("expected %s, got %+v", CodeRateRelationship, outcome.Messages)
	}
}

func TestValidateDCFLowSpreadIsOnlyAWarning(t *testing.T) {
	engine := NewEngine(nil)

	payload := validDCFPayload()
	payload["discount_rate"] = 0.06
	payload["terminal_growth"] = 0.05

	outcome := engine.ValidateMethodInputs(valuation.MethodDCF, payload)
	if !outcome.IsValid {
		t.Fatalf("warnings must not block validation: %+v", outcome.Messages)
	}
	if !outcome.HasCode(CodeLowRateSpread) {
		t.Errorf("expected %s warning, got %+v", CodeLowRateSpread, outcome.Messages)
	}
	if outcome.Sanitized == nil {
		t.Error("outcome with only warnings must still carry sanitized data")
	}
}

func TestValidateDCFEmptyCashFlows(t *testing.T) {
	engine := NewEngine(nil)

	payload := validDCFPayload()
	payload["cash_flows"] = []interface{}{}

	outcome := engine.ValidateMethodInputs(valuation.MethodDCF, payload)
	if outcome.IsValid {
		t.Fatal("expected invalid outcome")
	}
	if !outcome.HasCode(CodeEmptyList) {
		t.Errorf("expected %s, got %+v", CodeEmptyList, outcome.Messages)
	}
}

func TestValidateDCFElementErrorsNameTheYear(t *testing.T) {
	engine := NewEngine(nil)

	payload := validDCFPayload()
	payload["cash_flows"] = []interface{}{100000.0, "bogus"}

	outcome := engine.ValidateMethodInputs(valuation.MethodDCF, payload)
	if outcome.IsValid {
		t.Fatal("expected invalid outcome")
	}

	found := false
	for _, msg := range outcome.Errors() {
		if msg.Field == "cash_flows[2]" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an error on cash_flows[2], got %+v", outcome.Errors())
	}
}

func TestValidateMarketMultiples(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("Valid payload", func(t *testing.T) {
		outcome := engine.ValidateMethodInputs(valuation.MethodMarketMultiples, map[string]interface{}{
			"sector":       "SaaS",
			"metric_type":  "Revenue",
			"metric_value": 2000000.0,
			"multiple":     8.0,
		})
		if !outcome.IsValid {
			t.Fatalf("expected valid outcome, got %+v", outcome.Messages)
		}
	})

	t.Run("Unknown sector", func(t *testing.T) {
		outcome := engine.ValidateMethodInputs(valuation.MethodMarketMultiples, map[string]interface{}{
			"sector":       "Quantum",
			"metric_type":  "Revenue",
			"metric_value": 2000000.0,
			"multiple":     8.0,
		})
		if outcome.IsValid {
			t.Fatal("expected invalid outcome")
		}
		if !outcome.HasCode(CodeInvalidSector) {
			t.Errorf("expected %s, got %+v", CodeInvalidSector, outcome.Messages)
		}
	})

	t.Run("Unknown metric type", func(t *testing.T) {
		outcome := engine.ValidateMethodInputs(valuation.MethodMarketMultiples, map[string]interface{}{
			"sector":       "SaaS",
			"metric_type":  "Users",
			"metric_value": 2000000.0,
			"multiple":     8.0,
		})
		if outcome.IsValid {
			t.Fatal("expected invalid outcome")
		}
		if !outcome.HasCode(CodeInvalidMetric) {
			t.Errorf("expected %s, got %+v", CodeInvalidMetric, outcome.Messages)
		}
	})

	t.Run("Multiple far above benchmark warns", func(t *testing.T) {
		// SaaS Revenue benchmark is 8.2x; 20x is more than double.
		outcome := engine.ValidateMethodInputs(valuation.MethodMarketMultiples, map[string]interface{}{
			"sector":       "SaaS",
			"metric_type":  "Revenue",
			"metric_value": 2000000.0,
			"multiple":     20.0,
		})
		if !outcome.IsValid {
			t.Fatalf("warning must not block: %+v", outcome.Messages)
		}
		if !outcome.HasCode(CodeHighSectorMult) {
			t.Errorf("expected %s warning, got %+v", CodeHighSectorMult, outcome.Messages)
		}
	})
}

func scorecardPayload() map[string]interface{} {
	return map[string]interface{}{
		"base_valuation": 5000000.0,
		"criteria_scores": map[string]interface{}{
			"team": 3.0, "product": 3.0, "market": 3.0,
			"competition": 3.0, "financial": 3.0, "legal": 3.0,
		},
	}
}

func TestValidateScorecard(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("Valid payload", func(t *testing.T) {
		outcome := engine.ValidateMethodInputs(valuation.MethodScorecard, scorecardPayload())
		if !outcome.IsValid {
			t.Fatalf("expected valid outcome, got %+v", outcome.Messages)
		}
		scores, ok := outcome.Sanitized["criteria_scores"].(map[string]float64)
		if !ok || len(scores) != 6 {
			t.Errorf("sanitized criteria_scores = %#v", outcome.Sanitized["criteria_scores"])
		}
	})

	t.Run("Missing criterion", func(t *testing.T) {
		payload := scorecardPayload()
		delete(payload["criteria_scores"].(map[string]interface{}), "legal")

		outcome := engine.ValidateMethodInputs(valuation.MethodScorecard, payload)
		if outcome.IsValid {
			t.Fatal("expected invalid outcome")
		}
		if !outcome.HasCode(CodeMissingCriterion) {
			t.Errorf("expected %s, got %+v", CodeMissingCriterion, outcome.Messages)
		}
	})

	t.Run("Unknown criterion warns", func(t *testing.T) {
		payload := scorecardPayload()
		payload["criteria_scores"].(map[string]interface{})["vibes"] = 5.0

		outcome := engine.ValidateMethodInputs(valuation.MethodScorecard, payload)
		if !outcome.IsValid {
			t.Fatalf("unknown keys must only warn: %+v", outcome.Messages)
		}
		if !outcome.HasCode(CodeUnknownCriterion) {
			t.Errorf("expected %s warning, got %+v", CodeUnknownCriterion, outcome.Messages)
		}
	})

	t.Run("Weights not summing to one", func(t *testing.T) {
		payload := scorecardPayload()
		payload["criteria_weights"] = map[string]interface{}{
			"team": 0.3, "product": 0.1, "market": 0.1,
			"competition": 0.1, "financial": 0.1, "legal": 0.1,
		}

		outcome := engine.ValidateMethodInputs(valuation.MethodScorecard, payload)
		if outcome.IsValid {
			t.Fatal("expected invalid outcome")
		}
		if !outcome.HasCode(CodeWeightSum) {
			t.Errorf("expected %s, got %+v", CodeWeightSum, outcome.Messages)
		}
	})

	t.Run("Low scores warn", func(t *testing.T) {
		payload := map[string]interface{}{
			"base_valuation": 5000000.0,
			"criteria_scores": map[string]interface{}{
				"team": 1.0, "product": 1.0, "market": 1.0,
				"competition": 1.0, "financial": 1.0, "legal": 1.0,
			},
		}
		outcome := engine.ValidateMethodInputs(valuation.MethodScorecard, payload)
		if !outcome.IsValid {
			t.Fatalf("warning must not block: %+v", outcome.Messages)
		}
		if !outcome.HasCode(CodeLowScores) {
			t.Errorf("expected %s warning, got %+v", CodeLowScores, outcome.Messages)
		}
	})
}

func TestValidateBerkus(t *testing.T) {
	engine := NewEngine(nil)

	payload := map[string]interface{}{
		"criteria_scores": map[string]interface{}{
			"concept": 4.0, "prototype": 3.0, "team": 5.0,
			"strategic_relationships": 2.0, "product_rollout": 1.0,
		},
	}

	outcome := engine.ValidateMethodInputs(valuation.MethodBerkus, payload)
	if !outcome.IsValid {
		t.Fatalf("expected valid outcome, got %+v", outcome.Messages)
	}
	// The estimate info message always accompanies a scored payload.
	if !outcome.HasCode(CodeValueEstimate) {
		t.Errorf("expected %s info, got %+v", CodeValueEstimate, outcome.Messages)
	}

	t.Run("Missing criterion", func(t *testing.T) {
		short := map[string]interface{}{
			"criteria_scores": map[string]interface{}{"concept": 4.0},
		}
		outcome := engine.ValidateMethodInputs(valuation.MethodBerkus, short)
		if outcome.IsValid {
			t.Fatal("expected invalid outcome")
		}
		if !outcome.HasCode(CodeMissingCriterion) {
			t.Errorf("expected %s, got %+v", CodeMissingCriterion, outcome.Messages)
		}
	})

	t.Run("High rollout score warns", func(t *testing.T) {
		high := map[string]interface{}{
			"criteria_scores": map[string]interface{}{
				"concept": 4.0, "prototype": 3.0, "team": 5.0,
				"strategic_relationships": 2.0, "product_rollout": 4.5,
			},
		}
		outcome := engine.ValidateMethodInputs(valuation.MethodBerkus, high)
		if !outcome.IsValid {
			t.Fatalf("warning must not block: %+v", outcome.Messages)
		}
		if !outcome.HasCode(CodeHighRolloutScore) {
			t.Errorf("expected %s warning, got %+v", CodeHighRolloutScore, outcome.Messages)
		}
	})
}

func TestValidateRiskFactor(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("Partial ratings are fine", func(t *testing.T) {
		outcome := engine.ValidateMethodInputs(valuation.MethodRiskFactor, map[string]interface{}{
			"base_valuation": 2000000.0,
			"risk_factors":   map[string]interface{}{"management": 1.0, "exit": -1.0},
		})
		if !outcome.IsValid {
			t.Fatalf("expected valid outcome, got %+v", outcome.Messages)
		}
	})

	t.Run("Empty ratings are not", func(t *testing.T) {
		outcome := engine.ValidateMethodInputs(valuation.MethodRiskFactor, map[string]interface{}{
			"base_valuation": 2000000.0,
			"risk_factors":   map[string]interface{}{},
		})
		if outcome.IsValid {
			t.Fatal("expected invalid outcome for an empty ratings map")
		}
	})

	t.Run("Rating out of range", func(t *testing.T) {
		outcome := engine.ValidateMethodInputs(valuation.MethodRiskFactor, map[string]interface{}{
			"base_valuation": 2000000.0,
			"risk_factors":   map[string]interface{}{"management": 3.0},
		})
		if outcome.IsValid {
			t.Fatal("expected invalid outcome")
		}
		if !outcome.HasCode(CodeValueTooHigh) {
			t.Errorf("expected %s, got %+v", CodeValueTooHigh, outcome.Messages)
		}
	})

	t.Run("Very negative profile warns", func(t *testing.T) {
		outcome := engine.ValidateMethodInputs(valuation.MethodRiskFactor, map[string]interface{}{
			"base_valuation": 2000000.0,
			"risk_factors":   map[string]interface{}{"management": -2.0, "funding": -2.0},
		})
		if !outcome.IsValid {
			t.Fatalf("warning must not block: %+v", outcome.Messages)
		}
		if !outcome.HasCode(CodeHighRisk) {
			t.Errorf("expected %s warning, got %+v", CodeHighRisk, outcome.Messages)
		}
	})
}

func TestValidateVentureCapital(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("Valid payload truncates years", func(t *testing.T) {
		outcome := engine.ValidateMethodInputs(valuation.MethodVentureCapital, map[string]interface{}{
			"expected_revenue": 10000000.0,
			"exit_multiple":    5.0,
			"required_return":  0.25,
			"years_to_exit":    5.7,
		})
		if !outcome.IsValid {
			t.Fatalf("expected valid outcome, got %+v", outcome.Messages)
		}
		if years := outcome.Sanitized["years_to_exit"].(float64); years != 5 {
			t.Errorf("years_to_exit = %v, want truncation to 5", years)
		}
	})

	t.Run("Investment exceeding implied value is an error", func(t *testing.T) {
		outcome := engine.ValidateMethodInputs(valuation.MethodVentureCapital, map[string]interface{}{
			"expected_revenue":  10000000.0,
			"exit_multiple":     5.0,
			"required_return":   0.25,
			"years_to_exit":     5.0,
			"investment_needed": 20000000.0,
		})
		if outcome.IsValid {
			t.Fatal("expected invalid outcome")
		}
		if !outcome.HasCode(CodeInvestmentExceeds) {
			t.Errorf("expected %s, got %+v", CodeInvestmentExceeds, outcome.Messages)
		}
	})

	t.Run("High exit multiple warns", func(t *testing.T) {
		outcome := engine.ValidateMethodInputs(valuation.MethodVentureCapital, map[string]interface{}{
			"expected_revenue": 10000000.0,
			"exit_multiple":    12.0,
			"required_return":  0.25,
			"years_to_exit":    5.0,
		})
		if !outcome.IsValid {
			t.Fatalf("warning must not block: %+v", outcome.Messages)
		}
		if !outcome.HasCode(CodeHighExitMultiple) {
			t.Errorf("expected %s warning, got %+v", CodeHighExitMultiple, outcome.Messages)
		}
	})

	t.Run("Aggressive return expectations warn", func(t *testing.T) {
		// 1.75^8 is about 88x, far beyond the 50x sanity ceiling.
		outcome := engine.ValidateMethodInputs(valuation.MethodVentureCapital, map[string]interface{}{
			"expected_revenue": 10000000.0,
			"exit_multiple":    5.0,
			"required_return":  0.75,
			"years_to_exit":    8.0,
		})
		if !outcome.IsValid {
			t.Fatalf("warning must not block: %+v", outcome.Messages)
		}
		if !outcome.HasCode(CodeHighReturn) {
			t.Errorf("expected %s warning, got %+v", CodeHighReturn, outcome.Messages)
		}
	})
}

func TestValidateUnknownMethod(t *testing.T) {
	engine := NewEngine(nil)

	outcome := engine.ValidateMethodInputs(valuation.Method("Astrology"), map[string]interface{}{})
	if outcome.IsValid {
		t.Fatal("expected invalid outcome")
	}
	if !outcome.HasCode(CodeUnknownMethod) {
		t.Errorf("expected %s, got %+v", CodeUnknownMethod, outcome.Messages)
	}
}

func TestMethodRequirementsMetadata(t *testing.T) {
	engine := NewEngine(nil)

	schema, ok := engine.MethodRequirements(valuation.MethodDCF)
	if !ok {
		t.Fatal("expected a schema for DCF")
	}
	if schema.Method != valuation.MethodDCF {
		t.Errorf("schema method = %q, want DCF", schema.Method)
	}

	required := schema.RequiredFields()
	expected := []string{"cash_flows", "discount_rate", "terminal_growth"}
	if len(required) != len(expected) {
		t.Fatalf("required fields = %v, want %v", required, expected)
	}
	for i, name := range expected {
		if required[i] != name {
			t.Errorf("required[%d] = %q, want %q", i, required[i], name)
		}
	}

	if _, ok := schema.Field("growth_rate"); !ok {
		t.Error("expected the optional growth_rate field in the schema")
	}

	schemas := engine.MethodSchemas()
	if len(schemas) != len(valuation.Methods()) {
		t.Errorf("expected %d schemas, got %d", len(valuation.Methods()), len(schemas))
	}
}
