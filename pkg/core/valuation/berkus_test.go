package valuation

import (
	"math"
	"testing"

	"github.com/Brainfkt/Startup-Valuation-Calculator/pkg/core/refdata"
)

func allBerkusScores(score float64) map[string]float64 {
	return map[string]float64{
		"concept":                 score,
		"prototype":               score,
		"team":                    score,
		"strategic_relationships": score,
		"product_rollout":         score,
	}
}

func TestBerkusFullScoresReachCap(t *testing.T) {
	engine := NewEngine(nil)

	result := engine.Berkus(BerkusInput{Scores: allBerkusScores(5)})
	if !result.Success {
		t.Fatalf("expected success, got error: %s", result.Error)
	}
	if result.Valuation != refdata.BerkusValuationCap {
		t.Errorf("valuation = %f, want %f", result.Valuation, refdata.BerkusValuationCap)
	}
}

func TestBerkusZeroScores(t *testing.T) {
	engine := NewEngine(nil)

	result := engine.Berkus(BerkusInput{Scores: allBerkusScores(0)})
	if !result.Success {
		t.Fatalf("expected success, got error: %s", result.Error)
	}
	if result.Valuation != 0 {
		t.Errorf("valuation = %f, want 0", result.Valuation)
	}
}

func TestBerkusProportionalValues(t *testing.T) {
	engine := NewEngine(nil)

	scores := allBerkusScores(0)
	scores["concept"] = 4   // 4/5 * 500000 = 400000
	scores["prototype"] = 2 // 2/5 * 500000 = 200000

	result := engine.Berkus(BerkusInput{Scores: scores})
	if !result.Success {
		t.Fatalf("expected success, got error: %s", result.Error)
	}
	if math.Abs(result.Valuation-600_000) > 1e-6 {
		t.Errorf("valuation = %f, want 600000", result.Valuation)
	}

	breakdown := result.Breakdown.(BerkusBreakdown)
	if breakdown.MaxPossible != refdata.BerkusValuationCap {
		t.Errorf("max possible = %f, want %f", breakdown.MaxPossible, refdata.BerkusValuationCap)
	}
	for _, detail := range breakdown.Criteria {
		expected := detail.Score / 5.0 * detail.MaxValue
		if math.Abs(detail.Value-expected) > 1e-6 {
			t.Errorf("criterion %s value = %f, want %f", detail.Key, detail.Value, expected)
		}
	}
}

func TestBerkusRequiresEveryCriterion(t *testing.T) {
	engine := NewEngine(nil)

	scores := allBerkusScores(3)
	delete(scores, "strategic_relationships")

	result := engine.Berkus(BerkusInput{Scores: scores})
	if result.Success {
		t.Fatal("expected failure for a missing criterion")
	}
	if result.Error == "" {
		t.Error("expected an error naming the missing criterion")
	}
}

func TestBerkusRejectsOutOfRangeScores(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		name  string
		key   string
		score float64
	}{
		{"Negative score", "concept", -1},
		{"Score above 5", "team", 5.5},
		{"NaN score", "prototype", math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := allBerkusScores(3)
			scores[tt.key] = tt.score
			if result := engine.Berkus(BerkusInput{Scores: scores}); result.Success {
				t.Error("expected failure")
			}
		})
	}
}
