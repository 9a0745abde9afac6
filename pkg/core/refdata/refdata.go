// Package refdata holds the process-wide reference tables consumed by the
// validation and valuation engines: sector multiples, scorecard criteria,
// Berkus criteria, and the risk factor catalogue.
//
// Tables are built once at startup (from the compiled-in defaults or a
// configuration file) and are never mutated afterwards, so they can be
// shared freely across requests.
package refdata

import (
	"fmt"
	"math"
	"sort"
)

// Program-wide constants the tables must satisfy.
const (
	// BerkusValuationCap is the maximum total Berkus valuation; the
	// per-criterion max values must sum to exactly this amount.
	BerkusValuationCap = 2_500_000.0

	// WeightSumTolerance is the allowed deviation of the scorecard
	// weights from 1.0.
	WeightSumTolerance = 1e-6
)

// SectorMultiple maps one sector/metric pair to its market multiple.
type SectorMultiple struct {
	Sector     string  `json:"sector"`
	MetricType string  `json:"metric_type"`
	Multiple   float64 `json:"multiple"`
}

// ScorecardCriterion is one weighted comparison criterion of the scorecard
// method. DefaultWeight applies when the caller supplies no custom weights.
type ScorecardCriterion struct {
	Key           string  `json:"key"`
	DisplayName   string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	DefaultWeight float64 `json:"weight"`
}

// BerkusCriterion is one of the five Berkus risk-mitigation criteria, each
// worth at most MaxValue at a full score.
type BerkusCriterion struct {
	Key         string  `json:"key"`
	DisplayName string  `json:"name"`
	Description string  `json:"description,omitempty"`
	MaxValue    float64 `json:"max_value"`
}

// RiskFactor is one entry of the risk factor summation catalogue.
type RiskFactor struct {
	Key         string `json:"key"`
	DisplayName string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Tables is the immutable reference data set. Construct it with Default or
// Load and treat it as read-only from then on.
type Tables struct {
	multiples map[string]map[string]float64
	scorecard []ScorecardCriterion
	berkus    []BerkusCriterion
	risks     []RiskFactor
}

// Sectors returns the known sectors in alphabetical order.
func (t *Tables) Sectors() []string {
	out := make([]string, 0, len(t.multiples))
	for sector := range t.multiples {
		out = append(out, sector)
	}
	sort.Strings(out)
	return out
}

// MetricTypes returns the metric types priced across the sector table,
// in alphabetical order.
func (t *Tables) MetricTypes() []string {
	seen := map[string]bool{}
	for _, metrics := range t.multiples {
		for metric := range metrics {
			seen[metric] = true
		}
	}
	out := make([]string, 0, len(seen))
	for metric := range seen {
		out = append(out, metric)
	}
	sort.Strings(out)
	return out
}

// Multiple looks up the benchmark multiple for a sector and metric type.
func (t *Tables) Multiple(sector, metricType string) (float64, bool) {
	metrics, ok := t.multiples[sector]
	if !ok {
		return 0, false
	}
	m, ok := metrics[metricType]
	return m, ok
}

// SectorMultiples returns the full sector table as a flat list, ordered by
// sector then metric type.
func (t *Tables) SectorMultiples() []SectorMultiple {
	var out []SectorMultiple
	for _, sector := range t.Sectors() {
		metrics := t.multiples[sector]
		keys := make([]string, 0, len(metrics))
		for metric := range metrics {
			keys = append(keys, metric)
		}
		sort.Strings(keys)
		for _, metric := range keys {
			out = append(out, SectorMultiple{Sector: sector, MetricType: metric, Multiple: metrics[metric]})
		}
	}
	return out
}

// ScorecardCriteria returns the scorecard catalogue in its canonical order.
func (t *Tables) ScorecardCriteria() []ScorecardCriterion {
	out := make([]ScorecardCriterion, len(t.scorecard))
	copy(out, t.scorecard)
	return out
}

// ScorecardCriterion looks up one scorecard criterion by key.
func (t *Tables) ScorecardCriterion(key string) (ScorecardCriterion, bool) {
	for _, c := range t.scorecard {
		if c.Key == key {
			return c, true
		}
	}
	return ScorecardCriterion{}, false
}

// DefaultScorecardWeights returns the default weight per scorecard key.
func (t *Tables) DefaultScorecardWeights() map[string]float64 {
	out := make(map[string]float64, len(t.scorecard))
	for _, c := range t.scorecard {
		out[c.Key] = c.DefaultWeight
	}
	return out
}

// BerkusCriteria returns the five Berkus criteria in their canonical order.
func (t *Tables) BerkusCriteria() []BerkusCriterion {
	out := make([]BerkusCriterion, len(t.berkus))
	copy(out, t.berkus)
	return out
}

// BerkusCriterion looks up one Berkus criterion by key.
func (t *Tables) BerkusCriterion(key string) (BerkusCriterion, bool) {
	for _, c := range t.berkus {
		if c.Key == key {
			return c, true
		}
	}
	return BerkusCriterion{}, false
}

// RiskFactors returns the risk factor catalogue in its canonical order.
func (t *Tables) RiskFactors() []RiskFactor {
	out := make([]RiskFactor, len(t.risks))
	copy(out, t.risks)
	return out
}

// RiskFactor looks up one risk factor by key.
func (t *Tables) RiskFactor(key string) (RiskFactor, bool) {
	for _, f := range t.risks {
		if f.Key == key {
			return f, true
		}
	}
	return RiskFactor{}, false
}

// Validate checks the structural invariants of the tables: non-empty
// catalogues, scorecard weights summing to 1.0, and Berkus max values
// summing to the program-wide valuation cap.
func (t *Tables) Validate() error {
	if len(t.multiples) == 0 {
		return fmt.Errorf("refdata: sector multiple table is empty")
	}
	for sector, metrics := range t.multiples {
		for metric, m := range metrics {
			if m <= 0 {
				return fmt.Errorf("refdata: multiple for %s/%s must be positive (got %v)", sector, metric, m)
			}
		}
	}

	if len(t.scorecard) == 0 {
		return fmt.Errorf("refdata: scorecard criteria are empty")
	}
	var weightSum float64
	for _, c := range t.scorecard {
		if c.DefaultWeight < 0 {
			return fmt.Errorf("refdata: scorecard weight for %q is negative", c.Key)
		}
		weightSum += c.DefaultWeight
	}
	if math.Abs(weightSum-1.0) > WeightSumTolerance {
		return fmt.Errorf("refdata: scorecard weights sum to %.6f, want 1.0", weightSum)
	}

	if len(t.berkus) != 5 {
		return fmt.Errorf("refdata: Berkus catalogue must hold exactly 5 criteria (got %d)", len(t.berkus))
	}
	var berkusSum float64
	for _, c := range t.berkus {
		if c.MaxValue <= 0 {
			return fmt.Errorf("refdata: Berkus max value for %q must be positive", c.Key)
		}
		berkusSum += c.MaxValue
	}
	if math.Abs(berkusSum-BerkusValuationCap) > 1e-6 {
		return fmt.Errorf("refdata: Berkus max values sum to %.0f, want %.0f", berkusSum, BerkusValuationCap)
	}

	if len(t.risks) == 0 {
		return fmt.Errorf("refdata: risk factor catalogue is empty")
	}
	return nil
}

// Snapshot is a JSON-ready view of the tables for form-building collaborators.
type Snapshot struct {
	SectorMultiples   []SectorMultiple     `json:"sector_multiples"`
	ScorecardCriteria []ScorecardCriterion `json:"scorecard_criteria"`
	BerkusCriteria    []BerkusCriterion    `json:"berkus_criteria"`
	RiskFactors       []RiskFactor         `json:"risk_factors"`
}

// Snapshot returns a copy of the full data set.
func (t *Tables) Snapshot() Snapshot {
	return Snapshot{
		SectorMultiples:   t.SectorMultiples(),
		ScorecardCriteria: t.ScorecardCriteria(),
		BerkusCriteria:    t.BerkusCriteria(),
		RiskFactors:       t.RiskFactors(),
	}
}
