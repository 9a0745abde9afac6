package refdata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"
)

// tablesFile is the on-disk shape of a reference data file. YAML is the
// primary format; HJSON is accepted for comment-friendly override files.
type tablesFile struct {
	SectorMultiples   map[string]map[string]float64 `yaml:"sector_multiples" json:"sector_multiples"`
	ScorecardCriteria []criterionEntry              `yaml:"scorecard_criteria" json:"scorecard_criteria"`
	BerkusCriteria    []criterionEntry              `yaml:"berkus_criteria" json:"berkus_criteria"`
	RiskFactors       []criterionEntry              `yaml:"risk_factors" json:"risk_factors"`
}

type criterionEntry struct {
	Key         string  `yaml:"key" json:"key"`
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	Weight      float64 `yaml:"weight" json:"weight"`
	MaxValue    float64 `yaml:"max_value" json:"max_value"`
}

// Load reads reference tables from a YAML (.yaml/.yml) or HJSON
// (.hjson/.json) file and validates them. The file must be complete; there
// is no merging with the defaults.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("refdata: read %s: %w", path, err)
	}

	var file tablesFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("refdata: parse %s: %w", path, err)
		}
	case ".hjson", ".json":
		if err := hjson.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("refdata: parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("refdata: unsupported reference file format %q", filepath.Ext(path))
	}

	tables := &Tables{
		multiples: file.SectorMultiples,
		scorecard: make([]ScorecardCriterion, 0, len(file.ScorecardCriteria)),
		berkus:    make([]BerkusCriterion, 0, len(file.BerkusCriteria)),
		risks:     make([]RiskFactor, 0, len(file.RiskFactors)),
	}
	for _, c := range file.ScorecardCriteria {
		tables.scorecard = append(tables.scorecard, ScorecardCriterion{
			Key:           c.Key,
			DisplayName:   c.Name,
			Description:   c.Description,
			DefaultWeight: c.Weight,
		})
	}
	for _, c := range file.BerkusCriteria {
		tables.berkus = append(tables.berkus, BerkusCriterion{
			Key:         c.Key,
			DisplayName: c.Name,
			Description: c.Description,
			MaxValue:    c.MaxValue,
		})
	}
	for _, f := range file.RiskFactors {
		tables.risks = append(tables.risks, RiskFactor{
			Key:         f.Key,
			DisplayName: f.Name,
			Description: f.Description,
		})
	}

	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, path)
	}
	return tables, nil
}
