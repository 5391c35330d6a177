package harness

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/cardsearch/internal/carddb"
)

// Snapshot is the golden-file form of a scenario run.
type Snapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Sets         []string     `json:"sets,omitempty"`
	Cases        []CaseResult `json:"cases"`
}

// MarshalSnapshot renders a result as indented JSON with a trailing
// newline.
func MarshalSnapshot(scenario *Scenario, result *Result) ([]byte, error) {
	snap := Snapshot{
		ScenarioName: scenario.Name,
		Sets:         scenario.Sets,
		Cases:        result.Cases,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RunWithGolden executes a scenario and compares its outcome against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the outcome doesn't match the golden file.
func RunWithGolden(t *testing.T, db *carddb.Database, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), db, scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against the scenario's golden
// file without re-running it.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
