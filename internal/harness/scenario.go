package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cardsearch/internal/query"
)

// Scenario is a named list of query cases.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Sets restricts the database to these set codes before running.
	Sets []string `yaml:"sets,omitempty"`

	// Cases are evaluated independently; order only affects reporting.
	Cases []Case `yaml:"cases"`
}

// Case is one query with its expectations.
type Case struct {
	Query  string `yaml:"query"`
	Expect Expect `yaml:"expect"`
}

// Expect lists what a case's result must satisfy. Unset fields are not
// checked.
type Expect struct {
	Cards   []string `yaml:"cards,omitempty"`
	Ordered []string `yaml:"ordered,omitempty"`
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
	Count   *int     `yaml:"count,omitempty"`
	Scope   string   `yaml:"scope,omitempty"`
	Error   string   `yaml:"error,omitempty"`
	SameAs  string   `yaml:"same_as,omitempty"`
}

func (e Expect) empty() bool {
	return e.Cards == nil && e.Ordered == nil && e.Include == nil && e.Exclude == nil &&
		e.Count == nil && e.Scope == "" && e.Error == "" && e.SameAs == ""
}

var errorCodes = map[string]bool{
	string(query.ErrCodeSyntax):              true,
	string(query.ErrCodeUnknownField):        true,
	string(query.ErrCodeUnsupportedOperator): true,
	string(query.ErrCodeUnterminatedQuote):   true,
	string(query.ErrCodeUnbalancedParen):     true,
	string(query.ErrCodeInvalidValue):        true,
	string(query.ErrCodeAmbiguousReference):  true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "expects:" vs "expect:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	for i, c := range s.Cases {
		if c.Query == "" && c.Expect.Error == "" {
			return fmt.Errorf("cases[%d]: query is required", i)
		}
		if c.Expect.empty() {
			return fmt.Errorf("cases[%d]: expect must set at least one field", i)
		}
		if c.Expect.Error != "" {
			if !errorCodes[c.Expect.Error] {
				return fmt.Errorf("cases[%d]: unknown error code %q", i, c.Expect.Error)
			}
			if c.Expect.Cards != nil || c.Expect.Ordered != nil || c.Expect.Count != nil || c.Expect.SameAs != "" {
				return fmt.Errorf("cases[%d]: error cannot be combined with result expectations", i)
			}
		}
		switch c.Expect.Scope {
		case "", query.ResultCards.String(), query.ResultPrintings.String():
		default:
			return fmt.Errorf("cases[%d]: scope must be %q or %q", i, query.ResultCards, query.ResultPrintings)
		}
	}
	return nil
}
