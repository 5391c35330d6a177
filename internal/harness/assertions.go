package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/cardsearch/internal/carddb"
)

// AssertionError is returned when an expectation fails.
type AssertionError struct {
	Type     string // expectation name, e.g. "cards" or "same_as"
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

func formatNames(names []string) string {
	if len(names) == 0 {
		return "no cards"
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// checkCase evaluates every expectation of c against got. db is needed for
// same_as, which runs a second query.
func checkCase(db *carddb.Database, c Case, got *CaseResult) []error {
	e := c.Expect
	var errs []error

	if e.Error != "" || got.ErrorCode != "" {
		if got.ErrorCode != e.Error {
			actual := "error " + got.ErrorCode
			if got.ErrorCode == "" {
				actual = "success with " + formatNames(got.Cards)
			}
			expected := "error " + e.Error
			if e.Error == "" {
				expected = "success"
			}
			errs = append(errs, &AssertionError{Type: "error", Expected: expected, Actual: actual})
		}
		// A failed parse has no result to check further.
		return errs
	}

	if e.Cards != nil {
		if err := assertSameCards(e.Cards, got.Cards); err != nil {
			errs = append(errs, err)
		}
	}
	if e.Ordered != nil && !slices.Equal(e.Ordered, got.Cards) {
		errs = append(errs, &AssertionError{Type: "ordered", Expected: formatNames(e.Ordered), Actual: formatNames(got.Cards)})
	}
	for _, name := range e.Include {
		if !slices.Contains(got.Cards, name) {
			errs = append(errs, &AssertionError{Type: "include", Expected: name + " present", Actual: formatNames(got.Cards)})
		}
	}
	for _, name := range e.Exclude {
		if slices.Contains(got.Cards, name) {
			errs = append(errs, &AssertionError{Type: "exclude", Expected: name + " absent", Actual: formatNames(got.Cards)})
		}
	}
	if e.Count != nil && *e.Count != len(got.Cards) {
		errs = append(errs, &AssertionError{
			Type:     "count",
			Expected: fmt.Sprintf("%d cards", *e.Count),
			Actual:   fmt.Sprintf("%d cards", len(got.Cards)),
		})
	}
	if e.Scope != "" && e.Scope != got.Scope {
		errs = append(errs, &AssertionError{Type: "scope", Expected: e.Scope, Actual: got.Scope})
	}
	if e.SameAs != "" {
		other, err := db.Search(e.SameAs)
		switch {
		case err != nil:
			errs = append(errs, &AssertionError{Type: "same_as", Expected: "query " + e.SameAs + " to parse", Actual: err.Error()})
		case !slices.Equal(other.CardNames(), got.Cards):
			errs = append(errs, &AssertionError{
				Type:     "same_as",
				Expected: e.SameAs + " = " + formatNames(other.CardNames()),
				Actual:   formatNames(got.Cards),
			})
		}
	}
	return errs
}

func assertSameCards(want, got []string) error {
	w := slices.Clone(want)
	g := slices.Clone(got)
	slices.Sort(w)
	slices.Sort(g)
	if slices.Equal(w, g) {
		return nil
	}

	var missing, extra []string
	for _, name := range w {
		if !slices.Contains(g, name) {
			missing = append(missing, name)
		}
	}
	for _, name := range g {
		if !slices.Contains(w, name) {
			extra = append(extra, name)
		}
	}
	return &AssertionError{
		Type:     "cards",
		Expected: formatNames(want),
		Actual:   fmt.Sprintf("%s (missing %s, unexpected %s)", formatNames(got), formatNames(missing), formatNames(extra)),
	}
}
