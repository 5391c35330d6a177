package harness

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/cardsearch/internal/carddb"
	"github.com/roach88/cardsearch/internal/query"
)

// Run executes every case of a scenario against db and returns the
// result. Cases run concurrently; the database is immutable, so they share
// it. An error is returned only when ctx is cancelled. Case failures are
// reported in the result.
func Run(ctx context.Context, db *carddb.Database, scenario *Scenario) (*Result, error) {
	if len(scenario.Sets) > 0 {
		db = db.Subset(scenario.Sets)
	}

	cases := make([]CaseResult, len(scenario.Cases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range scenario.Cases {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cases[i] = runCase(db, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run scenario %s: %w", scenario.Name, err)
	}

	result := NewResult()
	result.Cases = cases
	for i := range cases {
		for _, msg := range cases[i].Errors {
			result.AddError(fmt.Sprintf("case %d (%s): %s", i+1, cases[i].Query, msg))
		}
	}
	slog.Debug("scenario finished",
		"scenario", scenario.Name,
		"cases", len(cases),
		"pass", result.Pass,
		"failures", len(result.Errors))
	return result, nil
}

func runCase(db *carddb.Database, c Case) CaseResult {
	out := CaseResult{Query: c.Query}

	res, err := db.Search(c.Query)
	if err != nil {
		out.ErrorCode = string(query.ErrorCodeOf(err))
		if out.ErrorCode == "" {
			// Search only fails with parse errors; anything else is a bug.
			out.Errors = append(out.Errors, "unexpected error: "+err.Error())
			return out
		}
	} else {
		out.Scope = res.Scope.String()
		out.Cards = res.CardNames()
		out.Printings = len(res.Printings())
	}

	for _, e := range checkCase(db, c, &out) {
		out.Errors = append(out.Errors, e.Error())
	}
	return out
}
