package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardsearch/internal/carddb"
	"github.com/roach88/cardsearch/internal/testutil"
)

func fixtureDB(t *testing.T) *carddb.Database {
	t.Helper()
	db, err := carddb.New(testutil.Corpus())
	require.NoError(t, err)
	return db
}

func intPtr(n int) *int { return &n }

func TestRun_FieldsScenarioPasses(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/fields.yaml")
	require.NoError(t, err)

	result, err := Run(context.Background(), fixtureDB(t), s)
	require.NoError(t, err)

	assert.True(t, result.Pass, "failures: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Len(t, result.Cases, len(s.Cases))
}

func TestRun_CasesKeepScenarioOrder(t *testing.T) {
	s := &Scenario{
		Name:        "order",
		Description: "results line up with cases",
		Cases: []Case{
			{Query: "t:goblin", Expect: Expect{Count: intPtr(1)}},
			{Query: "is:split", Expect: Expect{Count: intPtr(4)}},
			{Query: "c:c", Expect: Expect{Count: intPtr(3)}},
		},
	}

	result, err := Run(context.Background(), fixtureDB(t), s)
	require.NoError(t, err)
	require.True(t, result.Pass, "failures: %v", result.Errors)

	assert.Equal(t, "t:goblin", result.Cases[0].Query)
	assert.Equal(t, []string{"Goblin Electromancer"}, result.Cases[0].Cards)
	assert.Equal(t, "is:split", result.Cases[1].Query)
	assert.Equal(t, "c:c", result.Cases[2].Query)
}

func TestRun_ReportsEveryFailure(t *testing.T) {
	s := &Scenario{
		Name:        "failing",
		Description: "every expectation kind failing once",
		Cases: []Case{
			{Query: "t:goblin", Expect: Expect{Cards: []string{"Lightning Bolt"}}},
			{Query: "e:rtr sort:name", Expect: Expect{Ordered: []string{"Plains", "Island"}}},
			{Query: "t:goblin", Expect: Expect{Include: []string{"Burn"}, Exclude: []string{"Goblin Electromancer"}}},
			{Query: "c:r", Expect: Expect{Count: intPtr(1), Scope: "printings"}},
			{Query: "zz:foo", Expect: Expect{Error: "syntax"}},
			{Query: "t:goblin", Expect: Expect{Error: "unknown_field"}},
			{Query: "t:goblin", Expect: Expect{SameAs: "t:elf"}},
			{Query: "t:goblin", Expect: Expect{SameAs: "zz:foo"}},
		},
	}

	result, err := Run(context.Background(), fixtureDB(t), s)
	require.NoError(t, err)
	assert.False(t, result.Pass)

	for i, c := range result.Cases {
		assert.False(t, c.Pass(), "case %d should fail", i+1)
	}
	// The third case fails twice and the fourth case fails twice.
	assert.Len(t, result.Errors, len(s.Cases)+2)
	assert.Contains(t, result.Errors[0], "case 1 (t:goblin): cards: expected [Lightning Bolt]")
	assert.Contains(t, result.Errors[0], "missing [Lightning Bolt], unexpected [Goblin Electromancer]")
}

func TestRun_SubsetScenario(t *testing.T) {
	s := &Scenario{
		Name:        "subset",
		Description: "sets restrict the database",
		Sets:        []string{"lea"},
		Cases: []Case{
			{Query: "t:island", Expect: Expect{Count: intPtr(1)}},
			{Query: "e:ori", Expect: Expect{Count: intPtr(0)}},
		},
	}

	result, err := Run(context.Background(), fixtureDB(t), s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "failures: %v", result.Errors)
	assert.Equal(t, 1, result.Cases[0].Printings)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Scenario{
		Name:        "cancelled",
		Description: "nothing runs",
		Cases:       []Case{{Query: "t:goblin", Expect: Expect{Count: intPtr(1)}}},
	}
	_, err := Run(ctx, fixtureDB(t), s)
	assert.ErrorIs(t, err, context.Canceled)
}
