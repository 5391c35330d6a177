package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardsearch/internal/catalog"
	"github.com/roach88/cardsearch/internal/testutil"
)

func fixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Build(testutil.Corpus())
	require.NoError(t, err)
	return cat
}

func TestParse_Tree(t *testing.T) {
	cat := fixtureCatalog(t)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"single field", "t:goblin", "t:goblin"},
		{"juxtaposition", "t:goblin c:r", "(and t:goblin c:r)"},
		{"explicit and", "t:goblin AND c:r", "(and t:goblin c:r)"},
		{"or binds loosest", "a or b c", "(or name_or_text~a (and name_or_text~b name_or_text~c))"},
		{"negation", "-e:rtr", "(not e:rtr)"},
		{"bang negates unordered field", "e!rtr", "(not e:rtr)"},
		{"comma list", "e:rtr,gtc", "(or e:rtr e:gtc)"},
		{"negated comma list", "e!rtr,gtc", "(and (not e:rtr) (not e:gtc))"},
		{"ordered not-equal list", "r!=c,u", "(and r!=c r!=u)"},
		{"ordered colon is equality", "cmc:3", "cmc=3"},
		{"color bang is exact", "c!wu", "c=wu"},
		{"not keyword", "not:funny", "(not is:funny)"},
		{"quoted field value", `t:"human warrior"`, `t:"human warrior"`},
		{"quoted phrase", `"Lightning  Bolt"`, `name_or_text~"lightning bolt"`},
		{"exact name", "!Alive // Well", `!"alive // well"`},
		{"exact name in group", "(!Alive) or e:rtr", `(or !"alive" e:rtr)`},
		{"alt group", "alt:(e:rtr or e:gtc)", "alt:(or e:rtr e:gtc)"},
		{"alt negation", "alt:-e:rtr", "alt:(not e:rtr)"},
		{"spaced operator", "mana <=mmn", "mana<=mmn"},
		{"redundant parens", "((t:goblin))", "t:goblin"},
		{"nested and flattened", "t:goblin (c:r c:u)", "(and t:goblin c:r c:u)"},
		{"nested or flattened", "e:rtr or (e:gtc or e:dgm)", "(or e:rtr e:gtc e:dgm)"},
		{"field alias", "type:goblin", "t:goblin"},
		{"unknown field with bang is a word", "wow!", "name_or_text~wow!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.query, cat)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Root.String())
		})
	}
}

func TestParse_Sort(t *testing.T) {
	cat := fixtureCatalog(t)

	q, err := Parse("t:goblin sort:name", cat)
	require.NoError(t, err)
	assert.Equal(t, SortName, q.Sort)
	assert.Equal(t, "t:goblin sort:name", q.String())

	q, err = Parse("sort:newest", cat)
	require.NoError(t, err)
	assert.Equal(t, SortNew, q.Sort)
	assert.Equal(t, "(and)", q.Root.String())
}

func TestParse_BareScope(t *testing.T) {
	cat := fixtureCatalog(t)

	q, err := Parse("bolt", cat, WithBareScope(ScopeName))
	require.NoError(t, err)
	assert.Equal(t, "name~bolt", q.Root.String())

	scope, err := ParseTextScope("text")
	require.NoError(t, err)
	assert.Equal(t, ScopeText, scope)

	_, err = ParseTextScope("flavor")
	assert.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	cat := fixtureCatalog(t)

	tests := []struct {
		query    string
		code     ErrorCode
		fragment string
	}{
		{"", ErrCodeSyntax, ""},
		{"   ", ErrCodeSyntax, ""},
		{"zz:foo", ErrCodeUnknownField, "zz"},
		{"t<goblin", ErrCodeUnsupportedOperator, "t<"},
		{"alt>e:rtr", ErrCodeUnsupportedOperator, "alt>"},
		{`o:"unterminated`, ErrCodeUnterminatedQuote, `"unterminated`},
		{"(t:goblin", ErrCodeUnbalancedParen, "("},
		{"t:goblin)", ErrCodeUnbalancedParen, ")"},
		{"or t:goblin", ErrCodeSyntax, "or"},
		{"t:goblin or", ErrCodeSyntax, "or"},
		{"and c:r", ErrCodeSyntax, "and"},
		{"c:r and", ErrCodeSyntax, "and"},
		{"()", ErrCodeSyntax, "()"},
		{"-sort:name", ErrCodeSyntax, "-sort:name"},
		{"sort:bogus", ErrCodeInvalidValue, "bogus"},
		{"c:x", ErrCodeInvalidValue, "x"},
		{"mana=2wq", ErrCodeInvalidValue, "2wq"},
		{"cmc=abc", ErrCodeInvalidValue, "abc"},
		{"pow=?", ErrCodeInvalidValue, "?"},
		{"is:bogus", ErrCodeInvalidValue, "bogus"},
		{"e:rtr,", ErrCodeInvalidValue, "rtr,"},
		{"print=someday", ErrCodeInvalidValue, "someday"},
		{"t:", ErrCodeInvalidValue, "t:"},
		{`""`, ErrCodeInvalidValue, `""`},
		{`t:goblin "  "`, ErrCodeInvalidValue, `"  "`},
		{"mana=99999999999999999999", ErrCodeInvalidValue, "99999999999999999999"},
		{"b:ra", ErrCodeAmbiguousReference, "ra"},
		{"print=urza", ErrCodeAmbiguousReference, "urza"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			_, err := Parse(tt.query, cat)
			require.Error(t, err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.code, pe.Code)
			assert.Equal(t, tt.fragment, pe.Fragment)
			assert.True(t, IsParseError(err))
			assert.Equal(t, tt.code, ErrorCodeOf(err))
		})
	}
}

func TestParse_AmbiguousReferenceUnwraps(t *testing.T) {
	cat := fixtureCatalog(t)

	_, err := Parse("b:ra", cat)
	require.Error(t, err)
	assert.True(t, catalog.IsAmbiguousReference(err))

	var ae *catalog.AmbiguousReferenceError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, catalog.ReferenceBlock, ae.Kind)
}

func TestParse_ErrorPosition(t *testing.T) {
	cat := fixtureCatalog(t)

	_, err := Parse("t:goblin zz:foo", cat)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 9, pe.Pos)
}

func TestFields_Registered(t *testing.T) {
	names := Fields()
	for _, want := range []string{"a", "alt", "b", "c", "ci", "cmc", "e", "f", "ft", "is", "loy", "mana", "name", "not", "o", "part", "pow", "print", "r", "sort", "st", "t", "tou", "year"} {
		assert.Contains(t, names, want)
	}
}
