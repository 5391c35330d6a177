package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/rtr_block.yaml")
	require.NoError(t, err)

	assert.Equal(t, "rtr_block", s.Name)
	assert.Equal(t, []string{"rtr", "gtc", "dgm"}, s.Sets)
	require.Len(t, s.Cases, 9)
	assert.Equal(t, "b:rtr", s.Cases[0].Query)
	require.NotNil(t, s.Cases[0].Expect.Count)
	assert.Equal(t, 12, *s.Cases[0].Expect.Count)
	assert.Equal(t, "unknown_field", s.Cases[7].Expect.Error)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown field",
			yaml: "name: x\ndescription: y\ncases:\n  - query: a\n    expects: {count: 1}\n",
			want: "field expects not found",
		},
		{
			name: "missing name",
			yaml: "description: y\ncases:\n  - query: a\n    expect: {count: 1}\n",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: x\ncases:\n  - query: a\n    expect: {count: 1}\n",
			want: "description is required",
		},
		{
			name: "no cases",
			yaml: "name: x\ndescription: y\n",
			want: "cases list is required",
		},
		{
			name: "empty expect",
			yaml: "name: x\ndescription: y\ncases:\n  - query: a\n    expect: {}\n",
			want: "expect must set at least one field",
		},
		{
			name: "missing query",
			yaml: "name: x\ndescription: y\ncases:\n  - expect: {count: 1}\n",
			want: "query is required",
		},
		{
			name: "unknown error code",
			yaml: "name: x\ndescription: y\ncases:\n  - query: a\n    expect: {error: oops}\n",
			want: `unknown error code "oops"`,
		},
		{
			name: "error with cards",
			yaml: "name: x\ndescription: y\ncases:\n  - query: a\n    expect: {error: syntax, cards: [A]}\n",
			want: "error cannot be combined",
		},
		{
			name: "bad scope",
			yaml: "name: x\ndescription: y\ncases:\n  - query: a\n    expect: {scope: editions}\n",
			want: "scope must be",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseScenario_ZeroCountIsSet(t *testing.T) {
	s, err := ParseScenario([]byte("name: x\ndescription: y\ncases:\n  - query: e:lea\n    expect: {count: 0}\n"))
	require.NoError(t, err)
	require.NotNil(t, s.Cases[0].Expect.Count)
	assert.Zero(t, *s.Cases[0].Expect.Count)
}
