package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: goblins
description: goblin search
cases:
  - query: "t:goblin"
    expect:
      cards: [Goblin Electromancer]
  - query: "zz:foo"
    expect:
      error: unknown_field
`

const failingScenario = `name: wrong
description: expects the wrong card
cases:
  - query: "t:goblin"
    expect:
      cards: [Lightning Bolt]
`

func scenarioDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeFile(t, filepath.Join(dir, name), content)
	}
	return dir
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, _, err := execute(NewTestCommand(fixtureOptions(t, "text")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, errOut, err := execute(NewTestCommand(fixtureOptions(t, "text")), "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, errOut, "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, _, err := execute(NewTestCommand(fixtureOptions(t, "text")), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, _, err := execute(NewTestCommand(fixtureOptions(t, "json")), t.TempDir())
	require.NoError(t, err)

	resp := decodeResponse(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.JSONEq(t, `{"scenarios": [], "passed": 0, "failed": 0, "total": 0}`, string(resp.Data))
}

func TestTestCommandPassingScenario(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"goblins.yaml": passingScenario})

	out, _, err := execute(NewTestCommand(fixtureOptions(t, "text")), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ goblins")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
}

func TestTestCommandFailingScenario(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"goblins.yaml": passingScenario,
		"wrong.yaml":   failingScenario,
	})

	out, _, err := execute(NewTestCommand(fixtureOptions(t, "text")), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong")
	assert.Contains(t, out, "missing [Lightning Bolt]")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommandFilter(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"goblins.yaml": passingScenario,
		"wrong.yaml":   failingScenario,
	})

	out, _, err := execute(NewTestCommand(fixtureOptions(t, "text")), dir, "--filter", "gob*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 total")
}

func TestTestCommandInvalidScenario(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"broken.yaml": "name: broken\nbogus: field\n"})

	out, _, err := execute(NewTestCommand(fixtureOptions(t, "text")), dir)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommandGoldenUpdateAndCompare(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"goblins.yaml": passingScenario})
	opts := fixtureOptions(t, "text")

	out, _, err := execute(NewTestCommand(opts), dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ goblins (golden updated)")

	goldenPath := filepath.Join(dir, "golden", "goblins.golden")
	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name": "goblins"`)
	assert.Contains(t, string(data), `"Goblin Electromancer"`)

	_, _, err = execute(NewTestCommand(opts), dir)
	require.NoError(t, err, "results should match the golden file just written")

	writeFile(t, goldenPath, "{}\n")
	out, _, err = execute(NewTestCommand(opts), dir)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "do not match golden file")
}

func TestTestCommandJSONFailure(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"wrong.yaml": failingScenario})

	out, _, err := execute(NewTestCommand(fixtureOptions(t, "json")), dir)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("scenarios", "golden", "rtr.golden"), goldenFilePath(filepath.Join("scenarios", "rtr.yaml")))
}
