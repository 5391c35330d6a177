package harness

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_RTRBlock(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/rtr_block.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, fixtureDB(t), s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "failures: %v", result.Errors)
}

func TestMarshalSnapshot_Deterministic(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/rtr_block.yaml")
	require.NoError(t, err)
	db := fixtureDB(t)

	var outputs []string
	for i := 0; i < 3; i++ {
		result, err := Run(context.Background(), db, s)
		require.NoError(t, err)
		data, err := MarshalSnapshot(s, result)
		require.NoError(t, err)
		outputs = append(outputs, string(data))
	}
	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, outputs[1], outputs[2])
	assert.True(t, strings.HasSuffix(outputs[0], "}\n"))
}
