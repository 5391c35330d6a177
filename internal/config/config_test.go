package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardsearch/internal/query"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Sources{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, query.ScopeNameOrText, cfg.Scope())
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "cardsearch.yaml", `
corpus: from-file.json
listen: ":9000"
default_limit: 10
bare_scope: name
`)
	dotenv := writeFile(t, dir, ".env", `
CARDSEARCH_LISTEN=":9100"
CARDSEARCH_HISTORY_DB=history.db
CARDSEARCH_DEFAULT_LIMIT=20
`)

	cfg, err := Load(Sources{
		File:    file,
		DotEnv:  dotenv,
		Environ: []string{"CARDSEARCH_DEFAULT_LIMIT=30", "PATH=/usr/bin", "CARDSEARCH_VALIDATE_CORPUS=true"},
	})
	require.NoError(t, err)

	assert.Equal(t, "from-file.json", cfg.Corpus, "file beats default")
	assert.Equal(t, ":9100", cfg.Listen, ".env beats file")
	assert.Equal(t, "history.db", cfg.HistoryDB)
	assert.Equal(t, 30, cfg.DefaultLimit, "environment beats .env")
	assert.True(t, cfg.ValidateCorpus)
	assert.Equal(t, query.ScopeName, cfg.Scope())
}

func TestLoad_MissingDotEnvIsIgnored(t *testing.T) {
	cfg, err := Load(Sources{DotEnv: filepath.Join(t.TempDir(), ".env")})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		src  Sources
		want string
	}{
		{
			name: "missing config file",
			src:  Sources{File: filepath.Join(dir, "nope.yaml")},
			want: "failed to read config file",
		},
		{
			name: "unknown yaml key",
			src:  Sources{File: writeFile(t, dir, "typo.yaml", "corpuz: x.json\n")},
			want: "field corpuz not found",
		},
		{
			name: "bad limit",
			src:  Sources{Environ: []string{"CARDSEARCH_DEFAULT_LIMIT=many"}},
			want: "CARDSEARCH_DEFAULT_LIMIT",
		},
		{
			name: "zero limit",
			src:  Sources{Environ: []string{"CARDSEARCH_DEFAULT_LIMIT=0"}},
			want: "default_limit must be positive",
		},
		{
			name: "bad bool",
			src:  Sources{Environ: []string{"CARDSEARCH_VALIDATE_CORPUS=sometimes"}},
			want: "CARDSEARCH_VALIDATE_CORPUS",
		},
		{
			name: "bad scope",
			src:  Sources{Environ: []string{"CARDSEARCH_BARE_SCOPE=flavor"}},
			want: "bare_scope",
		},
		{
			name: "empty corpus",
			src:  Sources{Environ: []string{"CARDSEARCH_CORPUS="}},
			want: "corpus path is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
