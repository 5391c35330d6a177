// Package config resolves cardsearch settings from defaults, an optional
// YAML file, a .env file and CARDSEARCH_* environment variables, in that
// order. Command-line flags are applied on top by the cli package.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/roach88/cardsearch/internal/query"
)

// EnvPrefix prefixes every environment variable the config reads.
const EnvPrefix = "CARDSEARCH_"

// Config holds every setting.
type Config struct {
	// Corpus is the path of the JSON card corpus.
	Corpus string `yaml:"corpus"`

	// HistoryDB is the SQLite search history path. Empty disables history.
	HistoryDB string `yaml:"history_db"`

	// Listen is the address serve binds to.
	Listen string `yaml:"listen"`

	// DefaultLimit caps how many cards a search prints or returns unless
	// the caller asks otherwise.
	DefaultLimit int `yaml:"default_limit"`

	// ValidateCorpus checks the corpus against its schema on load.
	ValidateCorpus bool `yaml:"validate_corpus"`

	// BareScope is where bare words match: name, text or name_or_text.
	BareScope string `yaml:"bare_scope"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Corpus:       "cards.json",
		Listen:       ":8080",
		DefaultLimit: 50,
		BareScope:    query.ScopeNameOrText.String(),
	}
}

// Sources names where Load reads settings from.
type Sources struct {
	// File is a YAML config file. Empty means none; a named file must exist.
	File string

	// DotEnv is a .env file. A missing file is ignored.
	DotEnv string

	// Environ is the process environment in os.Environ form. Its values
	// win over DotEnv.
	Environ []string
}

// Load resolves the configuration from src.
func Load(src Sources) (Config, error) {
	cfg := Default()

	if src.File != "" {
		if err := cfg.mergeFile(src.File); err != nil {
			return Config{}, err
		}
	}

	env := map[string]string{}
	if src.DotEnv != "" {
		dotenv, err := godotenv.Read(src.DotEnv)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read %s: %w", src.DotEnv, err)
		default:
			env = dotenv
		}
	}
	for _, kv := range src.Environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	if err := cfg.mergeEnv(env); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(env map[string]string) error {
	for key, value := range env {
		name, ok := strings.CutPrefix(key, EnvPrefix)
		if !ok {
			continue
		}
		switch name {
		case "CORPUS":
			c.Corpus = value
		case "HISTORY_DB":
			c.HistoryDB = value
		case "LISTEN":
			c.Listen = value
		case "DEFAULT_LIMIT":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			c.DefaultLimit = n
		case "VALIDATE_CORPUS":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			c.ValidateCorpus = b
		case "BARE_SCOPE":
			c.BareScope = value
		}
	}
	return nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.Corpus == "" {
		return fmt.Errorf("corpus path is required")
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if _, err := query.ParseTextScope(c.BareScope); err != nil {
		return fmt.Errorf("bare_scope: %w", err)
	}
	return nil
}

// Scope returns the parsed bare-word scope. It assumes Validate passed.
func (c Config) Scope() query.TextScope {
	scope, err := query.ParseTextScope(c.BareScope)
	if err != nil {
		return query.ScopeNameOrText
	}
	return scope
}
