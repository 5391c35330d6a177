// Package carddb is the card search database: a catalog built from a corpus
// together with the query and spelling services that run against it.
//
// A Database is immutable once constructed and safe for concurrent use.
package carddb

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/roach88/cardsearch/internal/catalog"
	"github.com/roach88/cardsearch/internal/corpus"
	"github.com/roach88/cardsearch/internal/query"
	"github.com/roach88/cardsearch/internal/spelling"
)

// Database answers searches over one catalog.
type Database struct {
	cat       *catalog.Catalog
	bareScope query.TextScope

	suggestOnce sync.Once
	suggester   *spelling.Suggester
}

// Option configures New and Load.
type Option func(*options)

type options struct {
	bareScope query.TextScope
	validate  bool
}

// WithBareScope sets where bare words in search text are matched.
func WithBareScope(scope query.TextScope) Option {
	return func(o *options) {
		o.bareScope = scope
	}
}

// WithValidation makes Load check the corpus file against its schema
// before building.
func WithValidation(validate bool) Option {
	return func(o *options) {
		o.validate = validate
	}
}

func buildOptions(opts []Option) options {
	o := options{bareScope: query.ScopeNameOrText}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New builds a database from a decoded corpus.
func New(raw catalog.RawCorpus, opts ...Option) (*Database, error) {
	o := buildOptions(opts)
	cat, err := catalog.Build(raw)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	return &Database{cat: cat, bareScope: o.bareScope}, nil
}

// Load reads the corpus file at path and builds a database from it.
func Load(path string, opts ...Option) (*Database, error) {
	o := buildOptions(opts)
	raw, err := corpus.ReadFile(path, o.validate)
	if err != nil {
		return nil, err
	}
	db, err := New(raw, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("corpus loaded",
		"path", path,
		"cards", db.NumberOfCards(),
		"printings", db.NumberOfPrintings(),
		"sets", db.NumberOfSets(),
		"artists", db.NumberOfArtists(),
		"warnings", len(db.Warnings()))
	return db, nil
}

// Parse parses search text against this database's references.
func (d *Database) Parse(text string) (*query.Query, error) {
	return query.Parse(text, d.cat, query.WithBareScope(d.bareScope))
}

// Search parses and evaluates search text.
func (d *Database) Search(text string) (*query.Result, error) {
	q, err := d.Parse(text)
	if err != nil {
		return nil, err
	}
	return d.SearchQuery(q), nil
}

// SearchQuery evaluates an already parsed query. The query should have been
// parsed against this database or one it was derived from.
func (d *Database) SearchQuery(q *query.Query) *query.Result {
	return query.Evaluate(q, d.cat)
}

// Subset returns a database restricted to the sets with the given codes.
// Unknown codes are ignored.
func (d *Database) Subset(codes []string) *Database {
	return &Database{cat: d.cat.Subset(codes), bareScope: d.bareScope}
}

// SuggestSpelling returns the card name closest to word. The title index
// is built on first use.
func (d *Database) SuggestSpelling(word string) (string, bool) {
	d.suggestOnce.Do(func() {
		cards := d.cat.Cards()
		titles := make([]string, len(cards))
		for i, c := range cards {
			titles[i] = c.Name
		}
		d.suggester = spelling.New(titles)
	})
	i, ok := d.suggester.Suggest(word)
	if !ok {
		return "", false
	}
	return d.cat.Cards()[i].Name, true
}

// SuggestQuery proposes a card name for a search that found nothing. Only
// searches made of plain words are corrected; anything with field or
// grouping syntax gets no suggestion.
func (d *Database) SuggestQuery(text string) (string, bool) {
	if strings.ContainsAny(text, ":<>=!()\"") {
		return "", false
	}
	return d.SuggestSpelling(text)
}

// Catalog returns the underlying catalog.
func (d *Database) Catalog() *catalog.Catalog { return d.cat }

// Warnings returns the data-quality warnings recorded while building.
func (d *Database) Warnings() []catalog.SlugCollision { return d.cat.Warnings() }

func (d *Database) NumberOfCards() int     { return d.cat.NumberOfCards() }
func (d *Database) NumberOfPrintings() int { return d.cat.NumberOfPrintings() }
func (d *Database) NumberOfSets() int      { return d.cat.NumberOfSets() }
func (d *Database) NumberOfArtists() int   { return d.cat.NumberOfArtists() }

// Card looks a card up by name or key.
func (d *Database) Card(name string) (*catalog.Card, bool) { return d.cat.Card(name) }

// Set looks a set up by code.
func (d *Database) Set(code string) (*catalog.Set, bool) { return d.cat.Set(code) }

// Artist looks an artist up by display name or slug.
func (d *Database) Artist(name string) (*catalog.Artist, bool) { return d.cat.Artist(name) }
