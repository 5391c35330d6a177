// Package catalog holds the immutable card corpus: sets, blocks, cards,
// printings and artists, with the reference resolution the query language
// needs.
//
// A Catalog is built once by Builder and never mutated afterwards, so it is
// safe to share between goroutines. Subset derives a restricted catalog that
// shares Set and Printing records with its parent.
package catalog

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/roach88/cardsearch/internal/textnorm"
)

// Catalog is the indexed, read-only card corpus.
type Catalog struct {
	sets       []*Set
	setsByCode map[string]*Set

	blocks     []*Block
	blocksByID map[string]*Block

	cards      []*Card
	cardsByKey map[string]int

	// printings holds every printing grouped by card in corpus order;
	// card i owns printings[starts[i]:starts[i+1]].
	printings []*Printing
	starts    []int

	artists       []*Artist
	artistsBySlug map[string]*Artist

	formats  []string
	warnings []SlugCollision
}

// Sets returns every set in corpus order.
func (c *Catalog) Sets() []*Set { return c.sets }

// Set looks a set up by code, case-insensitively.
func (c *Catalog) Set(code string) (*Set, bool) {
	s, ok := c.setsByCode[strings.ToLower(strings.TrimSpace(code))]
	return s, ok
}

// Blocks returns every block in corpus order of its first set.
func (c *Catalog) Blocks() []*Block { return c.blocks }

// Cards returns every card in corpus order.
func (c *Catalog) Cards() []*Card { return c.cards }

// Card looks a card up by name or key.
func (c *Catalog) Card(name string) (*Card, bool) {
	i, ok := c.cardsByKey[textnorm.Key(name)]
	if !ok {
		return nil, false
	}
	return c.cards[i], true
}

// Parts returns every part of a multipart card in printed order. A card
// with one part returns itself.
func (c *Catalog) Parts(card *Card) []*Card {
	if !card.Multipart() {
		return []*Card{card}
	}
	parts := make([]*Card, 0, len(card.Names))
	for _, name := range card.Names {
		if p, ok := c.Card(name); ok {
			parts = append(parts, p)
		}
	}
	return parts
}

// CardIndex returns the corpus position of the card with the given key.
func (c *Catalog) CardIndex(key string) (int, bool) {
	i, ok := c.cardsByKey[key]
	return i, ok
}

// Printings returns every printing, grouped by card in corpus order.
func (c *Catalog) Printings() []*Printing { return c.printings }

// CardRange returns the half-open range of Printings owned by card i.
func (c *Catalog) CardRange(i int) (start, end int) {
	return c.starts[i], c.starts[i+1]
}

// CardOf follows a printing's card reference within this catalog.
func (c *Catalog) CardOf(p *Printing) *Card {
	i, ok := c.cardsByKey[p.CardKey]
	if !ok {
		return nil
	}
	return c.cards[i]
}

// SetOf follows a printing's set reference.
func (c *Catalog) SetOf(p *Printing) *Set {
	return c.setsByCode[p.SetCode]
}

// Artists returns every artist in order of first attributed printing.
func (c *Catalog) Artists() []*Artist { return c.artists }

// Artist looks an artist up by slug or by any spelling of the name.
func (c *Catalog) Artist(name string) (*Artist, bool) {
	a, ok := c.artistsBySlug[textnorm.Slug(name)]
	return a, ok
}

// Formats returns every format named in any card's legalities, sorted.
func (c *Catalog) Formats() []string { return c.formats }

// Warnings returns the artist slug collisions found while indexing.
func (c *Catalog) Warnings() []SlugCollision { return c.warnings }

// LegalEverywhere reports whether the card is playable in every format the
// catalog knows about.
func (c *Catalog) LegalEverywhere(card *Card) bool {
	if len(c.formats) == 0 {
		return false
	}
	for _, f := range c.formats {
		if !card.Legalities[f].Playable() {
			return false
		}
	}
	return true
}

// LegalNowhere reports whether the card is playable in no format.
func (c *Catalog) LegalNowhere(card *Card) bool {
	for _, l := range card.Legalities {
		if l.Playable() {
			return false
		}
	}
	return true
}

// NumberOfCards returns the number of cards.
func (c *Catalog) NumberOfCards() int { return len(c.cards) }

// NumberOfPrintings returns the number of printings.
func (c *Catalog) NumberOfPrintings() int { return len(c.printings) }

// NumberOfSets returns the number of sets.
func (c *Catalog) NumberOfSets() int { return len(c.sets) }

// NumberOfArtists returns the number of distinct artist slugs.
func (c *Catalog) NumberOfArtists() int { return len(c.artists) }

// index rebuilds the derived printing, artist and format indexes from
// c.cards. Slug collisions are collected, and logged when report is set.
func (c *Catalog) index(report bool) {
	c.cardsByKey = make(map[string]int, len(c.cards))
	c.starts = make([]int, 0, len(c.cards)+1)
	c.printings = c.printings[:0]
	formats := map[string]struct{}{}

	for i, card := range c.cards {
		c.cardsByKey[card.Key] = i
		c.starts = append(c.starts, len(c.printings))
		c.printings = append(c.printings, card.Printings...)
		for f := range card.Legalities {
			formats[f] = struct{}{}
		}
	}
	c.starts = append(c.starts, len(c.printings))

	c.formats = c.formats[:0]
	for f := range formats {
		c.formats = append(c.formats, f)
	}
	slices.Sort(c.formats)

	c.artists = nil
	c.artistsBySlug = map[string]*Artist{}
	c.warnings = nil
	for _, p := range c.printings {
		if p.ArtistSlug == "" {
			continue
		}
		a, ok := c.artistsBySlug[p.ArtistSlug]
		if !ok {
			a = &Artist{Slug: p.ArtistSlug, Name: p.Artist}
			c.artistsBySlug[p.ArtistSlug] = a
			c.artists = append(c.artists, a)
		} else if a.Name != p.Artist && !c.collisionSeen(a.Slug, p.Artist) {
			w := SlugCollision{Slug: a.Slug, Canonical: a.Name, Other: p.Artist}
			c.warnings = append(c.warnings, w)
			if report {
				slog.Warn("artist name collision",
					"slug", w.Slug,
					"canonical", w.Canonical,
					"other", w.Other)
			}
		}
		a.Printings = append(a.Printings, p)
	}
}

func (c *Catalog) collisionSeen(slug, other string) bool {
	for _, w := range c.warnings {
		if w.Slug == slug && w.Other == other {
			return true
		}
	}
	return false
}
