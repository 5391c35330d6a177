package catalog

import (
	"slices"
	"strings"
	"time"

	"github.com/roach88/cardsearch/internal/textnorm"
)

// ResolveEditions maps user text to sets. It tries, in order, an exact set
// code, an exact Gatherer code, an exact normalized name and finally a
// normalized-name substring. The first tier with any match wins. Results
// are in corpus order; no match yields an empty slice.
func (c *Catalog) ResolveEditions(text string) []*Set {
	code := strings.ToLower(strings.TrimSpace(text))
	name := textnorm.Name(text)
	if name == "" {
		return nil
	}

	if s, ok := c.setsByCode[code]; ok {
		return []*Set{s}
	}

	tiers := []func(*Set) bool{
		func(s *Set) bool { return s.GathererCode != "" && strings.EqualFold(s.GathererCode, code) },
		func(s *Set) bool { return textnorm.Name(s.Name) == name },
		func(s *Set) bool { return strings.Contains(textnorm.Name(s.Name), name) },
	}
	for _, match := range tiers {
		var out []*Set
		for _, s := range c.sets {
			if match(s) {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// ResolveBlock maps user text to the sets of exactly one block. A block code
// or normalized block name matches directly; otherwise the text is resolved
// as an edition and the block of the resulting sets is used, a standalone
// set counting as its own block. Text spanning several blocks is an
// AmbiguousReferenceError. No match yields an empty slice.
func (c *Catalog) ResolveBlock(text string) ([]*Set, error) {
	code := strings.ToLower(strings.TrimSpace(text))
	if b, ok := c.blocksByID[code]; ok {
		return b.Sets, nil
	}
	if b, ok := c.blocksByID[textnorm.Name(text)]; ok {
		return b.Sets, nil
	}

	editions := c.ResolveEditions(text)
	if len(editions) == 0 {
		return nil, nil
	}

	var blocks []string
	for _, s := range editions {
		if !slices.Contains(blocks, s.Block()) {
			blocks = append(blocks, s.Block())
		}
	}
	if len(blocks) > 1 {
		return nil, &AmbiguousReferenceError{Kind: ReferenceBlock, Text: text, Matches: blocks}
	}

	if b, ok := c.blocksByID[blocks[0]]; ok {
		return b.Sets, nil
	}
	return editions, nil
}

// ResolveTime maps an edition reference to that edition's release date.
// The bool is false when nothing matches. A reference matching more than
// one set is an AmbiguousReferenceError.
func (c *Catalog) ResolveTime(text string) (time.Time, bool, error) {
	sets := c.ResolveEditions(text)
	switch len(sets) {
	case 0:
		return time.Time{}, false, nil
	case 1:
		return sets[0].ReleaseDate, true, nil
	}
	codes := make([]string, len(sets))
	for i, s := range sets {
		codes[i] = s.Code
	}
	return time.Time{}, false, &AmbiguousReferenceError{Kind: ReferenceTime, Text: text, Matches: codes}
}
