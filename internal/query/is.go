package query

import (
	"strings"

	"github.com/roach88/cardsearch/internal/catalog"
)

// isPredicate is one is:/not: keyword. Card-level keywords set card;
// printing-level keywords set printing.
type isPredicate struct {
	name     string
	level    Level
	card     func(cat *catalog.Catalog, c *catalog.Card) bool
	printing func(cat *catalog.Catalog, c *catalog.Card, p *catalog.Printing) bool
}

var isPredicates = map[string]*isPredicate{}

func cardIs(name string, fn func(c *catalog.Card) bool, aliases ...string) {
	pred := &isPredicate{
		name:  name,
		level: LevelCard,
		card:  func(_ *catalog.Catalog, c *catalog.Card) bool { return fn(c) },
	}
	for _, n := range append([]string{name}, aliases...) {
		isPredicates[n] = pred
	}
}

func printingIs(name string, fn func(cat *catalog.Catalog, c *catalog.Card, p *catalog.Printing) bool, aliases ...string) {
	pred := &isPredicate{name: name, level: LevelPrinting, printing: fn}
	for _, n := range append([]string{name}, aliases...) {
		isPredicates[n] = pred
	}
}

func layoutIs(layouts ...string) func(c *catalog.Card) bool {
	return func(c *catalog.Card) bool {
		for _, l := range layouts {
			if c.Layout == l {
				return true
			}
		}
		return false
	}
}

var permanentTypes = []string{"artifact", "creature", "enchantment", "land", "planeswalker", "battle"}

func isPermanent(c *catalog.Card) bool {
	for _, t := range permanentTypes {
		if c.HasType(t) {
			return true
		}
	}
	return false
}

func setTypeIs(types ...string) func(cat *catalog.Catalog, _ *catalog.Card, p *catalog.Printing) bool {
	return func(cat *catalog.Catalog, _ *catalog.Card, p *catalog.Printing) bool {
		st := cat.SetOf(p).Type
		for _, t := range types {
			if st == t {
				return true
			}
		}
		return false
	}
}

func init() {
	cardIs("split", layoutIs("split"))
	cardIs("flip", layoutIs("flip"))
	cardIs("dfc", layoutIs("double-faced", "transform", "modal_dfc"), "transform", "double-faced")
	cardIs("meld", layoutIs("meld"))
	cardIs("multipart", (*catalog.Card).Multipart)
	cardIs("primary", (*catalog.Card).Primary)
	cardIs("secondary", func(c *catalog.Card) bool { return !c.Primary() })
	cardIs("permanent", isPermanent)
	cardIs("spell", func(c *catalog.Card) bool { return !c.HasType("land") })
	cardIs("vanilla", func(c *catalog.Card) bool {
		return c.HasType("creature") && strings.TrimSpace(c.Text) == ""
	})
	cardIs("reserved", func(c *catalog.Card) bool { return c.Reserved })
	cardIs("commander", func(c *catalog.Card) bool {
		if c.Primary() && c.HasType("legendary") && c.HasType("creature") {
			return true
		}
		return strings.Contains(c.FoldedText(), "can be your commander")
	}, "general")

	printingIs("promo", setTypeIs("promo"))
	printingIs("funny", setTypeIs("un", "funny"), "un")
	printingIs("reprint", func(_ *catalog.Catalog, c *catalog.Card, p *catalog.Printing) bool {
		return p.ReleaseDate.After(c.FirstRelease())
	})
	printingIs("firstprint", func(_ *catalog.Catalog, c *catalog.Card, p *catalog.Printing) bool {
		return p.ReleaseDate.Equal(c.FirstRelease())
	}, "first")
}
