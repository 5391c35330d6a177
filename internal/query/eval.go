package query

import (
	"fmt"
	"strings"

	"github.com/roach88/cardsearch/internal/catalog"
	"github.com/roach88/cardsearch/internal/textnorm"
)

// Evaluate runs a parsed query against a catalog. It cannot fail: every
// value was validated by Parse. A node or field the evaluator does not know
// is a programming error and panics.
//
// Evaluation works on match sets, one flag per printing in catalog order.
// Card-level tests set or clear a whole card at once.
func Evaluate(q *Query, cat *catalog.Catalog) *Result {
	e := &evaluator{cat: cat, cards: cat.Cards(), printings: cat.Printings()}
	set := e.eval(q.Root)

	res := &Result{Query: q, Scope: scopeOf(q.Root)}
	for i, card := range e.cards {
		start, end := cat.CardRange(i)
		var matched []*catalog.Printing
		for j := start; j < end; j++ {
			if set[j] {
				matched = append(matched, e.printings[j])
			}
		}
		if len(matched) > 0 {
			res.Matches = append(res.Matches, Match{Card: card, Printings: matched})
		}
	}
	sortMatches(res.Matches, q.Sort)
	return res
}

type evaluator struct {
	cat       *catalog.Catalog
	cards     []*catalog.Card
	printings []*catalog.Printing
}

func (e *evaluator) all() []bool {
	out := make([]bool, len(e.printings))
	for i := range out {
		out[i] = true
	}
	return out
}

func (e *evaluator) none() []bool {
	return make([]bool, len(e.printings))
}

func (e *evaluator) fillCard(set []bool, i int) {
	start, end := e.cat.CardRange(i)
	for j := start; j < end; j++ {
		set[j] = true
	}
}

func (e *evaluator) eval(n Node) []bool {
	switch n := n.(type) {
	case *And:
		out := e.all()
		var parts []*FieldTest
		for _, child := range n.Children {
			if ft, ok := child.(*FieldTest); ok && ft.Field == "part" {
				parts = append(parts, ft)
				continue
			}
			intersect(out, e.eval(child))
		}
		if len(parts) > 0 {
			intersect(out, e.evalParts(parts))
		}
		return out

	case *Or:
		out := e.none()
		for _, child := range n.Children {
			union(out, e.eval(child))
		}
		return out

	case *Not:
		out := e.eval(n.Child)
		for i := range out {
			out[i] = !out[i]
		}
		return out

	case *TextTest:
		return e.evalText(n)

	case *FieldTest:
		switch n.Field {
		case "alt":
			return e.evalAlt(n)
		case "part":
			return e.evalParts([]*FieldTest{n})
		}
		return e.evalField(n)
	}
	panic(fmt.Sprintf("query: unknown node type %T", n))
}

func (e *evaluator) evalText(t *TextTest) []bool {
	out := e.none()
	for i, c := range e.cards {
		var ok bool
		switch t.Scope {
		case ScopeName:
			ok = matchName(c, t.Phrase, t.Exact)
		case ScopeText:
			ok = textContains(c, t.Phrase)
		default:
			ok = matchName(c, t.Phrase, t.Exact) || textContains(c, t.Phrase)
		}
		if ok {
			e.fillCard(out, i)
		}
	}
	return out
}

func textContains(c *catalog.Card, phrase string) bool {
	return phrase != "" && strings.Contains(c.FoldedText(), phrase)
}

func (e *evaluator) evalField(t *FieldTest) []bool {
	f, ok := registry[t.Field]
	if !ok {
		panic(fmt.Sprintf("query: field %q is not registered", t.Field))
	}

	out := e.none()
	for i, c := range e.cards {
		if t.Level == LevelCard {
			if f.MatchCard(e.cat, c, t.Op, t.Value) {
				e.fillCard(out, i)
			}
			continue
		}
		start, end := e.cat.CardRange(i)
		for j := start; j < end; j++ {
			out[j] = f.MatchPrinting(e.cat, c, e.printings[j], t.Op, t.Value)
		}
	}
	return out
}

// evalAlt matches every printing of a card that has at least one printing
// matching the subquery.
func (e *evaluator) evalAlt(t *FieldTest) []bool {
	sub := e.eval(t.Value.(Node))
	out := e.none()
	for i := range e.cards {
		if e.anyInCard(sub, i) {
			e.fillCard(out, i)
		}
	}
	return out
}

// evalParts matches cards whose family of parts can satisfy every part:
// subquery with a distinct part each. A single-part card is its own family.
func (e *evaluator) evalParts(tests []*FieldTest) []bool {
	sat := make([][]bool, len(tests))
	for k, t := range tests {
		sub := e.eval(t.Value.(Node))
		sat[k] = make([]bool, len(e.cards))
		for i := range e.cards {
			sat[k][i] = e.anyInCard(sub, i)
		}
	}

	out := e.none()
	for i := range e.cards {
		family := e.family(i)
		if assignParts(sat, family, 0, make([]bool, len(family))) {
			e.fillCard(out, i)
		}
	}
	return out
}

// assignParts looks for an injective assignment of tests k.. to family
// members not yet used.
func assignParts(sat [][]bool, family []int, k int, used []bool) bool {
	if k == len(sat) {
		return true
	}
	for m, card := range family {
		if used[m] || !sat[k][card] {
			continue
		}
		used[m] = true
		if assignParts(sat, family, k+1, used) {
			return true
		}
		used[m] = false
	}
	return false
}

// family returns the catalog indexes of every part of card i.
func (e *evaluator) family(i int) []int {
	c := e.cards[i]
	if !c.Multipart() {
		return []int{i}
	}
	out := make([]int, 0, len(c.Names))
	for _, name := range c.Names {
		if j, ok := e.cat.CardIndex(textnorm.Key(name)); ok {
			out = append(out, j)
		}
	}
	return out
}

func (e *evaluator) anyInCard(set []bool, i int) bool {
	start, end := e.cat.CardRange(i)
	for j := start; j < end; j++ {
		if set[j] {
			return true
		}
	}
	return false
}

func intersect(dst, src []bool) {
	for i := range dst {
		dst[i] = dst[i] && src[i]
	}
}

func union(dst, src []bool) {
	for i := range dst {
		dst[i] = dst[i] || src[i]
	}
}

// scopeOf reports whether any test in the tree decides per printing.
// Subquery fields decide per card, whatever their subquery holds.
func scopeOf(n Node) ResultScope {
	switch n := n.(type) {
	case *And:
		for _, c := range n.Children {
			if scopeOf(c) == ResultPrintings {
				return ResultPrintings
			}
		}
	case *Or:
		for _, c := range n.Children {
			if scopeOf(c) == ResultPrintings {
				return ResultPrintings
			}
		}
	case *Not:
		return scopeOf(n.Child)
	case *FieldTest:
		if n.Level == LevelPrinting {
			return ResultPrintings
		}
	}
	return ResultCards
}
