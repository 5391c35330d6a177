package query

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/cardsearch/internal/catalog"
	"github.com/roach88/cardsearch/internal/textnorm"
)

// Field describes one queryable field: the operators it accepts, how its
// value is parsed and how a parsed value is matched.
type Field struct {
	Name    string
	Aliases []string
	Ops     []Operator
	Level   Level

	// Ordered fields keep "<", "!=" and friends as comparisons. Unordered
	// fields treat "=" as ":" and "!" or "!=" as negation.
	Ordered bool

	// ExactBang makes "!" mean "exactly" rather than "not"; colors use it.
	ExactBang bool

	// List fields expand an unquoted comma list into an OR of tests (an AND
	// for negated tests).
	List bool

	// Subquery fields take a query as their value.
	Subquery bool

	// Negated fields are an alias for the negation of another field.
	Negated bool
	negates string

	Parse   func(r Resolver, op Operator, raw string) (any, error)
	LevelOf func(value any) Level

	MatchCard     func(cat *catalog.Catalog, c *catalog.Card, op Operator, v any) bool
	MatchPrinting func(cat *catalog.Catalog, c *catalog.Card, p *catalog.Printing, op Operator, v any) bool
}

var (
	textOps    = []Operator{OpColon, OpEq, OpBang, OpNe}
	orderedOps = []Operator{OpColon, OpEq, OpNe, OpBang, OpLt, OpLe, OpGt, OpGe}
	colonOnly  = []Operator{OpColon}
)

func (f *Field) supports(op Operator) bool {
	return slices.Contains(f.Ops, op)
}

// normalize maps an operator to the one the matcher implements and reports
// whether the test must be negated.
func (f *Field) normalize(op Operator) (Operator, bool) {
	switch {
	case f.ExactBang && op == OpBang:
		return OpEq, false
	case f.ExactBang:
		return op, false
	case !f.Ordered && (op == OpBang || op == OpNe):
		return OpColon, true
	case !f.Ordered && op == OpEq:
		return OpColon, false
	case f.Ordered && op == OpColon:
		return OpEq, false
	case f.Ordered && op == OpBang:
		return OpNe, false
	}
	return op, false
}

func (f *Field) target() *Field {
	return registry[f.negates]
}

var (
	registry = map[string]*Field{}
	aliases  = map[string]string{}
)

func register(f *Field) {
	registry[f.Name] = f
	aliases[f.Name] = f.Name
	for _, a := range f.Aliases {
		aliases[a] = f.Name
	}
}

func lookupField(name string) (*Field, bool) {
	canonical, ok := aliases[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return registry[canonical], true
}

// Fields returns the canonical names of every registered field, sorted.
func Fields() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func init() {
	for _, f := range []*Field{
		{
			Name: "name", Aliases: []string{"n"}, Ops: textOps, Level: LevelCard,
			Parse: parseFolded,
			MatchCard: func(_ *catalog.Catalog, c *catalog.Card, _ Operator, v any) bool {
				return matchName(c, v.(string), false)
			},
		},
		{
			Name: "o", Aliases: []string{"oracle", "text"}, Ops: textOps, Level: LevelCard,
			Parse: parseFolded,
			MatchCard: func(_ *catalog.Catalog, c *catalog.Card, _ Operator, v any) bool {
				return strings.Contains(c.FoldedText(), v.(string))
			},
		},
		{
			Name: "t", Aliases: []string{"type"}, Ops: textOps, Level: LevelCard, List: true,
			Parse: func(_ Resolver, _ Operator, raw string) (any, error) {
				words := strings.Fields(textnorm.Name(raw))
				if len(words) == 0 {
					return nil, fmt.Errorf("empty type")
				}
				return words, nil
			},
			MatchCard: func(_ *catalog.Catalog, c *catalog.Card, _ Operator, v any) bool {
				for _, w := range v.([]string) {
					if !c.HasType(w) {
						return false
					}
				}
				return true
			},
		},
		{
			Name: "ft", Aliases: []string{"flavor"}, Ops: textOps, Level: LevelPrinting,
			Parse: parseFolded,
			MatchPrinting: func(_ *catalog.Catalog, _ *catalog.Card, p *catalog.Printing, _ Operator, v any) bool {
				return strings.Contains(textnorm.Name(p.Flavor), v.(string))
			},
		},
		{
			Name: "a", Aliases: []string{"artist"}, Ops: textOps, Level: LevelPrinting, List: true,
			Parse: parseFolded,
			MatchPrinting: func(_ *catalog.Catalog, _ *catalog.Card, p *catalog.Printing, _ Operator, v any) bool {
				return strings.Contains(textnorm.Name(p.Artist), v.(string))
			},
		},
		{
			Name: "w", Aliases: []string{"watermark"}, Ops: textOps, Level: LevelPrinting,
			Parse: parseFolded,
			MatchPrinting: func(_ *catalog.Catalog, _ *catalog.Card, p *catalog.Printing, _ Operator, v any) bool {
				return p.Watermark != "" && strings.Contains(textnorm.Name(p.Watermark), v.(string))
			},
		},
		{
			Name: "e", Aliases: []string{"set", "edition"}, Ops: textOps, Level: LevelPrinting, List: true,
			Parse: func(r Resolver, _ Operator, raw string) (any, error) {
				return newSetRef(r.ResolveEditions(raw)), nil
			},
			MatchPrinting: matchSetRef,
		},
		{
			Name: "b", Aliases: []string{"block"}, Ops: textOps, Level: LevelPrinting, List: true,
			Parse: func(r Resolver, _ Operator, raw string) (any, error) {
				sets, err := r.ResolveBlock(raw)
				if err != nil {
					return nil, err
				}
				return newSetRef(sets), nil
			},
			MatchPrinting: matchSetRef,
		},
		{
			Name: "st", Aliases: []string{"settype"}, Ops: textOps, Level: LevelPrinting, List: true,
			Parse: func(_ Resolver, _ Operator, raw string) (any, error) {
				v := textnorm.Name(raw)
				if full, ok := setTypeAliases[v]; ok {
					v = full
				}
				return v, nil
			},
			MatchPrinting: func(cat *catalog.Catalog, _ *catalog.Card, p *catalog.Printing, _ Operator, v any) bool {
				return cat.SetOf(p).Type == v.(string)
			},
		},
		{
			Name: "r", Aliases: []string{"rarity"}, Ops: orderedOps, Level: LevelPrinting, Ordered: true, List: true,
			Parse: func(_ Resolver, _ Operator, raw string) (any, error) {
				return catalog.ParseRarity(raw)
			},
			MatchPrinting: func(_ *catalog.Catalog, _ *catalog.Card, p *catalog.Printing, op Operator, v any) bool {
				return compareOrdered(int(p.Rarity), int(v.(catalog.Rarity)), op)
			},
		},
		{
			Name: "c", Aliases: []string{"color"}, Ops: orderedOps, Level: LevelCard, Ordered: true, ExactBang: true,
			Parse: parseColorQuery,
			MatchCard: func(_ *catalog.Catalog, c *catalog.Card, op Operator, v any) bool {
				return v.(colorQuery).matchColors(c.Colors, c.HasType("land"), op)
			},
		},
		{
			Name: "ci", Aliases: []string{"id", "identity"}, Ops: orderedOps, Level: LevelCard, Ordered: true, ExactBang: true,
			Parse: parseColorQuery,
			MatchCard: func(_ *catalog.Catalog, c *catalog.Card, op Operator, v any) bool {
				return v.(colorQuery).matchColors(c.ColorIdentity, c.HasType("land"), op)
			},
		},
		{
			Name: "cmc", Aliases: []string{"mv"}, Ops: orderedOps, Level: LevelCard, Ordered: true,
			Parse: func(_ Resolver, _ Operator, raw string) (any, error) {
				n, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, fmt.Errorf("cmc must be a number, got %q", raw)
				}
				return n, nil
			},
			MatchCard: func(_ *catalog.Catalog, c *catalog.Card, op Operator, v any) bool {
				return compareFloat(c.CMC, v.(float64), op)
			},
		},
		statField("pow", []string{"power"}, func(c *catalog.Card) *catalog.Stat { return c.Power }),
		statField("tou", []string{"toughness"}, func(c *catalog.Card) *catalog.Stat { return c.Toughness }),
		statField("loy", []string{"loyalty"}, func(c *catalog.Card) *catalog.Stat { return c.Loyalty }),
		{
			Name: "mana", Aliases: []string{"m"}, Ops: orderedOps, Level: LevelCard, Ordered: true,
			Parse: func(_ Resolver, _ Operator, raw string) (any, error) {
				return parseManaPattern(raw)
			},
			MatchCard: func(_ *catalog.Catalog, c *catalog.Card, op Operator, v any) bool {
				return v.(manaPattern).match(c.ManaCost, op)
			},
		},
		{
			Name: "year", Ops: orderedOps, Level: LevelPrinting, Ordered: true,
			Parse: func(_ Resolver, _ Operator, raw string) (any, error) {
				y, err := strconv.Atoi(raw)
				if err != nil {
					return nil, fmt.Errorf("year must be an integer, got %q", raw)
				}
				return y, nil
			},
			MatchPrinting: func(_ *catalog.Catalog, _ *catalog.Card, p *catalog.Printing, op Operator, v any) bool {
				return compareOrdered(p.ReleaseDate.Year(), v.(int), op)
			},
		},
		{
			Name: "print", Aliases: []string{"date"}, Ops: orderedOps, Level: LevelPrinting, Ordered: true,
			Parse: parseDateValue,
			MatchPrinting: func(_ *catalog.Catalog, _ *catalog.Card, p *catalog.Printing, op Operator, v any) bool {
				return v.(DateRange).Compare(p.ReleaseDate, op)
			},
		},
		{
			Name: "firstprint", Ops: orderedOps, Level: LevelCard, Ordered: true,
			Parse: parseDateValue,
			MatchCard: func(_ *catalog.Catalog, c *catalog.Card, op Operator, v any) bool {
				return v.(DateRange).Compare(c.FirstRelease(), op)
			},
		},
		{
			Name: "lastprint", Ops: orderedOps, Level: LevelCard, Ordered: true,
			Parse: parseDateValue,
			MatchCard: func(_ *catalog.Catalog, c *catalog.Card, op Operator, v any) bool {
				return v.(DateRange).Compare(c.LastRelease(), op)
			},
		},
		legalityField("f", []string{"format", "legal"}, catalog.Legality.Playable),
		legalityField("banned", nil, func(l catalog.Legality) bool { return l == catalog.Banned }),
		legalityField("restricted", nil, func(l catalog.Legality) bool { return l == catalog.Restricted }),
		{
			Name: "is", Ops: textOps, List: true,
			Parse: func(_ Resolver, _ Operator, raw string) (any, error) {
				pred, ok := isPredicates[textnorm.Name(raw)]
				if !ok {
					return nil, fmt.Errorf("unknown is: value %q", raw)
				}
				return pred, nil
			},
			LevelOf: func(v any) Level { return v.(*isPredicate).level },
			MatchCard: func(cat *catalog.Catalog, c *catalog.Card, _ Operator, v any) bool {
				return v.(*isPredicate).card(cat, c)
			},
			MatchPrinting: func(cat *catalog.Catalog, c *catalog.Card, p *catalog.Printing, _ Operator, v any) bool {
				return v.(*isPredicate).printing(cat, c, p)
			},
		},
		{Name: "not", Ops: textOps, List: true, Negated: true, negates: "is"},
		{Name: "alt", Ops: colonOnly, Subquery: true},
		{Name: "part", Ops: colonOnly, Subquery: true},
		{Name: "sort", Aliases: []string{"order"}, Ops: []Operator{OpColon, OpEq}},
	} {
		register(f)
	}
}

func parseFolded(_ Resolver, _ Operator, raw string) (any, error) {
	v := textnorm.Name(raw)
	if v == "" {
		return nil, fmt.Errorf("empty value")
	}
	return v, nil
}

func matchName(c *catalog.Card, phrase string, exact bool) bool {
	if exact {
		return c.FoldedName() == phrase || c.FoldedFullName() == phrase
	}
	return strings.Contains(c.FoldedName(), phrase) || strings.Contains(c.FoldedFullName(), phrase)
}

var setTypeAliases = map[string]string{
	"cmd":     "commander",
	"exp":     "expansion",
	"funny":   "un",
	"std":     "starter",
	"dd":      "duel deck",
	"ftv":     "from the vault",
	"masters": "reprint",
}

// setRef is a resolved edition or block reference.
type setRef struct {
	codes map[string]bool
}

func newSetRef(sets []*catalog.Set) setRef {
	ref := setRef{codes: make(map[string]bool, len(sets))}
	for _, s := range sets {
		ref.codes[s.Code] = true
	}
	return ref
}

func matchSetRef(_ *catalog.Catalog, _ *catalog.Card, p *catalog.Printing, _ Operator, v any) bool {
	return v.(setRef).codes[p.SetCode]
}

func statField(name string, aliases []string, get func(*catalog.Card) *catalog.Stat) *Field {
	return &Field{
		Name: name, Aliases: aliases, Ops: orderedOps, Level: LevelCard, Ordered: true,
		Parse: func(_ Resolver, _ Operator, raw string) (any, error) {
			return catalog.ParseStat(raw)
		},
		MatchCard: func(_ *catalog.Catalog, c *catalog.Card, op Operator, v any) bool {
			st := get(c)
			want := v.(catalog.Stat)
			if st == nil {
				return false
			}
			if !st.Comparable(want) {
				// "1+*" is never equal to "3".
				return op == OpNe
			}
			return compareOrdered(st.Compare(want), 0, op)
		},
	}
}

func legalityField(name string, aliases []string, ok func(catalog.Legality) bool) *Field {
	return &Field{
		Name: name, Aliases: aliases, Ops: textOps, Level: LevelCard, List: true,
		Parse: parseFolded,
		MatchCard: func(_ *catalog.Catalog, c *catalog.Card, _ Operator, v any) bool {
			return ok(c.Legality(v.(string)))
		},
	}
}

// compareOrdered applies an ordered operator to a and b.
func compareOrdered(a, b int, op Operator) bool {
	switch op {
	case OpEq:
		return a == b
	case OpNe:
		return a != b
	case OpLt:
		return a < b
	case OpLe:
		return a <= b
	case OpGt:
		return a > b
	case OpGe:
		return a >= b
	}
	panic(fmt.Sprintf("query: operator %s reached an ordered comparison", op))
}

func compareFloat(a, b float64, op Operator) bool {
	switch {
	case a < b:
		return compareOrdered(-1, 0, op)
	case a > b:
		return compareOrdered(1, 0, op)
	}
	return compareOrdered(0, 0, op)
}
