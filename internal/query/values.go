package query

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/roach88/cardsearch/internal/catalog"
)

// colorQuery is a parsed c: or ci: value. Besides the five color letters it
// accepts m (multicolored), c (colorless) and l (land).
type colorQuery struct {
	colors    catalog.Colors
	multi     bool
	colorless bool
	land      bool
}

func parseColorQuery(_ Resolver, _ Operator, raw string) (any, error) {
	var q colorQuery
	for _, r := range strings.ToLower(raw) {
		switch r {
		case 'm':
			q.multi = true
		case 'c':
			q.colorless = true
		case 'l':
			q.land = true
		default:
			if r > 0x7f {
				return nil, fmt.Errorf("unknown color %q", r)
			}
			c, ok := catalog.ColorFromLetter(byte(r))
			if !ok {
				return nil, fmt.Errorf("unknown color %q", r)
			}
			q.colors |= c
		}
	}
	return q, nil
}

func (q colorQuery) flagsHold(cs catalog.Colors, isLand bool) bool {
	return (!q.multi || cs.Multicolored()) &&
		(!q.colorless || cs.Colorless()) &&
		(!q.land || isLand)
}

// matchColors applies a c: or ci: test. ":" and ">=" mean the card has at least
// the queried colors, "=" means exactly them, "<=" at most them.
func (q colorQuery) matchColors(cs catalog.Colors, isLand bool, op Operator) bool {
	switch op {
	case OpColon, OpGe:
		return cs.Has(q.colors) && q.flagsHold(cs, isLand)
	case OpGt:
		return cs.Has(q.colors) && cs != q.colors && q.flagsHold(cs, isLand)
	case OpEq:
		return cs == q.colors && q.flagsHold(cs, isLand)
	case OpNe:
		return !(cs == q.colors && q.flagsHold(cs, isLand))
	case OpLe:
		return cs.Within(q.colors)
	case OpLt:
		return cs.Within(q.colors) && cs != q.colors
	}
	panic(fmt.Sprintf("query: operator %s reached a color comparison", op))
}

// DateRange is an inclusive span of days. A literal day is a one-day range,
// a year or month covers the whole period.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Compare reports whether t satisfies op against the range: "=" means
// within it, "<" before its start, ">" after its end.
func (d DateRange) Compare(t time.Time, op Operator) bool {
	switch op {
	case OpEq:
		return !t.Before(d.From) && !t.After(d.To)
	case OpNe:
		return t.Before(d.From) || t.After(d.To)
	case OpLt:
		return t.Before(d.From)
	case OpLe:
		return !t.After(d.To)
	case OpGt:
		return t.After(d.To)
	case OpGe:
		return !t.Before(d.From)
	}
	panic(fmt.Sprintf("query: operator %s reached a date comparison", op))
}

var (
	yearPattern = regexp.MustCompile(`^\d{4}$`)

	dayLayouts = []string{
		"2006-01-02",
		"2006.01.02",
		"2006/01/02",
		"2 January 2006",
		"2 Jan 2006",
		"January 2, 2006",
		"January 2 2006",
		"Jan 2, 2006",
		"Jan 2 2006",
	}
	monthLayouts = []string{
		"2006-01",
		"2006.01",
		"2006/01",
		"January 2006",
		"Jan 2006",
	}
)

// parseDateValue accepts a year, a month, a day in one of several layouts,
// or an edition reference resolved to that edition's release date.
func parseDateValue(r Resolver, _ Operator, raw string) (any, error) {
	s := strings.Join(strings.Fields(raw), " ")
	if yearPattern.MatchString(s) {
		from, _ := time.Parse("2006", s)
		return DateRange{From: from, To: from.AddDate(1, 0, -1)}, nil
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateRange{From: t, To: t}, nil
		}
	}
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateRange{From: t, To: t.AddDate(0, 1, -1)}, nil
		}
	}

	when, ok, err := r.ResolveTime(s)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%q is neither a date nor a known edition", raw)
	}
	return DateRange{From: when, To: when}, nil
}
