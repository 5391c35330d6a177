package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/roach88/cardsearch/internal/catalog"
)

// SortKey names a result order. Every order is stable: ties keep corpus
// order.
type SortKey string

const (
	SortNone   SortKey = ""
	SortName   SortKey = "name"
	SortNew    SortKey = "new"
	SortOld    SortKey = "old"
	SortNewAll SortKey = "newall"
	SortOldAll SortKey = "oldall"
	SortCMC    SortKey = "cmc"
	SortPow    SortKey = "pow"
	SortTou    SortKey = "tou"
)

var sortAliases = map[string]SortKey{
	"name":      SortName,
	"new":       SortNew,
	"newest":    SortNew,
	"old":       SortOld,
	"oldest":    SortOld,
	"newall":    SortNewAll,
	"oldall":    SortOldAll,
	"cmc":       SortCMC,
	"mv":        SortCMC,
	"pow":       SortPow,
	"power":     SortPow,
	"tou":       SortTou,
	"toughness": SortTou,
}

// ParseSortKey parses a sort: value.
func ParseSortKey(s string) (SortKey, error) {
	key, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return SortNone, fmt.Errorf("unknown sort order %q", s)
	}
	return key, nil
}

// sortMatches orders matches in place.
//
// name sorts ascending; new and old use the newest or oldest matched
// printing, newall and oldall every printing of the card; cmc, pow and tou
// sort descending with cards lacking the stat last.
func sortMatches(ms []Match, key SortKey) {
	var compare func(a, b Match) int
	switch key {
	case SortNone:
		return
	case SortName:
		compare = func(a, b Match) int { return cmp.Compare(a.Card.Name, b.Card.Name) }
	case SortNew:
		compare = func(a, b Match) int { return latest(b.Printings).Compare(latest(a.Printings)) }
	case SortOld:
		compare = func(a, b Match) int { return earliest(a.Printings).Compare(earliest(b.Printings)) }
	case SortNewAll:
		compare = func(a, b Match) int { return b.Card.LastRelease().Compare(a.Card.LastRelease()) }
	case SortOldAll:
		compare = func(a, b Match) int { return a.Card.FirstRelease().Compare(b.Card.FirstRelease()) }
	case SortCMC:
		compare = func(a, b Match) int { return cmp.Compare(b.Card.CMC, a.Card.CMC) }
	case SortPow:
		compare = statOrder(func(c *catalog.Card) *catalog.Stat { return c.Power })
	case SortTou:
		compare = statOrder(func(c *catalog.Card) *catalog.Stat { return c.Toughness })
	default:
		panic(fmt.Sprintf("query: unknown sort key %q", key))
	}
	slices.SortStableFunc(ms, compare)
}

func statOrder(get func(*catalog.Card) *catalog.Stat) func(a, b Match) int {
	return func(a, b Match) int {
		sa, sb := get(a.Card), get(b.Card)
		switch {
		case sa == nil && sb == nil:
			return 0
		case sa == nil:
			return 1
		case sb == nil:
			return -1
		}
		return cmp.Compare(sb.Num, sa.Num)
	}
}

func latest(ps []*catalog.Printing) time.Time {
	var t time.Time
	for _, p := range ps {
		if p.ReleaseDate.After(t) {
			t = p.ReleaseDate
		}
	}
	return t
}

func earliest(ps []*catalog.Printing) time.Time {
	var t time.Time
	for i, p := range ps {
		if i == 0 || p.ReleaseDate.Before(t) {
			t = p.ReleaseDate
		}
	}
	return t
}
