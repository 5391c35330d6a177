package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/cardsearch/internal/catalog"
)

// manaPattern is a parsed mana: value.
//
// Besides concrete symbols and generic mana it may contain the variables m,
// n and o, which stand for distinct colors not otherwise named in the
// pattern, and h, which stands for any hybrid symbol of the card's cost.
type manaPattern struct {
	generic int
	symbols map[string]int
	vars    []int // count per variable, in order m, n, o
	hybrid  int
}

var manaVariables = "mno"

func parseManaPattern(raw string) (manaPattern, error) {
	mp := manaPattern{symbols: map[string]int{}, vars: make([]int, len(manaVariables))}
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return manaPattern{}, fmt.Errorf("empty mana pattern")
	}

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return manaPattern{}, fmt.Errorf("unclosed { in mana pattern %q", raw)
			}
			if err := mp.addSymbol(s[i+1 : i+end]); err != nil {
				return manaPattern{}, err
			}
			i += end + 1
		case c >= '0' && c <= '9':
			j := i
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			n, err := strconv.Atoi(s[i:j])
			if err != nil {
				return manaPattern{}, fmt.Errorf("generic mana %s out of range", s[i:j])
			}
			mp.generic += n
			i = j
		default:
			if err := mp.addSymbol(s[i : i+1]); err != nil {
				return manaPattern{}, err
			}
			i++
		}
	}
	return mp, nil
}

func (mp *manaPattern) addSymbol(inner string) error {
	if len(inner) == 1 {
		if v := strings.IndexByte(manaVariables, inner[0]); v >= 0 {
			mp.vars[v]++
			return nil
		}
		if inner == "h" {
			mp.hybrid++
			return nil
		}
	}
	sym, generic, err := catalog.NormalizeSymbol(inner)
	if err != nil {
		return err
	}
	if sym == "" {
		mp.generic += generic
		return nil
	}
	mp.symbols[sym]++
	return nil
}

// bindings returns every assignment of the pattern's variables to distinct
// colors that the pattern does not name explicitly. A pattern without
// variables has one empty binding.
func (mp manaPattern) bindings() [][]string {
	var used []int
	for v, n := range mp.vars {
		if n > 0 {
			used = append(used, v)
		}
	}

	var free []string
	for _, letter := range []string{"w", "u", "b", "r", "g"} {
		if mp.symbols[letter] == 0 {
			free = append(free, letter)
		}
	}

	var out [][]string
	assign := make([]string, len(mp.vars))
	taken := map[string]bool{}
	var walk func(k int)
	walk = func(k int) {
		if k == len(used) {
			out = append(out, append([]string(nil), assign...))
			return
		}
		for _, color := range free {
			if taken[color] {
				continue
			}
			taken[color] = true
			assign[used[k]] = color
			walk(k + 1)
			taken[color] = false
		}
	}
	walk(0)
	return out
}

// concrete substitutes one binding into the pattern.
func (mp manaPattern) concrete(binding []string) map[string]int {
	out := make(map[string]int, len(mp.symbols)+len(binding))
	for sym, n := range mp.symbols {
		out[sym] = n
	}
	for v, color := range binding {
		if mp.vars[v] > 0 {
			out[color] += mp.vars[v]
		}
	}
	return out
}

// covers reports whether cost contains at least the pattern's symbols.
// Leftover hybrid symbols in cost pay for the pattern's h.
func (mp manaPattern) covers(cost catalog.ManaCost, want map[string]int) bool {
	if cost.Generic < mp.generic {
		return false
	}
	for sym, n := range want {
		if cost.Symbols[sym] < n {
			return false
		}
	}
	spare := 0
	for sym, n := range cost.Symbols {
		if catalog.IsHybrid(sym) {
			spare += n - want[sym]
		}
	}
	return spare >= mp.hybrid
}

// coveredBy reports whether cost contains no more than the pattern's
// symbols. Hybrid symbols beyond those named explicitly are absorbed by h.
func (mp manaPattern) coveredBy(cost catalog.ManaCost, want map[string]int) bool {
	if cost.Generic > mp.generic {
		return false
	}
	excess := 0
	for sym, n := range cost.Symbols {
		extra := n - want[sym]
		if extra <= 0 {
			continue
		}
		if !catalog.IsHybrid(sym) {
			return false
		}
		excess += extra
	}
	return excess <= mp.hybrid
}

// match compares a card's cost with the pattern. A comparison holds when
// some binding of the variables satisfies it; "!=" holds when no binding
// makes the two equal. Cards without a mana cost never match.
func (mp manaPattern) match(cost catalog.ManaCost, op Operator) bool {
	if cost.IsZero() {
		return false
	}

	var equal, superset, subset, strictSuperset, strictSubset bool
	for _, b := range mp.bindings() {
		want := mp.concrete(b)
		sup := mp.covers(cost, want)
		sub := mp.coveredBy(cost, want)
		equal = equal || (sup && sub)
		superset = superset || sup
		subset = subset || sub
		strictSuperset = strictSuperset || (sup && !sub)
		strictSubset = strictSubset || (sub && !sup)
	}

	switch op {
	case OpEq:
		return equal
	case OpNe:
		return !equal
	case OpGe:
		return superset
	case OpGt:
		return strictSuperset
	case OpLe:
		return subset
	case OpLt:
		return strictSubset
	}
	panic(fmt.Sprintf("query: operator %s reached a mana comparison", op))
}
