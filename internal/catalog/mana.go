package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ManaCost is a parsed mana cost such as "{2}{W}{U/B}".
//
// Generic mana is folded into a single count. Every other symbol is kept in
// Symbols keyed by its normalized form: lowercase, with hybrid color pairs
// ordered WUBRG ("{U/W}" becomes "w/u").
type ManaCost struct {
	Text    string
	Generic int
	Symbols map[string]int
}

var symbolPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// ParseManaCost parses a brace-delimited mana cost. An empty string yields
// the zero ManaCost, which IsZero reports as absent.
func ParseManaCost(s string) (ManaCost, error) {
	s = strings.TrimSpace(s)
	cost := ManaCost{Text: s, Symbols: map[string]int{}}
	if s == "" {
		return cost, nil
	}

	rest := s
	for rest != "" {
		loc := symbolPattern.FindStringSubmatchIndex(rest)
		if loc == nil || loc[0] != 0 {
			return ManaCost{}, fmt.Errorf("malformed mana cost %q", s)
		}
		inner := rest[loc[2]:loc[3]]
		rest = rest[loc[1]:]

		sym, generic, err := NormalizeSymbol(inner)
		if err != nil {
			return ManaCost{}, fmt.Errorf("mana cost %q: %w", s, err)
		}
		if sym == "" {
			cost.Generic += generic
			continue
		}
		cost.Symbols[sym]++
	}
	return cost, nil
}

// IsZero reports whether the card has no printed mana cost.
func (m ManaCost) IsZero() bool {
	return m.Text == ""
}

// Colors returns the colors of every colored symbol in the cost.
func (m ManaCost) Colors() Colors {
	var out Colors
	for sym := range m.Symbols {
		out |= SymbolColors(sym)
	}
	return out
}

// NormalizeSymbol normalizes the text between one pair of braces.
//
// A purely numeric symbol returns an empty sym and its generic amount.
// Half symbols ("{hw}", "{½}") and "{∞}" from joke sets are kept as
// symbols of their own. Unknown symbols return an error.
func NormalizeSymbol(inner string) (sym string, generic int, err error) {
	inner = strings.ToLower(strings.TrimSpace(inner))
	if inner == "" {
		return "", 0, fmt.Errorf("empty mana symbol")
	}
	if n, convErr := strconv.Atoi(inner); convErr == nil && n >= 0 {
		return "", n, nil
	}

	switch inner {
	case "½", "∞":
		return inner, 0, nil
	}
	if len(inner) == 1 {
		switch inner[0] {
		case 'w', 'u', 'b', 'r', 'g', 'c', 's', 'x', 'y', 'z':
			return inner, 0, nil
		}
		return "", 0, fmt.Errorf("unknown mana symbol {%s}", inner)
	}
	if len(inner) == 2 && inner[0] == 'h' && isColorLetter(inner[1:]) {
		return inner, 0, nil
	}

	parts := strings.Split(inner, "/")
	switch {
	case len(parts) == 2 && parts[1] == "p" && isColorLetter(parts[0]):
		return inner, 0, nil
	case len(parts) == 2 && parts[0] == "2" && isColorLetter(parts[1]):
		return inner, 0, nil
	case len(parts) == 2 && parts[0] == "c" && isColorLetter(parts[1]),
		len(parts) == 2 && parts[1] == "c" && isColorLetter(parts[0]):
		return "c/" + strings.Trim(parts[0]+parts[1], "c"), 0, nil
	case len(parts) == 2 && isColorPair(parts[0], parts[1]):
		return orderedPair(parts[0], parts[1]), 0, nil
	case len(parts) == 3 && parts[2] == "p" && isColorPair(parts[0], parts[1]):
		return orderedPair(parts[0], parts[1]) + "/p", 0, nil
	}
	return "", 0, fmt.Errorf("unknown mana symbol {%s}", inner)
}

func isColorPair(left, right string) bool {
	return isColorLetter(left) && isColorLetter(right) && left != right
}

// orderedPair joins two colors in WUBRG order.
func orderedPair(left, right string) string {
	if colorIndex(left) > colorIndex(right) {
		left, right = right, left
	}
	return left + "/" + right
}

// IsHybrid reports whether a normalized symbol can be paid with either of
// two options. Plain phyrexian symbols are not hybrid; hybrid phyrexian
// symbols such as "w/u/p" are.
func IsHybrid(sym string) bool {
	return strings.Contains(strings.TrimSuffix(sym, "/p"), "/")
}

// SymbolColors returns the colors a normalized symbol carries.
func SymbolColors(sym string) Colors {
	var out Colors
	for _, part := range strings.Split(sym, "/") {
		if len(part) == 2 && part[0] == 'h' {
			part = part[1:]
		}
		if len(part) != 1 {
			continue
		}
		if c, ok := ColorFromLetter(part[0]); ok {
			out |= c
		}
	}
	return out
}

// TextColors returns the colors of every mana symbol that appears in
// rules text, ignoring symbols such as {T} that carry no color.
func TextColors(text string) Colors {
	var out Colors
	for _, m := range symbolPattern.FindAllStringSubmatch(text, -1) {
		sym, _, err := NormalizeSymbol(m[1])
		if err != nil {
			continue
		}
		out |= SymbolColors(sym)
	}
	return out
}

func isColorLetter(s string) bool {
	return len(s) == 1 && colorIndex(s) >= 0
}

func colorIndex(s string) int {
	return strings.Index("wubrg", s)
}
