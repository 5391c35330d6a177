package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Stat is a power, toughness or loyalty value.
//
// Printed stats are usually integers but may involve a variable "*":
// "1+*" is Num 1 with Star +1, "7-*" is Num 7 with Star -1, "*" alone is
// Num 0 with Star +1 and "*²" is Squared. Half values and "∞" are kept in
// Num as floats.
type Stat struct {
	Raw     string
	Num     float64
	Star    int
	Squared bool
}

// ParseStat parses a printed stat. It accepts "3", "-1", "½", "2.5", "∞",
// "*", "1+*", "*+1", "7-*", "*-1", "*²" and "*2".
func ParseStat(s string) (Stat, error) {
	raw := strings.TrimSpace(s)
	t := strings.ReplaceAll(raw, " ", "")
	t = strings.ReplaceAll(t, "−", "-")
	if t == "" {
		return Stat{}, fmt.Errorf("empty stat")
	}

	star := strings.IndexByte(t, '*')
	if star < 0 {
		n, err := parseStatNumber(t)
		if err != nil {
			return Stat{}, err
		}
		return Stat{Raw: raw, Num: n}, nil
	}

	left, right := t[:star], t[star+1:]
	st := Stat{Raw: raw, Star: 1}
	switch {
	case left == "" && right == "":
	case left == "" && (right == "²" || right == "2" || right == "^2"):
		st.Squared = true
	case left == "" && (right[0] == '+' || right[0] == '-'):
		n, err := parseStatNumber(right[1:])
		if err != nil {
			return Stat{}, err
		}
		if right[0] == '-' {
			n = -n
		}
		st.Num = n
	case right == "" && strings.HasSuffix(left, "+"):
		n, err := parseStatNumber(strings.TrimSuffix(left, "+"))
		if err != nil {
			return Stat{}, err
		}
		st.Num = n
	case right == "" && strings.HasSuffix(left, "-"):
		n, err := parseStatNumber(strings.TrimSuffix(left, "-"))
		if err != nil {
			return Stat{}, err
		}
		st.Num = n
		st.Star = -1
	default:
		return Stat{}, fmt.Errorf("unrecognized stat %q", raw)
	}
	return st, nil
}

func parseStatNumber(s string) (float64, error) {
	if s == "∞" {
		return math.Inf(1), nil
	}
	half := 0.0
	if rest, ok := strings.CutSuffix(s, "½"); ok {
		half, s = 0.5, rest
		switch s {
		case "":
			return half, nil
		case "-":
			return -half, nil
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognized stat number %q", s)
	}
	if n < 0 {
		return n - half, nil
	}
	return n + half, nil
}

// Comparable reports whether s and o have the same variable shape. Only
// comparable stats can be ordered against each other; "1+*" is never
// compared with "3".
func (s Stat) Comparable(o Stat) bool {
	return s.Star == o.Star && s.Squared == o.Squared
}

// Compare orders two comparable stats by their numeric part.
func (s Stat) Compare(o Stat) int {
	switch {
	case s.Num < o.Num:
		return -1
	case s.Num > o.Num:
		return 1
	}
	return 0
}

// IsNumeric reports whether the stat has no variable part.
func (s Stat) IsNumeric() bool {
	return s.Star == 0 && !s.Squared
}

func (s Stat) String() string {
	return s.Raw
}
