package catalog

import (
	"fmt"
	"math/bits"
	"strings"
)

// Colors is a set of the five colors, stored as a bit mask.
type Colors uint8

// The five colors in canonical WUBRG order.
const (
	White Colors = 1 << iota
	Blue
	Black
	Red
	Green
)

// AllColors holds every color.
const AllColors = White | Blue | Black | Red | Green

var colorLetters = []struct {
	color  Colors
	letter byte
}{
	{White, 'w'},
	{Blue, 'u'},
	{Black, 'b'},
	{Red, 'r'},
	{Green, 'g'},
}

// ColorFromLetter maps one of w, u, b, r, g (any case) to its color.
func ColorFromLetter(letter byte) (Colors, bool) {
	if letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	for _, cl := range colorLetters {
		if cl.letter == letter {
			return cl.color, true
		}
	}
	return 0, false
}

// ParseColorName accepts a color name ("White", "blue") or a single color
// letter ("W", "u").
func ParseColorName(s string) (Colors, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "blue", "u":
		return Blue, nil
	case "black", "b":
		return Black, nil
	case "red", "r":
		return Red, nil
	case "green", "g":
		return Green, nil
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// ParseColorLetters parses a string of color letters such as "wu" or "RG".
func ParseColorLetters(s string) (Colors, error) {
	var out Colors
	for i := 0; i < len(s); i++ {
		c, ok := ColorFromLetter(s[i])
		if !ok {
			return 0, fmt.Errorf("unknown color letter %q in %q", s[i], s)
		}
		out |= c
	}
	return out, nil
}

// Has reports whether every color in other is also in c.
func (c Colors) Has(other Colors) bool {
	return c&other == other
}

// Within reports whether c is a subset of other.
func (c Colors) Within(other Colors) bool {
	return c&^other == 0
}

// Count returns the number of colors in c.
func (c Colors) Count() int {
	return bits.OnesCount8(uint8(c))
}

// Colorless reports whether c is empty.
func (c Colors) Colorless() bool {
	return c == 0
}

// Multicolored reports whether c holds two or more colors.
func (c Colors) Multicolored() bool {
	return c.Count() >= 2
}

// String renders c as lowercase letters in WUBRG order, or "c" when empty.
func (c Colors) String() string {
	if c == 0 {
		return "c"
	}
	var b strings.Builder
	for _, cl := range colorLetters {
		if c&cl.color != 0 {
			b.WriteByte(cl.letter)
		}
	}
	return b.String()
}
