package catalog

import (
	"fmt"
	"strings"
)

// Rarity is a printing's rarity. The numeric order is the comparison order
// used by r<, r>= and friends.
type Rarity int

const (
	Basic Rarity = iota
	Common
	Uncommon
	Rare
	Mythic
	Special
)

var rarityNames = [...]string{
	Basic:    "basic",
	Common:   "common",
	Uncommon: "uncommon",
	Rare:     "rare",
	Mythic:   "mythic",
	Special:  "special",
}

// ParseRarity accepts a rarity name, a corpus spelling such as "Mythic Rare"
// or "Basic Land", or a one-letter abbreviation.
func ParseRarity(s string) (Rarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic", "basic land", "land", "b", "l":
		return Basic, nil
	case "common", "c":
		return Common, nil
	case "uncommon", "u":
		return Uncommon, nil
	case "rare", "r":
		return Rare, nil
	case "mythic", "mythic rare", "m":
		return Mythic, nil
	case "special", "timeshifted", "bonus", "s":
		return Special, nil
	}
	return 0, fmt.Errorf("unknown rarity %q", s)
}

func (r Rarity) String() string {
	if r < 0 || int(r) >= len(rarityNames) {
		return fmt.Sprintf("rarity(%d)", int(r))
	}
	return rarityNames[r]
}

// Legality is a card's status in one format.
type Legality int

const (
	// NotLegal is the zero value: the format does not list the card.
	NotLegal Legality = iota
	Legal
	Restricted
	Banned
)

// ParseLegality parses "legal", "restricted" or "banned" in any case.
func ParseLegality(s string) (Legality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legal":
		return Legal, nil
	case "restricted":
		return Restricted, nil
	case "banned":
		return Banned, nil
	}
	return NotLegal, fmt.Errorf("unknown legality %q", s)
}

// Playable reports whether a deck in the format may contain the card.
func (l Legality) Playable() bool {
	return l == Legal || l == Restricted
}

func (l Legality) String() string {
	switch l {
	case Legal:
		return "legal"
	case Restricted:
		return "restricted"
	case Banned:
		return "banned"
	}
	return "not legal"
}
