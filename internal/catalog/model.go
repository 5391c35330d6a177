package catalog

import (
	"strings"
	"time"

	"github.com/roach88/cardsearch/internal/textnorm"
)

// Set is an edition. Sets are shared between a catalog and its subsets, so
// they never change after Build.
type Set struct {
	Code         string
	Name         string
	GathererCode string
	BlockCode    string
	BlockName    string
	Type         string
	Border       string
	ReleaseDate  time.Time

	// Printings lists the set's printings in corpus order.
	Printings []*Printing
}

// Standalone reports whether the set belongs to no block.
func (s *Set) Standalone() bool {
	return s.BlockCode == ""
}

// Block returns the block code the set is grouped under. A standalone set
// is its own block.
func (s *Set) Block() string {
	if s.BlockCode == "" {
		return s.Code
	}
	return s.BlockCode
}

// Printing is one card's appearance in one set.
//
// Printings refer to their card, set, artist and sibling parts by key so a
// subset can share printings while holding its own card records. Use the
// owning Catalog to follow a reference.
type Printing struct {
	CardKey      string
	SetCode      string
	ArtistSlug   string
	Artist       string
	Rarity       Rarity
	Number       string
	Flavor       string
	Watermark    string
	MultiverseID int
	ReleaseDate  time.Time

	// OtherKeys names the sibling parts printed alongside this one in the
	// same set, for multipart cards.
	OtherKeys []string
}

// Card is a gameplay object identified by its normalized name.
type Card struct {
	Key       string
	Name      string
	Names     []string
	Layout    string
	TypeLine  string
	Text      string
	ManaCost  ManaCost
	CMC       float64
	Power     *Stat
	Toughness *Stat
	Loyalty   *Stat
	Colors    Colors

	// PartialIdentity is this part's own color identity. ColorIdentity is
	// the union over every part of a multipart card.
	PartialIdentity Colors
	ColorIdentity   Colors

	Legalities map[string]Legality
	Reserved   bool

	// Printings lists the card's printings in corpus order.
	Printings []*Printing

	// Folded forms used by text matching.
	foldedName     string
	foldedFullName string
	foldedText     string
	foldedType     string
}

// FullName joins every part of a multipart card with " // ". Single-part
// cards return Name.
func (c *Card) FullName() string {
	if len(c.Names) < 2 {
		return c.Name
	}
	return strings.Join(c.Names, " // ")
}

// Multipart reports whether the card is one part of a split, flip,
// double-faced or meld card.
func (c *Card) Multipart() bool {
	return len(c.Names) > 1
}

// Primary reports whether the card is the first part of its family, or is
// not part of one.
func (c *Card) Primary() bool {
	return len(c.Names) < 2 || textnorm.Key(c.Names[0]) == c.Key
}

// FoldedName returns the normalized name.
func (c *Card) FoldedName() string { return c.foldedName }

// FoldedFullName returns the normalized "A // B" name.
func (c *Card) FoldedFullName() string { return c.foldedFullName }

// FoldedText returns the normalized rules text.
func (c *Card) FoldedText() string { return c.foldedText }

// FoldedType returns the normalized type line.
func (c *Card) FoldedType() string { return c.foldedType }

// HasType reports whether the normalized type line contains word.
func (c *Card) HasType(word string) bool {
	return strings.Contains(c.foldedType, word)
}

// Legality returns the card's status in a format. Unknown formats are
// NotLegal.
func (c *Card) Legality(format string) Legality {
	return c.Legalities[textnorm.Name(format)]
}

// FirstRelease returns the earliest release date among the card's printings.
func (c *Card) FirstRelease() time.Time {
	var first time.Time
	for i, p := range c.Printings {
		if i == 0 || p.ReleaseDate.Before(first) {
			first = p.ReleaseDate
		}
	}
	return first
}

// LastRelease returns the latest release date among the card's printings.
func (c *Card) LastRelease() time.Time {
	var last time.Time
	for i, p := range c.Printings {
		if i == 0 || p.ReleaseDate.After(last) {
			last = p.ReleaseDate
		}
	}
	return last
}

// Artist groups the printings attributed to one slug.
type Artist struct {
	Slug      string
	Name      string
	Printings []*Printing
}

// Block is a named group of sets.
type Block struct {
	Code string
	Name string
	Sets []*Set
}
