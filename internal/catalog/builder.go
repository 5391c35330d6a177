package catalog

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/cardsearch/internal/textnorm"
)

// Builder assembles a Catalog in two phases. AddSet and AddCard record
// entities in corpus order; Build then resolves the cross references that
// need the whole corpus: multipart color identity, sibling linkage and
// artist attribution.
//
// A Builder is single-use and not safe for concurrent use.
type Builder struct {
	sets       []*Set
	setsByCode map[string]*Set

	blocks     []*Block
	blocksByID map[string]*Block

	cards      []*Card
	cardsByKey map[string]int

	skipped int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		setsByCode: map[string]*Set{},
		blocksByID: map[string]*Block{},
		cardsByKey: map[string]int{},
	}
}

// Build runs a Builder over a whole decoded corpus: sets first, then cards.
func Build(raw RawCorpus) (*Catalog, error) {
	b := NewBuilder()
	for _, s := range raw.Sets {
		if err := b.AddSet(s); err != nil {
			return nil, err
		}
	}
	for _, c := range raw.Cards {
		if err := b.AddCard(c); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// AddSet records a set. Set codes are case-insensitive and must be unique.
func (b *Builder) AddSet(raw RawSet) error {
	code := strings.ToLower(strings.TrimSpace(raw.Code))
	if code == "" {
		return fmt.Errorf("set %q has no code", raw.Name)
	}
	if _, dup := b.setsByCode[code]; dup {
		return fmt.Errorf("duplicate set code %q", code)
	}
	released, err := ParseReleaseDate(raw.ReleaseDate)
	if err != nil {
		return fmt.Errorf("set %s: %w", code, err)
	}

	set := &Set{
		Code:         code,
		Name:         strings.TrimSpace(raw.Name),
		GathererCode: strings.TrimSpace(raw.GathererCode),
		BlockCode:    strings.ToLower(strings.TrimSpace(raw.BlockCode)),
		BlockName:    strings.TrimSpace(raw.BlockName),
		Type:         textnorm.Name(raw.Type),
		Border:       textnorm.Name(raw.Border),
		ReleaseDate:  released,
	}
	b.sets = append(b.sets, set)
	b.setsByCode[code] = set

	if set.BlockCode != "" {
		block, ok := b.blocksByID[set.BlockCode]
		if !ok {
			block = &Block{Code: set.BlockCode, Name: set.BlockName}
			b.blocks = append(b.blocks, block)
			b.blocksByID[block.Code] = block
		}
		if block.Name == "" {
			block.Name = set.BlockName
		}
		if block.Name != "" {
			b.blocksByID[textnorm.Name(block.Name)] = block
		}
		block.Sets = append(block.Sets, set)
	}
	return nil
}

// AddCard records a card and its printings. Token cards are skipped. Every
// printing must reference a set added earlier.
func (b *Builder) AddCard(raw RawCard) error {
	if strings.EqualFold(raw.Layout, "token") {
		b.skipped++
		return nil
	}

	key := textnorm.Key(raw.Name)
	if key == "" {
		return fmt.Errorf("card with empty name")
	}
	if _, dup := b.cardsByKey[key]; dup {
		return fmt.Errorf("duplicate card %q", raw.Name)
	}
	if len(raw.Printings) == 0 {
		return fmt.Errorf("card %q has no printings", raw.Name)
	}

	card, err := newCard(key, raw)
	if err != nil {
		return err
	}

	printings := make([]*Printing, 0, len(raw.Printings))
	for _, rp := range raw.Printings {
		p, err := b.newPrinting(card, rp)
		if err != nil {
			return err
		}
		printings = append(printings, p)
	}

	card.Printings = printings
	for _, p := range printings {
		set := b.setsByCode[p.SetCode]
		set.Printings = append(set.Printings, p)
	}
	b.cardsByKey[key] = len(b.cards)
	b.cards = append(b.cards, card)
	return nil
}

func newCard(key string, raw RawCard) (*Card, error) {
	cost, err := ParseManaCost(raw.ManaCost)
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", raw.Name, err)
	}

	card := &Card{
		Key:        key,
		Name:       strings.TrimSpace(raw.Name),
		Names:      raw.Names,
		Layout:     textnorm.Name(raw.Layout),
		TypeLine:   raw.Type,
		Text:       raw.Text,
		ManaCost:   cost,
		CMC:        raw.CMC,
		Reserved:   raw.Reserved,
		Legalities: make(map[string]Legality, len(raw.Legalities)),
	}
	if card.Layout == "" {
		card.Layout = "normal"
	}

	if card.Power, err = optionalStat(raw.Name, "power", raw.Power); err != nil {
		return nil, err
	}
	if card.Toughness, err = optionalStat(raw.Name, "toughness", raw.Toughness); err != nil {
		return nil, err
	}
	if card.Loyalty, err = optionalStat(raw.Name, "loyalty", raw.Loyalty); err != nil {
		return nil, err
	}

	for _, name := range raw.Colors {
		c, err := ParseColorName(name)
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", raw.Name, err)
		}
		card.Colors |= c
	}

	for format, status := range raw.Legalities {
		l, err := ParseLegality(status)
		if err != nil {
			return nil, fmt.Errorf("card %q format %q: %w", raw.Name, format, err)
		}
		card.Legalities[textnorm.Name(format)] = l
	}

	if raw.ColorIdentity != "" {
		ci, err := ParseColorLetters(raw.ColorIdentity)
		if err != nil {
			return nil, fmt.Errorf("card %q color identity: %w", raw.Name, err)
		}
		card.PartialIdentity = ci
	} else {
		card.PartialIdentity = card.Colors | cost.Colors() | TextColors(raw.Text)
	}
	card.ColorIdentity = card.PartialIdentity

	card.foldedName = textnorm.Name(card.Name)
	card.foldedFullName = textnorm.Name(card.FullName())
	card.foldedText = textnorm.Fold(card.Text)
	card.foldedType = textnorm.Name(card.TypeLine)
	return card, nil
}

func optionalStat(card, field, text string) (*Stat, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	st, err := ParseStat(text)
	if err != nil {
		return nil, fmt.Errorf("card %q %s: %w", card, field, err)
	}
	return &st, nil
}

func (b *Builder) newPrinting(card *Card, rp RawPrinting) (*Printing, error) {
	code := strings.ToLower(strings.TrimSpace(rp.Set))
	set, ok := b.setsByCode[code]
	if !ok {
		return nil, fmt.Errorf("card %q printed in unknown set %q", card.Name, rp.Set)
	}
	rarity, err := ParseRarity(rp.Rarity)
	if err != nil {
		return nil, fmt.Errorf("card %q in %s: %w", card.Name, code, err)
	}

	released := set.ReleaseDate
	if rp.ReleaseDate != "" {
		released, err = ParseReleaseDate(rp.ReleaseDate)
		if err != nil {
			return nil, fmt.Errorf("card %q in %s: %w", card.Name, code, err)
		}
	}

	artist := strings.TrimSpace(rp.Artist)
	p := &Printing{
		CardKey:      card.Key,
		SetCode:      code,
		Artist:       artist,
		Rarity:       rarity,
		Number:       rp.Number,
		Flavor:       rp.Flavor,
		Watermark:    rp.Watermark,
		MultiverseID: rp.MultiverseID,
		ReleaseDate:  released,
	}
	if artist != "" {
		p.ArtistSlug = textnorm.Slug(artist)
	}
	return p, nil
}

// Build resolves cross references and returns the finished catalog.
func (b *Builder) Build() (*Catalog, error) {
	if err := b.aggregateIdentity(); err != nil {
		return nil, err
	}
	if err := b.linkParts(); err != nil {
		return nil, err
	}

	cat := &Catalog{
		sets:       b.sets,
		setsByCode: b.setsByCode,
		blocks:     b.blocks,
		blocksByID: b.blocksByID,
		cards:      b.cards,
	}
	cat.index(true)

	slog.Debug("catalog built",
		"sets", len(cat.sets),
		"cards", len(cat.cards),
		"printings", len(cat.printings),
		"artists", len(cat.artists),
		"skipped_tokens", b.skipped)
	return cat, nil
}

// aggregateIdentity gives every part of a multipart card the union of the
// partial identities of all its parts.
func (b *Builder) aggregateIdentity() error {
	for _, card := range b.cards {
		if !card.Multipart() {
			continue
		}
		var ci Colors
		for _, name := range card.Names {
			i, ok := b.cardsByKey[textnorm.Key(name)]
			if !ok {
				return &LinkageError{Card: card.Name, Sibling: name}
			}
			ci |= b.cards[i].PartialIdentity
		}
		card.ColorIdentity = ci
	}
	return nil
}

// linkParts records, for each printing of a multipart card, the sibling
// parts printed in the same set. Each sibling must have exactly one
// printing there.
func (b *Builder) linkParts() error {
	for _, card := range b.cards {
		if !card.Multipart() {
			continue
		}
		for _, p := range card.Printings {
			for _, name := range card.Names {
				key := textnorm.Key(name)
				if key == card.Key {
					continue
				}
				sibling := b.cards[b.cardsByKey[key]]
				found := 0
				for _, sp := range sibling.Printings {
					if sp.SetCode == p.SetCode {
						found++
					}
				}
				if found != 1 {
					return &LinkageError{Card: card.Name, Sibling: sibling.Name, SetCode: p.SetCode, Found: found}
				}
				p.OtherKeys = append(p.OtherKeys, key)
			}
		}
	}
	return nil
}
