package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/cardsearch/internal/catalog"
)

// Corpus returns the fixture corpus used across package tests: twelve sets
// spanning three blocks plus standalone, promo and "un" sets, and a small
// card pool chosen to exercise every query field.
//
// Each call returns a fresh value, so callers may modify it.
func Corpus() catalog.RawCorpus {
	return catalog.RawCorpus{
		Sets:  fixtureSets(),
		Cards: fixtureCards(),
	}
}

// WriteCorpusFile writes Corpus as JSON to dir/name and returns the path.
func WriteCorpusFile(dir, name string) (string, error) {
	data, err := json.MarshalIndent(Corpus(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal fixture corpus: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write fixture corpus: %w", err)
	}
	return path, nil
}

func fixtureSets() []catalog.RawSet {
	return []catalog.RawSet{
		{Code: "lea", Name: "Limited Edition Alpha", GathererCode: "1E", ReleaseDate: "1993-08-05", Type: "core"},
		{Code: "pmei", Name: "Media Inserts", GathererCode: "MBP", ReleaseDate: "1995-01-01", Type: "promo"},
		{Code: "us", Name: "Urza's Saga", GathererCode: "UZ", BlockCode: "us", BlockName: "Urza's", ReleaseDate: "1998-10-12", Type: "expansion"},
		{Code: "ul", Name: "Urza's Legacy", GathererCode: "GU", BlockCode: "us", BlockName: "Urza's", ReleaseDate: "1999-02-15", Type: "expansion"},
		{Code: "ugl", Name: "Unglued", GathererCode: "UG", ReleaseDate: "1998-08-11", Type: "un"},
		{Code: "in", Name: "Invasion", GathererCode: "IN", BlockCode: "in", BlockName: "Invasion", ReleaseDate: "2000-10-02", Type: "expansion"},
		{Code: "rav", Name: "Ravnica: City of Guilds", GathererCode: "RAV", BlockCode: "rav", BlockName: "Ravnica", ReleaseDate: "2005-10-07", Type: "expansion"},
		{Code: "isd", Name: "Innistrad", GathererCode: "ISD", BlockCode: "isd", BlockName: "Innistrad", ReleaseDate: "2011-09-30", Type: "expansion"},
		{Code: "rtr", Name: "Return to Ravnica", GathererCode: "RTR", BlockCode: "rtr", BlockName: "Return to Ravnica", ReleaseDate: "2012-10-05", Type: "expansion"},
		{Code: "gtc", Name: "Gatecrash", GathererCode: "GTC", BlockCode: "rtr", BlockName: "Return to Ravnica", ReleaseDate: "2013-02-01", Type: "expansion"},
		{Code: "dgm", Name: "Dragon's Maze", GathererCode: "DGM", BlockCode: "rtr", BlockName: "Return to Ravnica", ReleaseDate: "2013-05-03", Type: "expansion"},
		{Code: "ori", Name: "Magic Origins", GathererCode: "ORI", ReleaseDate: "2015-07-17", Type: "core"},
	}
}

var (
	eternal = map[string]string{"Legacy": "Legal", "Vintage": "Legal", "Commander": "Legal"}
	rtrEra  = map[string]string{"Return to Ravnica Block": "Legal", "Modern": "Legal", "Legacy": "Legal", "Vintage": "Legal", "Commander": "Legal"}
	basics  = map[string]string{"Standard": "Legal", "Return to Ravnica Block": "Legal", "Modern": "Legal", "Legacy": "Legal", "Vintage": "Legal", "Commander": "Legal", "Pauper": "Legal"}
)

func legal(base map[string]string, extra ...string) map[string]string {
	out := make(map[string]string, len(base)+len(extra)/2)
	for k, v := range base {
		out[k] = v
	}
	for i := 0; i+1 < len(extra); i += 2 {
		out[extra[i]] = extra[i+1]
	}
	return out
}

func fixtureCards() []catalog.RawCard {
	return []catalog.RawCard{
		{
			Name: "Lightning Bolt", ManaCost: "{R}", CMC: 1, Type: "Instant",
			Text: "Lightning Bolt deals 3 damage to any target.", Colors: []string{"Red"},
			Legalities: legal(eternal, "Modern", "Legal"),
			Printings: []catalog.RawPrinting{
				{Set: "lea", Rarity: "Common", Artist: "Christopher Rush", Number: "161"},
				{Set: "ori", Rarity: "Uncommon", Artist: "Christopher Moeller", Number: "152", Flavor: "The spark of a planeswalker is a mere spark compared to this."},
			},
		},
		{
			Name: "Serra Angel", ManaCost: "{3}{W}{W}", CMC: 5, Type: "Creature — Angel",
			Text: "Flying\nVigilance", Power: "4", Toughness: "4", Colors: []string{"White"},
			Legalities: legal(eternal, "Modern", "Legal", "Pauper", "Banned"),
			Printings: []catalog.RawPrinting{
				{Set: "lea", Rarity: "Uncommon", Artist: "Douglas Shuler", Number: "39"},
				{Set: "us", Rarity: "Uncommon", Artist: "Rebecca Guay", Number: "43", Flavor: "Her sword sings more beautifully than any choir."},
				{Set: "ori", Rarity: "Uncommon", Artist: "Greg Staples", Number: "38"},
			},
		},
		{
			Name: "Counterspell", ManaCost: "{U}{U}", CMC: 2, Type: "Instant",
			Text: "Counter target spell.", Colors: []string{"Blue"},
			Legalities: legal(eternal),
			Printings: []catalog.RawPrinting{
				{Set: "lea", Rarity: "Uncommon", Artist: "Mark Poole", Number: "54"},
				{Set: "pmei", Rarity: "Special", Artist: "Mark Poole", Number: "12"},
			},
		},
		{
			Name: "Dark Ritual", ManaCost: "{B}", CMC: 1, Type: "Instant",
			Text: "Add {B}{B}{B}.", Colors: []string{"Black"},
			Legalities: legal(eternal, "Vintage", "Restricted"),
			Printings: []catalog.RawPrinting{
				{Set: "lea", Rarity: "Common", Artist: "Sandra Everingham", Number: "98"},
				{Set: "us", Rarity: "Common", Artist: "Tom Fleming", Number: "127", Flavor: "If there is such a thing as too much power, I have not discovered it."},
			},
		},
		{
			Name: "The Abyss", ManaCost: "{3}{B}", CMC: 4, Type: "World Enchantment",
			Text: "At the beginning of each player's upkeep, destroy target nonartifact creature that player controls of their choice. It can't be regenerated.",
			Colors: []string{"Black"}, Reserved: true,
			Legalities: legal(eternal),
			Printings: []catalog.RawPrinting{
				{Set: "lea", Rarity: "Rare", Artist: "Pete Venters", Number: "77"},
			},
		},
		{
			Name: "Zzzyxas's Abyss", ManaCost: "{1}{B}{B}", CMC: 3, Type: "Enchantment",
			Text: "At the beginning of your upkeep, destroy the nonland permanent with the first name alphabetically.",
			Colors: []string{"Black"},
			Printings: []catalog.RawPrinting{
				{Set: "ugl", Rarity: "Rare", Artist: "Kaja Foglio", Number: "44"},
			},
		},
		{
			Name: "S.N.O.T.", ManaCost: "{3}{G}", CMC: 4, Type: "Creature — Ooze",
			Text: "S.N.O.T.'s power and toughness are each equal to the number of creatures named S.N.O.T. on the battlefield, squared.",
			Power: "*²", Toughness: "*²", Colors: []string{"Green"},
			Printings: []catalog.RawPrinting{
				{Set: "ugl", Rarity: "Uncommon", Artist: "Daniel Gelon", Number: "72"},
			},
		},
		{
			Name: "Gaea's Avenger", ManaCost: "{1}{G}{G}", CMC: 3, Type: "Creature — Avatar",
			Text: "Gaea's Avenger's power and toughness are each equal to 1 plus the number of artifacts your opponents control.",
			Power: "1+*", Toughness: "1+*", Colors: []string{"Green"},
			Legalities: legal(eternal),
			Printings: []catalog.RawPrinting{
				{Set: "ul", Rarity: "Uncommon", Artist: "Rob Alexander", Number: "102"},
			},
		},
		{
			Name: "Aysen Crusader", ManaCost: "{2}{W}{W}", CMC: 4, Type: "Creature — Human Knight",
			Text: "Aysen Crusader's power and toughness are each equal to 2 plus the number of Soldiers and Warriors you control.",
			Power: "2+*", Toughness: "2+*", Colors: []string{"White"},
			Legalities: legal(eternal),
			Printings: []catalog.RawPrinting{
				{Set: "us", Rarity: "Uncommon", Artist: "Jeffrey R. Busch", Number: "3"},
			},
		},
		{
			Name: "Shapeshifter", ManaCost: "{6}", CMC: 6, Type: "Artifact Creature — Shapeshifter",
			Text: "As Shapeshifter enters the battlefield, choose a number between 0 and 7.",
			Power: "*", Toughness: "7-*",
			Legalities: legal(eternal),
			Printings: []catalog.RawPrinting{
				{Set: "ul", Rarity: "Rare", Artist: "Adrian Smith", Number: "140"},
			},
		},
		{
			Name: "Boros Guildmage", ManaCost: "{R/W}{R/W}", CMC: 2, Type: "Creature — Human Wizard",
			Text: "{1}{R}: Target creature gains haste until end of turn.\n{1}{W}: Target creature gains first strike until end of turn.",
			Power: "2", Toughness: "2", Colors: []string{"Red", "White"},
			Legalities: legal(eternal, "Modern", "Legal"),
			Printings: []catalog.RawPrinting{
				{Set: "rav", Rarity: "Uncommon", Artist: "Paolo Parente", Number: "243"},
			},
		},
		{
			Name: "Selesnya Guildmage", ManaCost: "{G/W}{G/W}", CMC: 2, Type: "Creature — Elf Wizard",
			Text: "{3}{G}: Create a 1/1 green Saproling creature token.\n{3}{W}: Creatures you control get +1/+1 until end of turn.",
			Power: "2", Toughness: "2", Colors: []string{"Green", "White"},
			Legalities: legal(eternal, "Modern", "Legal"),
			Printings: []catalog.RawPrinting{
				{Set: "rav", Rarity: "Uncommon", Artist: "Mark Zug", Number: "252"},
			},
		},
		{
			Name: "Elves of Deep Shadow", ManaCost: "{G}", CMC: 1, Type: "Creature — Elf Druid",
			Text: "{T}: Add {B}. Elves of Deep Shadow deals 1 damage to you.",
			Power: "1", Toughness: "1", Colors: []string{"Green"},
			Legalities: legal(eternal, "Modern", "Legal"),
			Printings: []catalog.RawPrinting{
				{Set: "rav", Rarity: "Common", Artist: "Justin Sweet", Number: "161"},
			},
		},
		{
			Name: "Dryad Militant", ManaCost: "{G/W}", CMC: 1, Type: "Creature — Dryad Soldier",
			Text: "If an instant or sorcery card would be put into a graveyard from anywhere, exile it instead.",
			Power: "2", Toughness: "1", Colors: []string{"Green", "White"},
			Legalities: legal(rtrEra),
			Printings: []catalog.RawPrinting{
				{Set: "rtr", Rarity: "Uncommon", Artist: "Ryan Barger", Number: "214"},
			},
		},
		{
			Name: "Jace, Architect of Thought", ManaCost: "{2}{U}{U}", CMC: 4, Type: "Legendary Planeswalker — Jace",
			Text: "+1: Until your next turn, whenever a creature an opponent controls attacks, it gets -1/-0 until end of turn.",
			Loyalty: "4", Colors: []string{"Blue"},
			Legalities: legal(rtrEra, "Standard", "Legal"),
			Printings: []catalog.RawPrinting{
				{Set: "rtr", Rarity: "Mythic Rare", Artist: "Jaime Jones", Number: "44"},
			},
		},
		{
			Name: "Isperia, Supreme Judge", ManaCost: "{2}{W}{W}{U}{U}", CMC: 6, Type: "Legendary Creature — Sphinx",
			Text: "Flying\nWhenever a creature attacks you or a planeswalker you control, you may draw a card.",
			Power: "6", Toughness: "4", Colors: []string{"White", "Blue"},
			Legalities: legal(rtrEra),
			Printings: []catalog.RawPrinting{
				{Set: "rtr", Rarity: "Mythic Rare", Artist: "Scott M. Fischer", Number: "171"},
			},
		},
		{
			Name: "Sphinx's Revelation", ManaCost: "{X}{W}{U}{U}", CMC: 3, Type: "Instant",
			Text: "You gain X life and draw X cards.", Colors: []string{"White", "Blue"},
			Legalities: legal(rtrEra),
			Printings: []catalog.RawPrinting{
				{Set: "rtr", Rarity: "Mythic Rare", Artist: "Sławomir Maniak", Number: "200"},
			},
		},
		{
			Name: "Goblin Electromancer", ManaCost: "{R}{U}", CMC: 2, Type: "Creature — Goblin Wizard",
			Text: "Instant and sorcery spells you cast cost {1} less to cast.",
			Power: "2", Toughness: "2", Colors: []string{"Blue", "Red"},
			Legalities: legal(rtrEra),
			Printings: []catalog.RawPrinting{
				{Set: "gtc", Rarity: "Common", Artist: "Jock", Number: "159"},
			},
		},
		{
			Name: "Rubblebelt Raiders", ManaCost: "{1}{R}{G}", CMC: 3, Type: "Creature — Human Warrior",
			Text: "Whenever Rubblebelt Raiders attacks, put a +1/+1 counter on it for each attacking creature you control.",
			Power: "3", Toughness: "3", Colors: []string{"Red", "Green"},
			Legalities: legal(rtrEra),
			Printings: []catalog.RawPrinting{
				{Set: "gtc", Rarity: "Uncommon", Artist: "Karl Kopinski", Number: "200"},
			},
		},
		{
			Name: "Alive", Names: []string{"Alive", "Well"}, Layout: "split",
			ManaCost: "{3}{G}", CMC: 4, Type: "Sorcery",
			Text: "Create a 3/3 green Centaur creature token.\nFuse", Colors: []string{"Green"},
			Legalities: legal(rtrEra),
			Printings: []catalog.RawPrinting{
				{Set: "dgm", Rarity: "Uncommon", Artist: "Nils Hamm", Number: "121a"},
			},
		},
		{
			Name: "Well", Names: []string{"Alive", "Well"}, Layout: "split",
			ManaCost: "{W}", CMC: 1, Type: "Sorcery",
			Text: "You gain 2 life for each creature you control.\nFuse", Colors: []string{"White"},
			Legalities: legal(rtrEra),
			Printings: []catalog.RawPrinting{
				{Set: "dgm", Rarity: "Uncommon", Artist: "Nils Hamm", Number: "121b"},
			},
		},
		{
			Name: "Turn", Names: []string{"Turn", "Burn"}, Layout: "split",
			ManaCost: "{2}{U}", CMC: 3, Type: "Instant",
			Text: "Until end of turn, target creature loses all abilities and becomes a red Weird with base power and toughness 0/1.\nFuse",
			Colors: []string{"Blue"},
			Legalities: legal(rtrEra),
			Printings: []catalog.RawPrinting{
				{Set: "dgm", Rarity: "Uncommon", Artist: "Ryan Barger", Number: "134a"},
			},
		},
		{
			Name: "Burn", Names: []string{"Turn", "Burn"}, Layout: "split",
			ManaCost: "{1}{R}", CMC: 2, Type: "Instant",
			Text: "Burn deals 2 damage to any target.\nFuse", Colors: []string{"Red"},
			Legalities: legal(rtrEra),
			Printings: []catalog.RawPrinting{
				{Set: "dgm", Rarity: "Uncommon", Artist: "Ryan Barger", Number: "134b"},
			},
		},
		{
			Name: "Centaur", Layout: "token", Type: "Token Creature — Centaur",
			Power: "3", Toughness: "3", Colors: []string{"Green"},
			Printings: []catalog.RawPrinting{
				{Set: "dgm", Rarity: "Common"},
			},
		},
		{
			Name: "Island", Type: "Basic Land — Island", Text: "({T}: Add {U}.)",
			Legalities: legal(basics),
			Printings: []catalog.RawPrinting{
				{Set: "lea", Rarity: "Basic Land", Artist: "Mark Poole", Number: "288"},
				{Set: "rtr", Rarity: "Basic Land", Artist: "John Avon", Number: "255"},
				{Set: "ori", Rarity: "Basic Land", Artist: "Jonas De Ro", Number: "255"},
			},
		},
		{
			Name: "Plains", Type: "Basic Land — Plains", Text: "({T}: Add {W}.)",
			Legalities: legal(basics),
			Printings: []catalog.RawPrinting{
				{Set: "lea", Rarity: "Basic Land", Artist: "Jesper Myrfors", Number: "282"},
				{Set: "rtr", Rarity: "Basic Land", Artist: "John Avon", Number: "250"},
				{Set: "ori", Rarity: "Basic Land", Artist: "JOCK", Number: "250"},
			},
		},
	}
}
