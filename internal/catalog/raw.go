package catalog

import (
	"fmt"
	"time"
)

// RawCorpus is the decoded ingestion document: an ordered list of sets and
// an ordered list of cards. Corpus order is the order of these slices.
type RawCorpus struct {
	Sets  []RawSet  `json:"sets"`
	Cards []RawCard `json:"cards"`
}

// RawSet describes one set as it appears in the corpus file.
type RawSet struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	GathererCode string `json:"gatherer_code,omitempty"`
	BlockCode    string `json:"block_code,omitempty"`
	BlockName    string `json:"block_name,omitempty"`
	ReleaseDate  string `json:"release_date"`
	Type         string `json:"type,omitempty"`
	Border       string `json:"border,omitempty"`
}

// RawCard describes one card and all of its printings.
//
// Names lists every part of a multipart card, this card included, in
// printed order. ColorIdentity may be given as color letters; when empty it
// is derived from Colors, ManaCost and the symbols in Text.
type RawCard struct {
	Name          string            `json:"name"`
	Names         []string          `json:"names,omitempty"`
	Layout        string            `json:"layout,omitempty"`
	ManaCost      string            `json:"mana_cost,omitempty"`
	CMC           float64           `json:"cmc,omitempty"`
	Type          string            `json:"type"`
	Text          string            `json:"text,omitempty"`
	Power         string            `json:"power,omitempty"`
	Toughness     string            `json:"toughness,omitempty"`
	Loyalty       string            `json:"loyalty,omitempty"`
	Colors        []string          `json:"colors,omitempty"`
	ColorIdentity string            `json:"color_identity,omitempty"`
	Legalities    map[string]string `json:"legalities,omitempty"`
	Reserved      bool              `json:"reserved,omitempty"`
	Printings     []RawPrinting     `json:"printings"`
}

// RawPrinting is one appearance of a card in a set.
type RawPrinting struct {
	Set          string `json:"set"`
	Rarity       string `json:"rarity"`
	Artist       string `json:"artist,omitempty"`
	Number       string `json:"number,omitempty"`
	Flavor       string `json:"flavor,omitempty"`
	Watermark    string `json:"watermark,omitempty"`
	MultiverseID int    `json:"multiverse_id,omitempty"`
	ReleaseDate  string `json:"release_date,omitempty"`
}

// ParseReleaseDate parses "2012-10-05", "2012-10" or "2012". Partial dates
// resolve to the first day of the period.
func ParseReleaseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid release date %q", s)
}
