// Package render turns search results and catalog records into the view
// types shared by the HTTP API and the command line.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/cardsearch/internal/carddb"
	"github.com/roach88/cardsearch/internal/catalog"
	"github.com/roach88/cardsearch/internal/query"
)

const dateLayout = "2006-01-02"

// PrintingView is one printing as shown to users.
type PrintingView struct {
	Set         string `json:"set"`
	SetName     string `json:"set_name"`
	Rarity      string `json:"rarity"`
	Artist      string `json:"artist,omitempty"`
	Number      string `json:"number,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
}

// CardView is one card with the printings that are relevant to the caller.
type CardView struct {
	Name          string         `json:"name"`
	FullName      string         `json:"full_name,omitempty"`
	ManaCost      string         `json:"mana_cost,omitempty"`
	CMC           float64        `json:"cmc"`
	TypeLine      string         `json:"type_line"`
	Text          string         `json:"text,omitempty"`
	Power         string         `json:"power,omitempty"`
	Toughness     string         `json:"toughness,omitempty"`
	Loyalty       string         `json:"loyalty,omitempty"`
	Colors        string         `json:"colors"`
	ColorIdentity string         `json:"color_identity"`
	Printings     []PrintingView `json:"printings"`
}

// SearchView is a result page.
type SearchView struct {
	Query      string     `json:"query"`
	Scope      string     `json:"scope"`
	Total      int        `json:"total"`
	Cards      []CardView `json:"cards"`
	Suggestion string     `json:"suggestion,omitempty"`
}

// Truncated reports whether Cards holds fewer cards than matched.
func (v SearchView) Truncated() bool {
	return len(v.Cards) < v.Total
}

// StatsView summarizes a database.
type StatsView struct {
	Cards     int      `json:"cards"`
	Printings int      `json:"printings"`
	Sets      int      `json:"sets"`
	Artists   int      `json:"artists"`
	Formats   []string `json:"formats"`
	Warnings  []string `json:"warnings,omitempty"`
}

func stat(s *catalog.Stat) string {
	if s == nil {
		return ""
	}
	return s.String()
}

// Printing builds the view of p.
func Printing(cat *catalog.Catalog, p *catalog.Printing) PrintingView {
	v := PrintingView{
		Set:    p.SetCode,
		Rarity: p.Rarity.String(),
		Artist: p.Artist,
		Number: p.Number,
	}
	if s := cat.SetOf(p); s != nil {
		v.SetName = s.Name
	}
	if !p.ReleaseDate.IsZero() {
		v.ReleaseDate = p.ReleaseDate.Format(dateLayout)
	}
	return v
}

// Card builds the view of c listing the given printings. Pass
// c.Printings to show every printing.
func Card(cat *catalog.Catalog, c *catalog.Card, printings []*catalog.Printing) CardView {
	v := CardView{
		Name:          c.Name,
		ManaCost:      c.ManaCost.Text,
		CMC:           c.CMC,
		TypeLine:      c.TypeLine,
		Text:          c.Text,
		Power:         stat(c.Power),
		Toughness:     stat(c.Toughness),
		Loyalty:       stat(c.Loyalty),
		Colors:        c.Colors.String(),
		ColorIdentity: c.ColorIdentity.String(),
		Printings:     make([]PrintingView, len(printings)),
	}
	if c.Multipart() {
		v.FullName = c.FullName()
	}
	for i, p := range printings {
		v.Printings[i] = Printing(cat, p)
	}
	return v
}

// Search builds a result page holding at most limit cards. A limit of
// zero or less keeps every card.
func Search(cat *catalog.Catalog, text string, res *query.Result, limit int) SearchView {
	matches := res.Matches
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	v := SearchView{
		Query: text,
		Scope: res.Scope.String(),
		Total: res.Len(),
		Cards: make([]CardView, len(matches)),
	}
	for i, m := range matches {
		v.Cards[i] = Card(cat, m.Card, m.Printings)
	}
	return v
}

// Stats builds the summary of db.
func Stats(db *carddb.Database) StatsView {
	v := StatsView{
		Cards:     db.NumberOfCards(),
		Printings: db.NumberOfPrintings(),
		Sets:      db.NumberOfSets(),
		Artists:   db.NumberOfArtists(),
		Formats:   db.Catalog().Formats(),
	}
	for _, w := range db.Warnings() {
		v.Warnings = append(v.Warnings, w.String())
	}
	return v
}

// WriteSearch prints a result page as one line per card.
func WriteSearch(w io.Writer, v SearchView) error {
	for _, c := range v.Cards {
		if _, err := fmt.Fprintln(w, cardLine(c)); err != nil {
			return err
		}
	}
	var footer string
	switch {
	case v.Total == 0 && v.Suggestion != "":
		footer = fmt.Sprintf("No cards found. Did you mean %q?", v.Suggestion)
	case v.Total == 0:
		footer = "No cards found."
	case v.Truncated():
		footer = fmt.Sprintf("%d of %s shown.", len(v.Cards), cards(v.Total))
	default:
		footer = cards(v.Total) + "."
	}
	_, err := fmt.Fprintln(w, footer)
	return err
}

func cards(n int) string {
	if n == 1 {
		return "1 card"
	}
	return fmt.Sprintf("%d cards", n)
}

func cardLine(c CardView) string {
	parts := []string{c.Name}
	if c.ManaCost != "" {
		parts = append(parts, c.ManaCost)
	}
	parts = append(parts, c.TypeLine)
	if c.Power != "" || c.Toughness != "" {
		parts = append(parts, c.Power+"/"+c.Toughness)
	}
	if c.Loyalty != "" {
		parts = append(parts, "["+c.Loyalty+"]")
	}
	sets := make([]string, 0, len(c.Printings))
	for _, p := range c.Printings {
		if len(sets) == 0 || sets[len(sets)-1] != p.Set {
			sets = append(sets, p.Set)
		}
	}
	line := strings.Join(parts, "  ")
	if len(sets) > 0 {
		line += "  (" + strings.Join(sets, ", ") + ")"
	}
	return line
}

// WriteCard prints one card followed by its printings, one per line.
func WriteCard(w io.Writer, c CardView) error {
	var b strings.Builder
	b.WriteString(c.Name)
	if c.ManaCost != "" {
		b.WriteString("  " + c.ManaCost)
	}
	b.WriteString("\n" + c.TypeLine + "\n")
	if c.Text != "" {
		b.WriteString(c.Text + "\n")
	}
	if c.Power != "" || c.Toughness != "" {
		b.WriteString(c.Power + "/" + c.Toughness + "\n")
	}
	if c.Loyalty != "" {
		b.WriteString("Loyalty: " + c.Loyalty + "\n")
	}
	if c.FullName != "" {
		b.WriteString("Part of: " + c.FullName + "\n")
	}
	for _, p := range c.Printings {
		fmt.Fprintf(&b, "  %s  %s  %s", p.Set, p.SetName, p.Rarity)
		if p.Number != "" {
			b.WriteString("  #" + p.Number)
		}
		if p.Artist != "" {
			b.WriteString("  " + p.Artist)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteStats prints the summary.
func WriteStats(w io.Writer, v StatsView) error {
	_, err := fmt.Fprintf(w, "cards: %d\nprintings: %d\nsets: %d\nartists: %d\nformats: %s\n",
		v.Cards, v.Printings, v.Sets, v.Artists, strings.Join(v.Formats, ", "))
	if err != nil {
		return err
	}
	for _, warn := range v.Warnings {
		if _, err := fmt.Fprintf(w, "warning: %s\n", warn); err != nil {
			return err
		}
	}
	return nil
}
