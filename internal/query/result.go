package query

import "github.com/roach88/cardsearch/internal/catalog"

// ResultScope says whether a result lists cards or card printings.
type ResultScope int

const (
	// ResultCards means the query used only card-level tests.
	ResultCards ResultScope = iota
	// ResultPrintings means the query constrained individual printings.
	ResultPrintings
)

func (s ResultScope) String() string {
	if s == ResultPrintings {
		return "printings"
	}
	return "cards"
}

// Match is one card of a result with the printings that matched.
type Match struct {
	Card      *catalog.Card
	Printings []*catalog.Printing
}

// Result is an evaluated query. Matches are in corpus order unless the
// query asked for a sort.
type Result struct {
	Query   *Query
	Scope   ResultScope
	Matches []Match
}

// Len returns the number of matched cards.
func (r *Result) Len() int {
	return len(r.Matches)
}

// Cards returns the matched cards.
func (r *Result) Cards() []*catalog.Card {
	out := make([]*catalog.Card, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.Card
	}
	return out
}

// CardNames returns the names of the matched cards.
func (r *Result) CardNames() []string {
	out := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.Card.Name
	}
	return out
}

// Printings returns every matched printing, card by card.
func (r *Result) Printings() []*catalog.Printing {
	var out []*catalog.Printing
	for _, m := range r.Matches {
		out = append(out, m.Printings...)
	}
	return out
}
