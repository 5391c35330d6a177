package catalog

import "strings"

// Subset returns a catalog restricted to the given set codes. Sets, blocks
// and printings are shared with c; cards are copied with their printings
// filtered to the kept sets, and cards left without printings are dropped.
// Unknown codes are ignored.
func (c *Catalog) Subset(codes []string) *Catalog {
	keep := make(map[string]bool, len(codes))
	for _, code := range codes {
		keep[strings.ToLower(strings.TrimSpace(code))] = true
	}

	sub := &Catalog{
		setsByCode: map[string]*Set{},
		blocks:     c.blocks,
		blocksByID: c.blocksByID,
	}
	for _, s := range c.sets {
		if keep[s.Code] {
			sub.sets = append(sub.sets, s)
			sub.setsByCode[s.Code] = s
		}
	}

	for _, card := range c.cards {
		var printings []*Printing
		for _, p := range card.Printings {
			if keep[p.SetCode] {
				printings = append(printings, p)
			}
		}
		if len(printings) == 0 {
			continue
		}
		cp := *card
		cp.Printings = printings
		sub.cards = append(sub.cards, &cp)
	}

	sub.index(false)
	return sub
}
